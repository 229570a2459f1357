// Package pipeline wires the ingestion gate to the two processing
// modes: the per-edit record producer and the windowed topic pipeline.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ppiankov/wikiwire/internal/hub"
	"github.com/ppiankov/wikiwire/internal/llm"
	"github.com/ppiankov/wikiwire/internal/model"
	"github.com/ppiankov/wikiwire/internal/sentiment"
	"github.com/ppiankov/wikiwire/internal/server"
	"github.com/ppiankov/wikiwire/internal/stream"
)

// Producer is the single long-lived ingestion/processing task for
// per-edit mode: it reads the gated stream, builds one Record per event
// and publishes it to the hub. Exactly one Producer runs per process.
type Producer struct {
	client   *stream.Client
	gen      *llm.Generator
	analyzer sentiment.Analyzer
	hub      *hub.Hub
	metrics  *server.Metrics
	log      *zap.Logger
}

// NewProducer wires the per-edit pipeline and installs the metric hooks
func NewProducer(client *stream.Client, gen *llm.Generator, analyzer sentiment.Analyzer,
	h *hub.Hub, metrics *server.Metrics, log *zap.Logger) *Producer {

	client.OnReject = func(reason stream.RejectReason) {
		metrics.EventsRejected.WithLabelValues(string(reason)).Inc()
	}
	client.OnReconnect = func() {
		metrics.Reconnects.Inc()
	}
	h.OnDrop = func() {
		metrics.MessagesDropped.Inc()
	}

	return &Producer{
		client:   client,
		gen:      gen,
		analyzer: analyzer,
		hub:      h,
		metrics:  metrics,
		log:      log,
	}
}

// Run consumes the stream until the context is cancelled. Collaborator
// failures degrade per record; an unexpected panic is logged and ends
// the task. Restart policy belongs to the supervisor, not here.
func (p *Producer) Run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("producer crashed", zap.Any("panic", r))
			err = fmt.Errorf("producer crashed: %v", r)
		}
	}()

	events := make(chan model.NormalizedEvent, 64)
	go p.client.Run(ctx, events)

	for {
		select {
		case <-ctx.Done():
			p.log.Info("producer stopping")
			return nil
		case ev := <-events:
			p.metrics.EventsAccepted.Inc()
			p.hub.Publish(p.buildRecord(ctx, ev))
			p.metrics.RecordsPublished.Inc()
		}
	}
}

// buildRecord assembles the externally visible unit for one edit
func (p *Producer) buildRecord(ctx context.Context, ev model.NormalizedEvent) model.Record {
	headline := p.gen.Headline(ctx, ev)

	comment := ev.Comment
	if comment == "" {
		comment = "No comment"
	}

	return model.Record{
		Headline:  headline,
		Title:     ev.Title,
		Editor:    ev.Editor,
		ByteDiff:  ev.ByteDelta,
		Comment:   comment,
		Sentiment: sentiment.Score(ctx, p.analyzer, headline),
		ISOTime:   model.ISOTimeFromUnix(ev.Timestamp),
	}
}
