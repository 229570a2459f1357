package stream

import (
	"github.com/ppiankov/wikiwire/internal/clean"
	"github.com/ppiankov/wikiwire/internal/model"
)

// RawChange is the wire shape of a recentchange event. Fields we never
// gate on are ignored during decode.
type RawChange struct {
	Wiki      string `json:"wiki"`
	Type      string `json:"type"`
	Namespace int    `json:"namespace"`
	Title     string `json:"title"`
	Comment   string `json:"comment"`
	User      string `json:"user"`
	Bot       bool   `json:"bot"`
	Timestamp int64  `json:"timestamp"`
	Length    *struct {
		Old *int `json:"old"`
		New *int `json:"new"`
	} `json:"length"`
	Revision *struct {
		Old *struct {
			Size *int `json:"size"`
		} `json:"old"`
		New *struct {
			Size *int `json:"size"`
		} `json:"new"`
	} `json:"revision"`
}

// ByteDelta is the best-effort absolute size change of an edit: the
// old/new length pair when present, else the old/new revision sizes,
// else zero.
func (c *RawChange) ByteDelta() int {
	if c.Length != nil && c.Length.Old != nil && c.Length.New != nil {
		return abs(*c.Length.New - *c.Length.Old)
	}
	if c.Revision != nil && c.Revision.Old != nil && c.Revision.New != nil &&
		c.Revision.Old.Size != nil && c.Revision.New.Size != nil {
		return abs(*c.Revision.New.Size - *c.Revision.Old.Size)
	}
	return 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// RejectReason identifies the first gate an event failed
type RejectReason string

const (
	RejectWiki      RejectReason = "wiki"
	RejectNamespace RejectReason = "namespace"
	RejectType      RejectReason = "type"
	RejectBot       RejectReason = "bot"
	RejectTitle     RejectReason = "title"
	RejectComment   RejectReason = "comment"
	RejectByteDiff  RejectReason = "byte_diff"
)

// Gate applies the admission filters to raw events before any cleaning
// work is spent on them.
type Gate struct {
	cfg model.StreamConfig
}

// NewGate builds a gate from stream configuration
func NewGate(cfg model.StreamConfig) Gate {
	return Gate{cfg: cfg}
}

// Admit checks the seven filters in fixed order and reports the first
// one that fails. Ordering is part of the contract: cheap checks run
// before anything that would require normalization.
func (g Gate) Admit(c *RawChange) (RejectReason, bool) {
	if g.cfg.Wiki != "" && c.Wiki != g.cfg.Wiki {
		return RejectWiki, false
	}
	if len(g.cfg.Namespaces) > 0 && !containsInt(g.cfg.Namespaces, c.Namespace) {
		return RejectNamespace, false
	}
	if c.Type != "edit" {
		return RejectType, false
	}
	if c.Bot {
		return RejectBot, false
	}
	if len(c.Title) < g.cfg.MinTitleLen {
		return RejectTitle, false
	}
	if g.cfg.RequireComment && c.Comment == "" {
		return RejectComment, false
	}
	if c.ByteDelta() < g.cfg.MinByteDiff {
		return RejectByteDiff, false
	}
	return "", true
}

// Normalize converts an admitted raw event into its immutable form
func (g Gate) Normalize(c *RawChange) model.NormalizedEvent {
	return model.NormalizedEvent{
		Title:     clean.Title(c.Title),
		Comment:   clean.Comment(c.Comment),
		Editor:    c.User,
		Timestamp: c.Timestamp,
		ByteDelta: c.ByteDelta(),
	}
}

func containsInt(list []int, n int) bool {
	for _, v := range list {
		if v == n {
			return true
		}
	}
	return false
}
