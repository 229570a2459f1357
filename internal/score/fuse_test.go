package score

import (
	"testing"

	"github.com/ppiankov/wikiwire/internal/model"
)

func mkCluster(rep string, score int) Cluster {
	return Cluster{
		Representative: rep,
		TotalScore:     score,
		Tokens:         set(),
		Members:        []model.Candidate{{Text: rep, Score: score}},
		best:           score,
	}
}

func TestLCSRatio(t *testing.T) {
	if got := lcsRatio("abc", "abc"); got != 1.0 {
		t.Errorf("Identical strings must score 1.0, got %v", got)
	}
	if got := lcsRatio("abc", "xyz"); got != 0.0 {
		t.Errorf("Disjoint strings must score 0.0, got %v", got)
	}
	// LCS("abcd","abed") = "abd" -> 2*3/8 = 0.75
	if got := lcsRatio("abcd", "abed"); got != 0.75 {
		t.Errorf("Expected 0.75, got %v", got)
	}
	if got := lcsRatio("", ""); got != 1.0 {
		t.Errorf("Two empty strings are identical, got %v", got)
	}
	if got := lcsRatio("a", ""); got != 0.0 {
		t.Errorf("One empty string is disjoint, got %v", got)
	}
}

func TestFusePhrasalDupes_MergesParaphrases(t *testing.T) {
	// same fuzzy key after diacritic folding, ratio 1.0
	clusters := []Cluster{
		mkCluster("Café Opens Downtown", 60),
		mkCluster("Cafe Opens Downtown", 50),
	}
	fused := FusePhrasalDupes(clusters, 0.88)
	if len(fused) != 1 {
		t.Fatalf("Expected 1 fused cluster, got %d", len(fused))
	}
	if fused[0].TotalScore != 110 {
		t.Errorf("Expected summed score 110, got %d", fused[0].TotalScore)
	}
	if fused[0].Representative != "Café Opens Downtown" {
		t.Errorf("Representative must stay with the stronger cluster, got %q", fused[0].Representative)
	}
	if len(fused[0].Members) != 2 {
		t.Errorf("Members must accumulate, got %d", len(fused[0].Members))
	}
}

func TestFusePhrasalDupes_KeepsDistinctTopics(t *testing.T) {
	clusters := []Cluster{
		mkCluster("Volcano Erupts in Iceland", 90),
		mkCluster("Parliament Passes Budget Bill", 70),
	}
	fused := FusePhrasalDupes(clusters, 0.88)
	if len(fused) != 2 {
		t.Fatalf("Expected 2 distinct clusters, got %d", len(fused))
	}
	if fused[0].TotalScore < fused[1].TotalScore {
		t.Error("Fused clusters must be sorted by TotalScore descending")
	}
}

func TestFusePhrasalDupes_FirstBucketKeepsItsKey(t *testing.T) {
	// the second cluster fuses into the first; the third is compared
	// against the FIRST key, not the merged representative
	clusters := []Cluster{
		mkCluster("Summer music festival opens", 100),
		mkCluster("Summer music festival open", 80),
		mkCluster("Winter sports championship begins", 60),
	}
	fused := FusePhrasalDupes(clusters, 0.88)
	if len(fused) != 2 {
		t.Fatalf("Expected 2 buckets, got %d", len(fused))
	}
	if fused[0].TotalScore != 180 {
		t.Errorf("Expected first bucket to hold 180, got %d", fused[0].TotalScore)
	}
}

func TestFusePhrasalDupes_DoesNotMutateInput(t *testing.T) {
	clusters := []Cluster{
		mkCluster("Cafe Opens Downtown", 50),
		mkCluster("Café Opens Downtown", 60),
	}
	FusePhrasalDupes(clusters, 0.88)
	if len(clusters[0].Members) != 1 {
		t.Errorf("Input members mutated: %d", len(clusters[0].Members))
	}
}
