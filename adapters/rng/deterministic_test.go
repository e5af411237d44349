package rng

import (
	"context"
	"testing"
)

func TestTrialStream_Deterministic(t *testing.T) {
	adapter := New()
	ctx := context.Background()

	first, err := adapter.TrialStream(ctx, "two_sample/n=20", 7, 42)
	if err != nil {
		t.Fatalf("TrialStream failed: %v", err)
	}
	second, err := adapter.TrialStream(ctx, "two_sample/n=20", 7, 42)
	if err != nil {
		t.Fatalf("TrialStream failed: %v", err)
	}

	for i := 0; i < 100; i++ {
		a, b := first.Float64(), second.Float64()
		if a != b {
			t.Fatalf("draw %d diverged: %v vs %v", i, a, b)
		}
	}
}

func TestTrialStream_IndependentAcrossTrials(t *testing.T) {
	adapter := New()
	ctx := context.Background()

	sameFirstDraw := 0
	prev := -1.0
	for trial := 0; trial < 50; trial++ {
		stream, err := adapter.TrialStream(ctx, "two_sample/n=20", trial, 42)
		if err != nil {
			t.Fatalf("TrialStream failed: %v", err)
		}
		draw := stream.Float64()
		if draw == prev {
			sameFirstDraw++
		}
		prev = draw
	}

	if sameFirstDraw > 0 {
		t.Errorf("adjacent trial streams produced %d identical first draws", sameFirstDraw)
	}
}

func TestTrialStream_DistinctPerScenarioAndSeed(t *testing.T) {
	adapter := New()
	ctx := context.Background()

	a, _ := adapter.TrialStream(ctx, "two_sample/n=20", 0, 42)
	b, _ := adapter.TrialStream(ctx, "two_sample/n=40", 0, 42)
	c, _ := adapter.TrialStream(ctx, "two_sample/n=20", 0, 43)

	if a.Float64() == b.Float64() {
		t.Error("different scenario keys should produce different streams")
	}
	if a.Float64() == c.Float64() {
		t.Error("different base seeds should produce different streams")
	}
}
