package distance

import (
	"context"
	"dvpr-route-scheduler/internal/ports"
	"testing"
)

func TestMockDistanceProviderGetDistance(t *testing.T) {
	p := NewMockDistanceProvider([]MockPair{
		{From: "a", To: "b", Meters: 100, Seconds: 60},
	})

	r, err := p.GetDistance(context.Background(), "a", "b")
	if err != nil {
		t.Fatalf("GetDistance: %v", err)
	}
	if r.DistanceMeters != 100 || r.DurationSeconds != 60 {
		t.Fatalf("got %+v, want {100 60}", r)
	}

	if _, err := p.GetDistance(context.Background(), "a", "z"); err == nil {
		t.Fatal("expected error for missing pair")
	}
}

func TestMockDistanceProviderGetDistances(t *testing.T) {
	var provider ports.DistanceMatrixProvider = NewMockDistanceProvider([]MockPair{
		{From: "a", To: "b", Meters: 100, Seconds: 60},
		{From: "a", To: "c", Meters: 200, Seconds: 90},
	})

	results, err := provider.GetDistances(context.Background(), "a", []string{"b", "c"})
	if err != nil {
		t.Fatalf("GetDistances: %v", err)
	}
	if results["b"].DistanceMeters != 100 || results["c"].DistanceMeters != 200 {
		t.Fatalf("got %+v", results)
	}

	if _, err := provider.GetDistances(context.Background(), "a", []string{"b", "missing"}); err == nil {
		t.Fatal("expected error for missing destination")
	}
}
