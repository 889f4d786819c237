package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mhutchens/citator/internal/citation"
)

func delayed(name string, delay time.Duration, meta *citation.Metadata, err error) Candidate {
	return Candidate{
		Name: name,
		Search: func(ctx context.Context, query string) (*citation.Metadata, error) {
			select {
			case <-time.After(delay):
				return meta, err
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		},
	}
}

func TestFirstFastestWins(t *testing.T) {
	fast := &citation.Metadata{Type: citation.Journal, Title: "Fast Result"}
	medium := &citation.Metadata{Type: citation.Journal, Title: "Medium Result"}
	slow := &citation.Metadata{Type: citation.Journal, Title: "Slow Result"}

	start := time.Now()
	got, name := First(context.Background(), 5*time.Second, "query",
		delayed("slow", 2*time.Second, slow, nil),
		delayed("fast", 10*time.Millisecond, fast, nil),
		delayed("medium", 300*time.Millisecond, medium, nil),
	)
	elapsed := time.Since(start)

	if got == nil || got.Title != "Fast Result" {
		t.Fatalf("winner = %+v, want fast result", got)
	}
	if name != "fast" {
		t.Errorf("winner name = %q, want fast", name)
	}
	// The race must settle without waiting out the stragglers.
	if elapsed > time.Second {
		t.Errorf("race took %v, should settle with the fast engine", elapsed)
	}
}

func TestFirstSkipsErrorsAndMisses(t *testing.T) {
	good := &citation.Metadata{Type: citation.Journal, Title: "Good"}

	got, name := First(context.Background(), 5*time.Second, "query",
		delayed("broken", 5*time.Millisecond, nil, errors.New("boom")),
		delayed("empty", 5*time.Millisecond, nil, nil),
		delayed("good", 50*time.Millisecond, good, nil),
	)
	if got == nil || got.Title != "Good" {
		t.Fatalf("winner = %+v, want the good engine's result", got)
	}
	if name != "good" {
		t.Errorf("winner name = %q, want good", name)
	}
}

// Records failing the minimum-data gate count as misses.
func TestFirstGatesSubMinimumRecords(t *testing.T) {
	// A book without a title does not qualify.
	partial := &citation.Metadata{Type: citation.Book, Authors: []string{"Somebody"}}
	full := &citation.Metadata{Type: citation.Book, Title: "A Real Book"}

	got, name := First(context.Background(), 5*time.Second, "query",
		delayed("partial", 5*time.Millisecond, partial, nil),
		delayed("full", 50*time.Millisecond, full, nil),
	)
	if got == nil || got.Title != "A Real Book" {
		t.Fatalf("winner = %+v, want the complete record", got)
	}
	if name != "full" {
		t.Errorf("winner name = %q, want full", name)
	}
}

func TestFirstTimeout(t *testing.T) {
	slow := &citation.Metadata{Type: citation.Journal, Title: "Too Late"}

	start := time.Now()
	got, name := First(context.Background(), 50*time.Millisecond, "query",
		delayed("slow", 5*time.Second, slow, nil),
	)
	elapsed := time.Since(start)

	if got != nil || name != "" {
		t.Fatalf("got (%+v, %q), want (nil, \"\")", got, name)
	}
	if elapsed > time.Second {
		t.Errorf("timeout took %v, want prompt expiry", elapsed)
	}
}

func TestFirstAllMiss(t *testing.T) {
	got, name := First(context.Background(), time.Second, "query",
		delayed("a", 5*time.Millisecond, nil, nil),
		delayed("b", 5*time.Millisecond, nil, errors.New("down")),
	)
	if got != nil || name != "" {
		t.Errorf("got (%+v, %q), want (nil, \"\")", got, name)
	}
}

func TestFirstNoCandidates(t *testing.T) {
	got, name := First(context.Background(), time.Second, "query")
	if got != nil || name != "" {
		t.Errorf("got (%+v, %q), want (nil, \"\")", got, name)
	}
}

func TestFirstCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, _ := First(ctx, time.Second, "query",
		delayed("slow", time.Second, &citation.Metadata{Title: "X"}, nil),
	)
	if got != nil {
		t.Errorf("got %+v after cancellation, want nil", got)
	}
}

// Among results completed when the race settles, one carrying a DOI
// displaces one without.
func TestPreferChallenger(t *testing.T) {
	noDOI := &citation.Metadata{Type: citation.Journal, Title: "Paper"}
	withDOI := &citation.Metadata{Type: citation.Journal, Title: "Paper", DOI: "10.1/x"}

	tests := []struct {
		name       string
		incumbent  *citation.Metadata
		challenger *citation.Metadata
		want       bool
	}{
		{"challenger brings missing DOI", noDOI, withDOI, true},
		{"incumbent already has DOI", withDOI, noDOI, false},
		{"both have DOIs", withDOI, withDOI, false},
		{"neither has a DOI", noDOI, noDOI, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preferChallenger(tt.incumbent, tt.challenger)
			if got != tt.want {
				t.Errorf("preferChallenger() = %v, want %v", got, tt.want)
			}
		})
	}
}
