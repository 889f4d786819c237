package engine

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mhutchens/citator/internal/citation"
)

const (
	// DefaultRaceTimeout bounds a whole race; engines still pending
	// when it expires are abandoned.
	DefaultRaceTimeout = 12 * time.Second

	// maxWorkers caps concurrent engine calls per race.
	maxWorkers = 4
)

// Candidate is one engine entered in a race.
type Candidate struct {
	Name   string
	Search func(ctx context.Context, query string) (*citation.Metadata, error)
}

// SearchCandidate adapts a Searcher into a race Candidate.
func SearchCandidate(name string, s Searcher) Candidate {
	return Candidate{Name: name, Search: s.Search}
}

// First races all candidates against query and returns the winning
// record and the engine that produced it. The first result passing the
// minimum-data gate settles the race; among results already completed
// at that moment, one carrying a DOI beats one without. Individual
// engine errors and sub-minimum records count as misses and never
// abort the race. On timeout, or when every candidate misses, First
// returns (nil, "").
func First(ctx context.Context, timeout time.Duration, query string, candidates ...Candidate) (*citation.Metadata, string) {
	if len(candidates) == 0 {
		return nil, ""
	}
	if timeout <= 0 {
		timeout = DefaultRaceTimeout
	}
	rctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		meta *citation.Metadata
		name string
	}
	// Buffered to capacity so stragglers finishing after the race is
	// settled can still send and exit.
	results := make(chan outcome, len(candidates))

	g, gctx := errgroup.WithContext(rctx)
	g.SetLimit(maxWorkers)
	go func() {
		for _, cand := range candidates {
			g.Go(func() error {
				meta, err := cand.Search(gctx, query)
				if err != nil || meta == nil || !meta.HasMinimumData() {
					results <- outcome{nil, cand.Name}
					return nil
				}
				results <- outcome{meta, cand.Name}
				return nil
			})
		}
	}()

	pending := len(candidates)
	for pending > 0 {
		select {
		case out := <-results:
			pending--
			if out.meta == nil {
				continue
			}
			// Settle: drain whatever else has already completed and
			// keep the preferred result.
			best := out
		drain:
			for pending > 0 {
				select {
				case extra := <-results:
					pending--
					if extra.meta != nil && preferChallenger(best.meta, extra.meta) {
						best = extra
					}
				default:
					break drain
				}
			}
			return best.meta, best.name
		case <-rctx.Done():
			return nil, ""
		}
	}
	return nil, ""
}

// preferChallenger reports whether a later-completed challenger should
// displace the incumbent result: only when it brings a DOI the
// incumbent lacks. Otherwise first-completed stands.
func preferChallenger(incumbent, challenger *citation.Metadata) bool {
	return incumbent.DOI == "" && challenger.DOI != ""
}
