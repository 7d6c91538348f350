// Package assistant answers visitor questions with the catalog as context.
package assistant

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/geo"
	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/search"
)

// maxContextTemples caps how many catalog entries get embedded per prompt.
const maxContextTemples = 12

// Assistant runs a catalog search for each question and asks the model to
// answer from the results.
type Assistant struct {
	Client   *Client
	Searcher *search.Searcher
	limiter  *rate.Limiter
}

// New creates an Assistant rate-limited to rps API calls per second.
func New(client *Client, searcher *search.Searcher, rps float64) *Assistant {
	return &Assistant{
		Client:   client,
		Searcher: searcher,
		limiter:  rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Ask answers one question. When the visitor's position is known, the
// catalog context is proximity-ranked around it; otherwise the whole
// catalog (capped) is offered in catalog order.
func (a *Assistant) Ask(ctx context.Context, question string, origin *geo.Coordinate) (*Reply, Usage, error) {
	results, err := a.Searcher.Search(ctx, search.Criteria{Origin: origin})
	if err != nil {
		return nil, Usage{}, fmt.Errorf("gathering catalog context: %w", err)
	}
	if len(results) > maxContextTemples {
		results = results[:maxContextTemples]
	}

	if err := a.limiter.Wait(ctx); err != nil {
		return nil, Usage{}, fmt.Errorf("rate limiter: %w", err)
	}

	raw, usage, err := a.Client.Complete(ctx, systemPrompt, buildPrompt(question, results))
	if err != nil {
		return nil, usage, err
	}

	reply, err := ParseReply(raw)
	if err != nil {
		return nil, usage, err
	}

	return reply, usage, nil
}
