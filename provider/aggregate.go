package provider

import (
	"context"
	"sync"

	"github.com/grovetools/actionmenu/action"
	"github.com/grovetools/actionmenu/logging"
	"github.com/grovetools/actionmenu/protocol"
	"github.com/sirupsen/logrus"
)

// Aggregator fans a single logical code action request out to every
// capable provider and merges the partial result lists into one flat
// collection.
type Aggregator struct {
	log *logrus.Entry
}

// NewAggregator creates an Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{log: logging.NewLogger("aggregator")}
}

// Request queries every capable provider in parallel and waits for all
// branches to complete. Results are flattened in provider order into
// items pairing each action with its originating provider and the
// request parameters. A provider that errors contributes no items; its
// failure is logged as a warning rather than aborting the aggregation,
// so one broken backend cannot hide the others' results.
func (a *Aggregator) Request(ctx context.Context, providers []Provider, params protocol.CodeActionParams) []*action.Item {
	capableProviders := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if capable(p, params.Context.Only) {
			capableProviders = append(capableProviders, p)
		}
	}

	results := make([][]protocol.CodeAction, len(capableProviders))
	errs := make([]error, len(capableProviders))

	var wg sync.WaitGroup
	for i, p := range capableProviders {
		wg.Add(1)
		go func(i int, p Provider) {
			defer wg.Done()
			results[i], errs[i] = p.CodeActions(ctx, params)
		}(i, p)
	}
	wg.Wait()

	var items []*action.Item
	for i, p := range capableProviders {
		if errs[i] != nil {
			a.log.WithError(errs[i]).WithField("provider", p.Name()).
				Warn("code action request failed, skipping provider results")
			continue
		}
		for _, ca := range results[i] {
			items = append(items, &action.Item{
				Action: ca,
				Source: p,
				Params: params,
			})
		}
	}

	a.log.WithFields(logrus.Fields{
		"providers": len(capableProviders),
		"actions":   len(items),
	}).Debug("aggregated code action results")

	return items
}
