// Package batch executes one repository operation against many record ids
// with partial-failure semantics: ids succeed or fail independently, nothing
// aborts the rest.
package batch

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Operation applies a single remote mutation to one record id.
type Operation func(ctx context.Context, id string) error

// Result reports the per-id outcome of a batch. Succeeded preserves the input
// order of the ids that completed.
type Result struct {
	Succeeded []string         `json:"succeeded"`
	Failed    map[string]error `json:"-"`
}

// FailedMessages renders the failure map with string messages for transport.
func (r Result) FailedMessages() map[string]string {
	out := make(map[string]string, len(r.Failed))
	for id, err := range r.Failed {
		out[id] = err.Error()
	}
	return out
}

// AllSucceeded reports whether every id completed.
func (r Result) AllSucceeded() bool {
	return len(r.Failed) == 0
}

// Coordinator dispatches batch operations concurrently.
type Coordinator struct {
	logger *zap.Logger
}

// New constructs a batch coordinator.
func New(logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{logger: logger}
}

// ApplyToMany runs op for every id concurrently and collects per-id outcomes.
// It performs no implicit re-fetch; refreshing the record set afterwards is
// the caller's call.
func (c *Coordinator) ApplyToMany(ctx context.Context, ids []string, op Operation) Result {
	result := Result{Failed: make(map[string]error)}
	if len(ids) == 0 {
		return result
	}

	type outcome struct {
		id  string
		err error
	}
	outcomes := make([]outcome, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			outcomes[i] = outcome{id: id, err: op(ctx, id)}
		}(i, id)
	}
	wg.Wait()

	for _, o := range outcomes {
		if o.err != nil {
			c.logger.Warn("batch operation failed for id", zap.String("id", o.id), zap.Error(o.err))
			result.Failed[o.id] = o.err
			continue
		}
		result.Succeeded = append(result.Succeeded, o.id)
	}
	return result
}
