package bill

import (
	"context"
	"fmt"
	"sync"
)

// Batch runs independent store operations concurrently and records the
// outcome of each one. The document write and the file uploads of a single
// bill change are dispatched as one batch: they are not atomic, a crash
// mid-batch can leave orphaned files or a file-less record, and that is
// accepted rather than engineered around.
type Batch struct {
	ops []batchOp
}

type batchOp struct {
	name string
	run  func(ctx context.Context) error
}

func (b *Batch) Add(name string, run func(ctx context.Context) error) {
	b.ops = append(b.ops, batchOp{name: name, run: run})
}

// OpResult is the outcome of a single operation in a batch.
type OpResult struct {
	Name string
	Err  error
}

// BatchResult reports every sub-operation, succeeded or failed.
type BatchResult []OpResult

// Err reduces the batch to the default fail-all-on-any-failure policy:
// it returns nil only when every operation succeeded.
func (r BatchResult) Err() error {
	for _, op := range r {
		if op.Err != nil {
			return fmt.Errorf("%s: %w", op.Name, op.Err)
		}
	}

	return nil
}

// Failed returns the operations that did not succeed.
func (r BatchResult) Failed() []OpResult {
	var failed []OpResult

	for _, op := range r {
		if op.Err != nil {
			failed = append(failed, op)
		}
	}

	return failed
}

// Run dispatches all operations concurrently and waits for every one of them,
// even after a failure. There is no partial-success short-circuit and no
// retry; the caller decides what to do with the per-operation outcomes.
func (b *Batch) Run(ctx context.Context) BatchResult {
	results := make(BatchResult, len(b.ops))

	var wg sync.WaitGroup

	for i, op := range b.ops {
		i, op := i, op

		wg.Add(1)

		go func() {
			defer wg.Done()

			results[i] = OpResult{Name: op.name, Err: op.run(ctx)}
		}()
	}

	wg.Wait()

	return results
}
