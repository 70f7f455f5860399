// Package check provides a small, generic pipeline for running independent
// inspection steps in parallel within a stage, while enforcing sequential
// execution between stages. The dataset validator runs its integrity checks
// through it; one stage is enough there, but multi-stage flows (normalize,
// then inspect) use the barrier between stages.
package check

import (
	"context"
)

// Step is a single inspection applied to an item. Steps in the same stage
// run concurrently against the same item, so a step must only touch state no
// sibling step writes. A failed step returns an error; the pipeline logs it
// and keeps going. The context carries cancellation and deadlines.
type Step[T any] func(ctx context.Context, item *T) error

// Stage groups steps that are safe to execute in parallel for a single
// item. All steps in a stage start together and must finish before the next
// stage begins.
type Stage[T any] struct {
	steps []Step[T]
}

// NewStage constructs a Stage from the provided steps.
func NewStage[T any](steps ...Step[T]) Stage[T] {
	return Stage[T]{steps: steps}
}
