package check

import (
	"context"
	"log"
	"sync"
)

// Pipeline applies a sequence of stages to items. Within a stage the steps
// run in parallel; a stage barrier separates stages. Step errors are logged
// and never stop the remaining steps, so one broken check cannot silence the
// others.
//
// Pipeline is generic over the item type T.
type Pipeline[T any] struct {
	stages []Stage[T]
}

// NewPipeline constructs a Pipeline from the provided stages. Stages are
// applied to each item in order.
func NewPipeline[T any](stages ...Stage[T]) *Pipeline[T] {
	return &Pipeline[T]{stages: stages}
}

// Run applies every stage to a single item and returns once the last stage
// barrier has been crossed.
func (p *Pipeline[T]) Run(ctx context.Context, item *T) {
	for _, stage := range p.stages {
		var wg sync.WaitGroup
		for _, step := range stage.steps {
			wg.Add(1)
			go func(step Step[T]) {
				defer wg.Done()
				if err := step(ctx, item); err != nil {
					log.Printf("Check step failed: %v", err)
				}
			}(step)
		}
		// stage barrier: all steps finish before the next stage starts
		wg.Wait()
	}
}

// Process consumes items from the input channel until it closes, applying
// every stage to each item in arrival order.
func (p *Pipeline[T]) Process(ctx context.Context, in <-chan *T) {
	for item := range in {
		p.Run(ctx, item)
	}
}
