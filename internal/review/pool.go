package review

import (
	"context"
	"log/slog"
	"sync"

	"github.com/hyunsoo-an/purchase-review/internal/entity"
)

// CaseOutcome pairs a case with its result or error.
type CaseOutcome struct {
	Input  entity.CaseInput
	Result *entity.ReviewResult
	Err    error
}

// Pool fans cases out over a fixed number of workers. Used by the batch CLI;
// the HTTP server reviews inline per request.
type Pool struct {
	service *Service
	workers int
	logger  *slog.Logger
}

func NewPool(service *Service, workers int, logger *slog.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool{service: service, workers: workers, logger: logger}
}

// Run reviews every case and returns one outcome per input, in input order.
// Cancellation stops pending cases; already-running reviews finish.
func (p *Pool) Run(ctx context.Context, cases []entity.CaseInput) []CaseOutcome {
	outcomes := make([]CaseOutcome, len(cases))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				input := cases[idx]
				result, err := p.service.Review(ctx, input)
				outcomes[idx] = CaseOutcome{Input: input, Result: result, Err: err}
				if err != nil {
					p.logger.Error("pool.case_failed",
						"case_id", input.CaseID.String(), "error", err)
				}
			}
		}()
	}

	for i := range cases {
		select {
		case jobs <- i:
		case <-ctx.Done():
			outcomes[i] = CaseOutcome{Input: cases[i], Err: ctx.Err()}
		}
	}
	close(jobs)
	wg.Wait()

	return outcomes
}
