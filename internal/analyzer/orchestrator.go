package analyzer

import (
	"context"
	"sync"

	"analyzer/internal/domain"

	"go.uber.org/zap"
)

// BatchItem is one raw entry of a batch request, before validation.
type BatchItem struct {
	URL         string
	CompanyName string
	Location    string
}

// Orchestrator fans a batch out over a bounded worker pool. Each item's
// pipeline runs independently; one failure never aborts its siblings, and
// output order always matches input order.
type Orchestrator struct {
	pipeline *Pipeline
	workers  int
	logger   *zap.Logger
}

func NewOrchestrator(p *Pipeline, workers int, logger *zap.Logger) *Orchestrator {
	if workers < 1 {
		workers = 1
	}
	return &Orchestrator{pipeline: p, workers: workers, logger: logger}
}

type job struct {
	index int
	req   domain.AnalysisRequest
}

// Run analyzes every item and reassembles outcomes in input order. Items
// with unparseable URLs fail fast with a validation reason and never reach
// the network.
func (o *Orchestrator) Run(ctx context.Context, items []BatchItem) domain.BatchResult {
	outcomes := make([]domain.Outcome, len(items))
	jobs := make(chan job, len(items))

	for i, item := range items {
		req, err := domain.NewAnalysisRequest(item.URL, item.CompanyName, item.Location)
		if err != nil {
			outcomes[i] = domain.Outcome{
				Request: domain.AnalysisRequest{URL: item.URL},
				Failure: &domain.Failure{URL: item.URL, Reason: err.Error()},
			}
			continue
		}
		jobs <- job{index: i, req: req}
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < o.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				outcomes[j.index] = o.analyzeOne(ctx, j.req)
			}
		}()
	}
	wg.Wait()

	return domain.BatchResult{Outcomes: outcomes}
}

func (o *Orchestrator) analyzeOne(ctx context.Context, req domain.AnalysisRequest) domain.Outcome {
	// Abandon cooperatively once the batch is cancelled.
	if err := ctx.Err(); err != nil {
		return domain.Outcome{
			Request: req,
			Failure: &domain.Failure{URL: req.URL, Reason: "CANCELLED"},
		}
	}

	result, err := o.pipeline.Analyze(ctx, req)
	if err != nil {
		o.logger.Warn("analysis failed", zap.String("url", req.URL), zap.Error(err))
		return domain.Outcome{
			Request: req,
			Failure: &domain.Failure{URL: req.URL, Reason: failureKind(err)},
		}
	}
	return domain.Outcome{Request: req, Result: result}
}
