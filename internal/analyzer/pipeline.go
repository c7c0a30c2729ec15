// Package analyzer runs the per-URL signal pipeline and fans batches out
// over a bounded worker pool.
package analyzer

import (
	"context"
	"errors"
	"sync"
	"time"

	"analyzer/internal/carbon"
	"analyzer/internal/domain"
	"analyzer/internal/fetch"
	"analyzer/internal/location"
	"analyzer/internal/monitoring"
	"analyzer/internal/reputation"
	"analyzer/internal/scoring"
	"analyzer/internal/website"

	"go.uber.org/zap"
)

// Archive persists completed results. Best-effort: errors are logged and
// never fail an analysis.
type Archive interface {
	SaveResult(ctx context.Context, result *domain.AnalysisResult) error
}

// Pipeline runs the full signal collection and scoring chain for one URL.
type Pipeline struct {
	fetcher    *fetch.Fetcher
	website    *website.Extractor
	reputation *reputation.Extractor
	location   *location.Lookup
	archive    Archive
	metrics    *monitoring.Metrics
	logger     *zap.Logger
}

func NewPipeline(f *fetch.Fetcher, w *website.Extractor, r *reputation.Extractor,
	l *location.Lookup, archive Archive, m *monitoring.Metrics, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		fetcher:    f,
		website:    w,
		reputation: r,
		location:   l,
		archive:    archive,
		metrics:    m,
		logger:     logger,
	}
}

// Analyze runs fetch+extraction and the reputation lookup concurrently, then
// scores the combined signals. A fetch failure fails the whole request; the
// reputation and hosting collaborators only ever degrade.
func (p *Pipeline) Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	start := time.Now()

	var (
		wg       sync.WaitGroup
		web      domain.WebsiteSignals
		fetchErr error
		rep      domain.ReputationSignals
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		page, err := p.fetcher.Fetch(ctx, req.URL)
		if err != nil {
			fetchErr = err
			return
		}
		web = p.website.Extract(ctx, req.URL, page)
	}()
	go func() {
		defer wg.Done()
		rep = p.reputation.Extract(ctx, req.CompanyName)
	}()
	wg.Wait()

	if fetchErr != nil {
		p.metrics.IncFailuresTotal(failureKind(fetchErr))
		return nil, fetchErr
	}
	if !rep.Available {
		p.metrics.IncDegradedSignal("reputation")
	}
	if web.HostingGreen == domain.HostingUnknown {
		p.metrics.IncDegradedSignal("hosting")
	}

	loc := p.location.Resolve(req.Location)
	web.CarbonGrams = carbon.EstimateGrams(web.PageWeightBytes, web.HostingGreen)

	scores, total, highlights, risks, summary := scoring.Score(web, rep, loc)

	result := &domain.AnalysisResult{
		URL:        req.URL,
		Scores:     scores,
		Total:      total,
		Highlights: highlights,
		Risks:      risks,
		Summary:    summary,
		Raw: domain.RawSignals{
			Website:    web,
			Reputation: rep,
			Location:   loc,
		},
		AnalyzedAt: time.Now().UTC(),
	}

	if p.archive != nil {
		if err := p.archive.SaveResult(ctx, result); err != nil {
			p.logger.Error("failed to archive result", zap.String("url", req.URL), zap.Error(err))
		}
	}

	p.metrics.IncAnalysesTotal()
	p.metrics.ObservePipelineDuration(time.Since(start).Seconds())
	p.logger.Info("analysis complete",
		zap.String("url", req.URL),
		zap.Int("score", total),
		zap.Duration("took", time.Since(start)))

	return result, nil
}

// failureKind maps an analysis error onto a short reason string for
// failure entries and metrics labels.
func failureKind(err error) string {
	var fe *domain.FetchError
	if errors.As(err, &fe) {
		return string(fe.Kind)
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return "VALIDATION"
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "CANCELLED"
	}
	return "INTERNAL"
}
