package moderation

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/modfence/modfence/pkg/domain"
	"github.com/modfence/modfence/pkg/infra/metrics"
)

// Analyzer is the classification backend seam.
type Analyzer interface {
	AnalyzeText(ctx context.Context, text string) (*domain.AnalysisResult, error)
	AnalyzeImage(ctx context.Context, image []byte) (*domain.AnalysisResult, error)
}

// Pipeline runs one moderation request end to end: normalize the window,
// extract the analyzable content, classify it, decide. Every failure past the
// inbound parse converts into a fail-open safe verdict; callers always
// receive a well-formed verdict and never an error. The bias is deliberate:
// a missed violation over blocked legitimate traffic.
type Pipeline struct {
	extractor *Extractor
	analyzer  Analyzer
	policy    Policy
	logger    *logrus.Logger
}

func NewPipeline(extractor *Extractor, analyzer Analyzer, policy Policy, logger *logrus.Logger) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		analyzer:  analyzer,
		policy:    policy,
		logger:    logger,
	}
}

// Moderate produces the verdict for one conversation window.
func (p *Pipeline) Moderate(ctx context.Context, window domain.Window) domain.Verdict {
	start := time.Now()

	verdict := p.moderate(ctx, window)

	duration := time.Since(start)
	metrics.ProcessingDuration.Observe(duration.Seconds())

	outcome := "allowed"
	if verdict.Blocked {
		outcome = "blocked"
	}
	metrics.RequestsTotal.WithLabelValues(outcome).Inc()

	p.logger.WithFields(logrus.Fields{
		"blocked":  verdict.Blocked,
		"reason":   verdict.Reason,
		"duration": duration.String(),
	}).Info("moderation verdict")

	return verdict
}

func (p *Pipeline) moderate(ctx context.Context, window domain.Window) (verdict domain.Verdict) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.WithField("panic", r).Error("moderation pipeline panicked, failing open")
			verdict = safeVerdict(p.policy)
		}
	}()

	current, kind, ok := Normalize(window)
	if !ok {
		return safeVerdict(p.policy)
	}

	result, err := p.classify(ctx, window, current, kind)
	if err != nil {
		p.logFailOpen(err)
		return safeVerdict(p.policy)
	}
	if result == nil {
		// Nothing analyzable was extracted.
		return safeVerdict(p.policy)
	}

	verdict = Decide(result, p.policy.ThresholdFor(kind), p.policy)
	if verdict.Blocked {
		metrics.BlockedTotal.WithLabelValues(string(kind)).Inc()
	}
	return verdict
}

func (p *Pipeline) classify(
	ctx context.Context,
	window domain.Window,
	current domain.Payload,
	kind domain.Kind,
) (*domain.AnalysisResult, error) {
	switch kind {
	case domain.KindImage:
		image, err := p.extractor.ExtractImage(ctx, current)
		if err != nil {
			return nil, err
		}
		return p.analyzer.AnalyzeImage(ctx, image)
	case domain.KindFile:
		text, err := p.extractor.ExtractFileText(ctx, current)
		if err != nil {
			return nil, err
		}
		if text == "" {
			return nil, nil
		}
		return p.analyzer.AnalyzeText(ctx, text)
	default:
		text := p.extractor.ExtractText(window)
		if text == "" {
			return nil, nil
		}
		return p.analyzer.AnalyzeText(ctx, text)
	}
}

func (p *Pipeline) logFailOpen(err error) {
	entry := p.logger.WithError(err)

	var backendErr *domain.BackendError
	var downloadErr *domain.DownloadError
	switch {
	case errors.As(err, &backendErr):
		metrics.BackendErrorsTotal.Inc()
		entry.Error("classification backend failed, failing open")
	case errors.As(err, &downloadErr):
		metrics.DownloadErrorsTotal.Inc()
		entry.Warn("resource download failed, failing open")
	case errors.Is(err, domain.ErrMissingResource):
		entry.Warn("message carries no resource url, failing open")
	default:
		entry.Error("moderation pipeline failed, failing open")
	}
}
