// Package pipeline orchestrates one allocation run: normalize each
// record's address, geocode it, classify the outcome, resolve the
// jurisdiction, then aggregate the report tables.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"premalloc/internal/cache"
	"premalloc/internal/classify"
	"premalloc/internal/geocode"
	"premalloc/internal/jurisdiction"
	"premalloc/internal/llm"
	"premalloc/internal/model"
	"premalloc/internal/report"
	"premalloc/internal/worker"
)

// Pipeline processes one uploaded file synchronously, record by record,
// in input order. Each run owns its own accumulator state; nothing is
// shared across concurrent runs.
type Pipeline struct {
	geocoder   geocode.Geocoder
	resolver   jurisdiction.Resolver
	throttle   *worker.Throttle
	aggregator *report.Aggregator
	narrator   llm.Provider
	config     *model.Config
}

// New assembles a pipeline from configuration, wiring the Census
// geocoder behind the configured cache.
func New(cfg *model.Config) (*Pipeline, error) {
	var geocoder geocode.Geocoder = geocode.NewCensusClient(cfg.Geocoder)
	if cfg.Cache.Enabled {
		var store cache.Cache
		if cfg.Cache.Dir != "" {
			store = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		} else {
			store = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.TTL)
		}
		geocoder = geocode.NewCached(geocoder, store, cfg.Cache.TTL)
	}
	return NewWithGeocoder(cfg, geocoder)
}

// NewWithGeocoder assembles a pipeline around an explicit geocoder.
func NewWithGeocoder(cfg *model.Config, geocoder geocode.Geocoder) (*Pipeline, error) {
	resolver, err := jurisdiction.New(cfg.Jurisdiction)
	if err != nil {
		return nil, fmt.Errorf("jurisdiction resolver: %w", err)
	}

	categories, err := report.StrategyFromName(cfg.Report.CategoryStrategy)
	if err != nil {
		return nil, fmt.Errorf("category strategy: %w", err)
	}

	// The narrative is optional; a misconfigured provider downgrades to
	// a warning rather than blocking allocation runs.
	narrator, err := llm.NewProvider(cfg.LLM)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: LLM provider unavailable: %v\n", err)
	}

	return &Pipeline{
		geocoder:   geocoder,
		resolver:   resolver,
		throttle:   worker.NewThrottle(cfg.Limits.RequestsPerSecond, cfg.Limits.Burst, cfg.Limits.CallDelay),
		aggregator: report.NewAggregator(categories),
		narrator:   narrator,
		config:     cfg,
	}, nil
}

// Run processes the parsed records and produces the run result. Rows
// without any address are skipped; geocoder call failures classify as
// Unverified Address and the run continues. Only context cancellation
// or internal failures abort the run.
func (p *Pipeline) Run(ctx context.Context, records []model.SourceRecord) (*model.RunResult, error) {
	total := len(records)
	limit := total
	if max := p.config.Limits.MaxRecords; max > 0 && total > max {
		limit = max
	}

	classified := make([]model.ClassifiedRecord, 0, limit)
	for i, rec := range records[:limit] {
		if !rec.HasAddress() {
			p.logf("Skipping record %d: no address found\n", i+1)
			continue
		}

		if len(classified) > 0 {
			if err := p.throttle.Wait(ctx); err != nil {
				return nil, fmt.Errorf("throttle: %w", err)
			}
		}

		address := rec.OneLineAddress()
		p.logf("Geocoding %d/%d: %s\n", i+1, limit, address)

		outcome, err := p.geocoder.Geocode(ctx, address)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			p.logf("Geocoding error for %s: %v\n", address, err)
			outcome = model.GeocodeOutcome{Failed: true}
		}

		code, description := classify.Classify(outcome, address)
		classified = append(classified, model.ClassifiedRecord{
			Source:           rec,
			Outcome:          outcome,
			Jurisdiction:     p.resolver.Resolve(rec.City, outcome.Coordinates),
			MatchCode:        code,
			MatchDescription: description,
			Premium:          rec.Premium,
		})
	}

	summary := report.Summary(classified)
	result := &model.RunResult{
		Success:         true,
		TotalRecords:    len(classified),
		MatchPercentage: matchPercentage(summary, len(classified)),
		Reports:         p.aggregator.Assemble(classified),
		Summary:         summary,
	}
	if limit < total {
		result.Message = fmt.Sprintf("Large file detected. Processed first %d records of %d total.", limit, total)
	}

	p.narrate(ctx, result)
	return result, nil
}

// narrate attaches the optional exception narrative. Generated after
// the numbers are final and never allowed to fail the run.
func (p *Pipeline) narrate(ctx context.Context, result *model.RunResult) {
	if p.narrator == nil {
		return
	}
	exceptions, ok := result.Reports.Get(model.ReportMatchExceptions)
	if !ok {
		return
	}

	resp, err := p.narrator.Narrate(ctx, llm.NarrateRequest{
		Exceptions:   exceptions,
		TotalRecords: result.TotalRecords,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: exception narrative failed: %v\n", err)
		return
	}
	result.Narrative = resp.Narrative
}

// matchPercentage renders the good-match share as "NN.NN".
func matchPercentage(summary map[string]int, total int) string {
	if total == 0 {
		return "0.00"
	}
	good := decimal.NewFromInt(int64(summary[classify.CodeGoodMatch]))
	return good.Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(int64(total))).StringFixed(2)
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
