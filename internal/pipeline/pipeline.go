// Package pipeline fans battle card generation out across a bounded worker
// pool and reassembles results in input order.
package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dqe-comms/battlecard-cli/internal/analyzer"
	"github.com/dqe-comms/battlecard-cli/internal/extract"
	"github.com/dqe-comms/battlecard-cli/internal/model"
	"github.com/dqe-comms/battlecard-cli/pkg/geocode"
)

// DefaultWorkers is the pool size used when the caller passes zero.
const DefaultWorkers = 10

const analysisDateFormat = "2006-01-02 15:04:05"

// Orchestrator turns lead rows into battle cards. Each row is one task:
// extract, geocode, analyze, assemble. Tasks share nothing mutable except
// the analyzer's usage tracker.
type Orchestrator struct {
	geocoder geocode.Client
	analyzer *analyzer.Analyzer
	now      func() time.Time
}

// New creates an Orchestrator.
func New(geocoder geocode.Client, a *analyzer.Analyzer) *Orchestrator {
	return &Orchestrator{
		geocoder: geocoder,
		analyzer: a,
		now:      time.Now,
	}
}

// Run processes every row on a pool of workers and returns one card per
// row in input order: card i carries 1-based row index i+1, whatever the
// completion order was. A failing row yields a synthetic fallback card;
// the batch always runs to completion.
func (o *Orchestrator) Run(ctx context.Context, rows []model.LeadRecord, workers int) []model.BattleCard {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	zap.L().Info("pipeline: processing batch",
		zap.Int("rows", len(rows)),
		zap.Int("workers", workers),
	)

	// Fixed result-slot slice indexed by row: order restoration is O(1),
	// no sort after collection.
	cards := make([]model.BattleCard, len(rows))

	var completed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, row := range rows {
		g.Go(func() error {
			idx := i + 1
			cards[i] = o.processRow(gctx, idx, row)
			done := completed.Add(1)
			zap.L().Info("pipeline: progress",
				zap.Int64("completed", done),
				zap.Int("total", len(rows)),
			)
			return nil
		})
	}

	// Workers never return errors; failures become fallback cards.
	_ = g.Wait()

	return cards
}

// processRow builds one battle card, converting a panic anywhere in the
// row's processing into a synthetic failed card instead of killing the run.
func (o *Orchestrator) processRow(ctx context.Context, idx int, row model.LeadRecord) (card model.BattleCard) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("pipeline: row processing panicked",
				zap.Int("row", idx),
				zap.Any("panic", r),
			)
			card = o.failedCard(idx, fmt.Sprintf("%v", r))
		}
	}()

	log := zap.L().With(zap.Int("row", idx), zap.String("name", row.Get("Name", "Unknown")))
	log.Info("pipeline: processing row")

	ey := extract.EYData(row)
	cb := extract.ConnectBaseData(row)
	tenants := extract.AdditionalTenants(row)

	geo := o.geocoder.Geocode(ctx, ey.Address, ey.City, ey.State, ey.Zipcode)
	if geo.Status == model.GeocodeSuccess {
		log.Debug("pipeline: geocoded",
			zap.Float64p("lat", geo.Latitude),
			zap.Float64p("lng", geo.Longitude),
		)
	} else {
		log.Warn("pipeline: geocode degraded", zap.String("status", geo.Status))
	}

	if !cb.HasEnrichment() {
		log.Info("pipeline: no connectbase data, analyzing with EY data only")
	}
	analysis := o.analyzer.Analyze(ctx, ey, cb)

	return model.BattleCard{
		EYFileData:        ey,
		ConnectBaseData:   cb,
		GeocodeData:       geo,
		LLMAnalysis:       analysis,
		AdditionalTenants: tenants,
		Metadata: model.CardMetadata{
			AnalysisDate: o.now().Format(analysisDateFormat),
			CSVRowIndex:  idx,
		},
	}
}

// failedCard is the synthetic substitute for a row whose processing failed
// outright. It keeps the batch invariant: every index yields exactly one
// card.
func (o *Orchestrator) failedCard(idx int, reason string) model.BattleCard {
	return model.BattleCard{
		GeocodeData: model.GeocodeResult{
			Status: model.GeocodeError,
		},
		LLMAnalysis:       model.FallbackAnalysis(reason),
		AdditionalTenants: []string{},
		Metadata: model.CardMetadata{
			AnalysisDate: o.now().Format(analysisDateFormat),
			CSVRowIndex:  idx,
			Error:        reason,
		},
	}
}
