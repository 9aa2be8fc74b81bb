package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dqe-comms/battlecard-cli/internal/analyzer"
	"github.com/dqe-comms/battlecard-cli/internal/config"
	"github.com/dqe-comms/battlecard-cli/internal/fetcher"
	"github.com/dqe-comms/battlecard-cli/internal/model"
	"github.com/dqe-comms/battlecard-cli/internal/pipeline"
	"github.com/dqe-comms/battlecard-cli/internal/sink"
	"github.com/dqe-comms/battlecard-cli/internal/store"
	"github.com/dqe-comms/battlecard-cli/internal/summary"
	"github.com/dqe-comms/battlecard-cli/pkg/anthropic"
	"github.com/dqe-comms/battlecard-cli/pkg/geocode"
	"github.com/dqe-comms/battlecard-cli/pkg/perplexity"
)

var (
	generateInput     string
	generateOutput    string
	generateBucket    string
	generateWorkers   int
	generateLocalOnly bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate battle cards from an enriched lead file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		bucket := generateBucket
		if bucket == "" {
			bucket = cfg.Storage.Bucket
		}
		workers := generateWorkers
		if workers <= 0 {
			workers = cfg.Batch.Workers
		}

		leads, err := fetcher.ReadLeads(generateInput)
		if err != nil {
			return eris.Wrap(err, "read leads")
		}
		zap.L().Info("loaded leads", zap.String("file", generateInput), zap.Int("rows", len(leads)))

		st, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return eris.Wrap(err, "open run store")
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate run store")
		}

		run, err := st.CreateRun(ctx, generateInput, generateOutput)
		if err != nil {
			return eris.Wrap(err, "create run record")
		}

		cards, totals := runBatch(ctx, cfg, leads, workers)

		sum := summary.Build(cards, totals, time.Now())
		output := model.BatchOutput{Summary: sum, BattleCards: cards}

		persistOutput(ctx, cfg, output, generateOutput, bucket, generateLocalOnly)
		logSummary(sum)

		// The run record must be finalized even when the batch was
		// interrupted, so the store write ignores the cancellation.
		if err := st.FinishRun(context.WithoutCancel(ctx), run.ID, runStatus(ctx),
			sum.TotalRecords, sum.AnalyzedRecords, totals); err != nil {
			zap.L().Warn("failed to record run completion", zap.Error(err))
		}

		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateInput, "input", "tenants_enriched.csv", "lead file to process (.csv or .xlsx)")
	generateCmd.Flags().StringVar(&generateOutput, "output", "dqe_prospects", "output document name")
	generateCmd.Flags().StringVar(&generateBucket, "bucket", "", "GCS bucket (defaults to storage.bucket config)")
	generateCmd.Flags().IntVar(&generateWorkers, "workers", 0, "parallel workers (defaults to batch.workers config)")
	generateCmd.Flags().BoolVar(&generateLocalOnly, "local-only", false, "skip the GCS upload, write only the local file")
	rootCmd.AddCommand(generateCmd)
}

// runStatus maps the batch context's final state onto a run status. A
// cancelled context means the batch was interrupted and its remaining rows
// degraded to fallback cards, so the run is recorded as failed.
func runStatus(ctx context.Context) model.RunStatus {
	if ctx.Err() != nil {
		return model.RunStatusFailed
	}
	return model.RunStatusComplete
}

// runBatch wires the collaborators and processes every lead row.
func runBatch(ctx context.Context, cfg *config.Config, leads []model.LeadRecord, workers int) ([]model.BattleCard, model.TokenUsage) {
	usage := analyzer.NewUsageTracker()

	research := perplexity.NewClient(cfg.Perplexity.Key,
		perplexity.WithBaseURL(cfg.Perplexity.BaseURL),
		perplexity.WithModel(cfg.Perplexity.Model),
	)
	scoring := anthropic.NewClient(cfg.Anthropic.Key)

	a := analyzer.New(research, scoring, analyzer.Config{
		ResearchModel:       cfg.Perplexity.Model,
		ResearchTemperature: cfg.Perplexity.Temperature,
		ScoringModel:        cfg.Anthropic.Model,
		ScoringTemperature:  cfg.Anthropic.Temperature,
		ScoringMaxTokens:    cfg.Anthropic.MaxTokens,
	}, usage)

	geocoder := geocode.NewClient(cfg.Geocode.Key,
		geocode.WithBaseURL(cfg.Geocode.BaseURL),
		geocode.WithRegionCode(cfg.Geocode.RegionCode),
		geocode.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.Geocode.TimeoutSecs) * time.Second,
		}),
	)

	cards := pipeline.New(geocoder, a).Run(ctx, leads, workers)

	totals := usage.Totals()
	zap.L().Info("token usage",
		zap.Int64("input_tokens", totals.InputTokens),
		zap.Int64("output_tokens", totals.OutputTokens),
		zap.Int64("total_tokens", totals.TotalTokens),
	)
	return cards, totals
}

// persistOutput saves the document to GCS and locally. Failures are logged
// and swallowed: the batch result is already in hand and a dead bucket
// should not fail the run.
func persistOutput(ctx context.Context, cfg *config.Config, output model.BatchOutput, name, bucket string, localOnly bool) {
	if !localOnly {
		gcs, err := sink.NewGCS(ctx, bucket)
		if err != nil {
			zap.L().Error("gcs sink unavailable", zap.Error(err))
		} else if err := gcs.Persist(ctx, output, name); err != nil {
			zap.L().Error("gcs persist failed", zap.Error(err))
		}
	}

	local := sink.NewLocal(cfg.Storage.LocalPath)
	if err := local.Persist(ctx, output, name); err != nil {
		zap.L().Error("local persist failed", zap.Error(err))
	}
}

// logSummary mirrors the persisted summary into the run log.
func logSummary(sum model.BatchSummary) {
	zap.L().Info("batch summary",
		zap.Int("total_records", sum.TotalRecords),
		zap.Int("analyzed_records", sum.AnalyzedRecords),
		zap.Int("skipped_records", sum.SkippedRecords),
		zap.Float64("avg_score", sum.AvgScore),
		zap.Float64("avg_confidence", sum.AvgConfidence),
	)
	for i, p := range sum.TopProspects {
		if i >= 5 {
			break
		}
		zap.L().Info("top prospect",
			zap.Int("rank", i+1),
			zap.String("business", p.BusinessName),
			zap.Int("score", p.Score),
			zap.Float64("confidence", p.Confidence),
			zap.String("priority", p.Priority),
		)
	}
}
