package model

import "time"

// Score-distribution bucket labels, matching the map visualization contract.
const (
	BucketExcellent    = "80-100 (Excellent)"
	BucketGood         = "60-79 (Good)"
	BucketFair         = "40-59 (Fair)"
	BucketPoor         = "20-39 (Poor)"
	BucketDisqualified = "0-19 (Disqualified)"
)

// Prospect is one top-prospect entry in the batch summary.
type Prospect struct {
	BusinessName       string  `json:"business_name"`
	Address            string  `json:"address"`
	City               string  `json:"city"`
	State              string  `json:"state"`
	Score              int     `json:"score"`
	Confidence         float64 `json:"confidence"`
	ICPScore           int     `json:"icp_score"`
	ValidatedEmployees *int    `json:"validated_employees"`
	Priority           string  `json:"priority"`
	DQEDistance        string  `json:"dqe_distance"`
}

// BatchSummary is the derived aggregate over all battle cards in a run.
// Averages, the distribution, and top prospects cover only cards with a
// nonzero overall score; a zero is treated as "not meaningfully scored".
type BatchSummary struct {
	TotalRecords      int            `json:"total_records"`
	AnalyzedRecords   int            `json:"analyzed_records"`
	SkippedRecords    int            `json:"skipped_records"`
	GenerationDate    string         `json:"generation_date"`
	AvgScore          float64        `json:"avg_score"`
	AvgConfidence     float64        `json:"avg_confidence"`
	ScoreDistribution map[string]int `json:"score_distribution"`
	TokenUsage        TokenUsage     `json:"token_usage"`
	TopProspects      []Prospect     `json:"top_prospects"`
}

// BatchOutput is the single document persisted per run.
type BatchOutput struct {
	Summary     BatchSummary `json:"summary"`
	BattleCards []BattleCard `json:"battle_cards"`
}

// RunStatus tracks a batch run's lifecycle in the run-history store.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run is one recorded batch execution.
type Run struct {
	ID              string     `json:"id"`
	InputFile       string     `json:"input_file"`
	OutputName      string     `json:"output_name"`
	Status          RunStatus  `json:"status"`
	TotalRecords    int        `json:"total_records"`
	AnalyzedRecords int        `json:"analyzed_records"`
	InputTokens     int64      `json:"input_tokens"`
	OutputTokens    int64      `json:"output_tokens"`
	StartedAt       time.Time  `json:"started_at"`
	FinishedAt      *time.Time `json:"finished_at,omitempty"`
}
