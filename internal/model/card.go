package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// GeocodeStatus values for GeocodeResult.Status. HTTP failures use the
// dynamic "error_<code>" form via GeocodeErrorStatus.
const (
	GeocodeSuccess   = "success"
	GeocodeNoResults = "no_results"
	GeocodeError     = "error"
)

// GeocodeErrorStatus returns the typed status for a non-200 HTTP response.
func GeocodeErrorStatus(code int) string {
	return fmt.Sprintf("error_%d", code)
}

// GeocodeQuality describes how precisely an address resolved.
type GeocodeQuality struct {
	Granularity string `json:"granularity"`
	PlaceID     string `json:"place_id"`
}

// GeocodeResult is the outcome of a single geocoding lookup. Failures are
// carried as a typed status, never as a raised error; coordinates stay nil
// on anything short of success.
type GeocodeResult struct {
	Latitude         *float64        `json:"latitude"`
	Longitude        *float64        `json:"longitude"`
	FormattedAddress string          `json:"formatted_address"`
	Status           string          `json:"geocode_status"`
	Quality          *GeocodeQuality `json:"geocode_quality"`
	Error            string          `json:"geocode_error,omitempty"`
}

// AnalysisStatus distinguishes a genuinely scored result from the canonical
// fallback, which is otherwise indistinguishable from a true zero.
type AnalysisStatus string

const (
	AnalysisScored   AnalysisStatus = "scored"
	AnalysisFallback AnalysisStatus = "fallback"
)

// FlexString accepts either a JSON string or a bare number. The scoring
// model emits "dqe_distance_feet" as a number when known and the sentinels
// "NOT_FOUND"/"NO_DATA" otherwise.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f FlexString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(f))
}

// DataConfidence is the 0.0-1.0 confidence component of an analysis:
// business-status recency (0-0.40) + employee validation (0-0.40) +
// source quality (0-0.20).
type DataConfidence struct {
	ConfidenceScore          float64  `json:"confidence_score"`
	BusinessStatusPoints     float64  `json:"business_status_points"`
	EmployeeValidationPoints float64  `json:"employee_validation_points"`
	SourceQualityPoints      float64  `json:"source_quality_points"`
	BusinessStatus           string   `json:"business_status"`
	BusinessStatusEvidence   string   `json:"business_status_evidence"`
	ValidatedEmployeeCount   *int     `json:"validated_employee_count"`
	EmployeeCountConfidence  string   `json:"employee_count_confidence"`
	EmployeeCountBasis       string   `json:"employee_count_basis"`
	EmployeeCountSources     []string `json:"employee_count_sources"`
	EmployeeComparison       string   `json:"employee_comparison"`
	LocationType             string   `json:"location_type"`
	DataQualityNotes         string   `json:"data_quality_notes"`
}

// NetworkAnalysis describes fiber proximity economics for the site.
type NetworkAnalysis struct {
	DistanceFeet     FlexString `json:"dqe_distance_feet"`
	NetworkCategory  string     `json:"network_category"`
	BuildCostAssess  string     `json:"build_cost_assessment"`
	NetworkAdvantage string     `json:"network_advantage"`
}

// BusinessAssessment captures scale and criticality of the business.
type BusinessAssessment struct {
	BusinessCriticality   string   `json:"business_criticality"`
	CriticalityReasoning  string   `json:"criticality_reasoning"`
	InfrastructureNeeds   []string `json:"infrastructure_needs"`
	BandwidthRequirements string   `json:"bandwidth_requirements"`
	EstimatedMonthlySpend *float64 `json:"estimated_monthly_spend"`
}

// CompetitiveContext summarizes who else serves the site.
type CompetitiveContext struct {
	CompetitorsAtSite   string `json:"competitors_at_site"`
	CompetitivePosition string `json:"competitive_position"`
}

// ICPFit is the 0-100 ideal-customer-profile component: network economics
// (0-20) + business scale and need (0-80).
type ICPFit struct {
	ICPFitScore            int                `json:"icp_fit_score"`
	NetworkEconomicsPoints int                `json:"network_economics_points"`
	BusinessScaleNeed      int                `json:"business_scale_need_points"`
	NetworkAnalysis        NetworkAnalysis    `json:"network_analysis"`
	BusinessAssessment     BusinessAssessment `json:"business_assessment"`
	CompetitiveContext     CompetitiveContext `json:"competitive_context"`
	Summary                string             `json:"icp_fit_summary"`
}

// SalesIntelligence is the actionable block sales works from.
type SalesIntelligence struct {
	PriorityLevel       string   `json:"priority_level"`
	PriorityReasoning   string   `json:"priority_reasoning"`
	KeySellingPoints    []string `json:"key_selling_points"`
	LikelyPainPoints    []string `json:"likely_pain_points"`
	CompetitiveAngles   []string `json:"competitive_angles"`
	DataGapsToResolve   []string `json:"data_gaps_to_resolve"`
	RecommendedApproach string   `json:"recommended_approach"`
	RecommendedServices []string `json:"recommended_services"`
	NextBestActions     []string `json:"next_best_actions"`
}

// PriorityDisqualify is the priority tier assigned to fallback analyses.
const PriorityDisqualify = "disqualify"

// AnalysisResult is the scoring document for one lead. The invariant for
// scored results is OverallScore == round(ConfidenceScore * ICPFitScore);
// confidence acts as a multiplicative suppressor.
type AnalysisResult struct {
	Status            AnalysisStatus    `json:"analysis_status"`
	OverallScore      int               `json:"overall_score"`
	DataConfidence    DataConfidence    `json:"data_confidence"`
	ICPFit            ICPFit            `json:"icp_fit"`
	SalesIntelligence SalesIntelligence `json:"sales_intelligence"`
}

// FallbackAnalysis returns the canonical zero-score analysis used whenever
// research, scoring, or row processing fails. Every score is zero, every
// list empty, and the failure reason lands in the quality notes.
func FallbackAnalysis(reason string) *AnalysisResult {
	return &AnalysisResult{
		Status:       AnalysisFallback,
		OverallScore: 0,
		DataConfidence: DataConfidence{
			BusinessStatus:          "unknown",
			BusinessStatusEvidence:  "Error during validation",
			EmployeeCountConfidence: "none",
			EmployeeCountBasis:      "validation failed",
			EmployeeCountSources:    []string{},
			EmployeeComparison:      NoData,
			LocationType:            "unknown",
			DataQualityNotes:        "Error: " + reason,
		},
		ICPFit: ICPFit{
			NetworkAnalysis: NetworkAnalysis{
				DistanceFeet:     "ERROR",
				NetworkCategory:  "unknown",
				BuildCostAssess:  "unknown",
				NetworkAdvantage: "Unable to assess",
			},
			BusinessAssessment: BusinessAssessment{
				BusinessCriticality:   "unknown",
				CriticalityReasoning:  "Unable to assess",
				InfrastructureNeeds:   []string{},
				BandwidthRequirements: "unknown",
			},
			CompetitiveContext: CompetitiveContext{
				CompetitorsAtSite:   NoData,
				CompetitivePosition: "Unable to assess",
			},
			Summary: "Unable to assess due to validation failure",
		},
		SalesIntelligence: SalesIntelligence{
			PriorityLevel:       PriorityDisqualify,
			PriorityReasoning:   "Data validation failed",
			KeySellingPoints:    []string{},
			LikelyPainPoints:    []string{},
			CompetitiveAngles:   []string{},
			DataGapsToResolve:   []string{},
			RecommendedApproach: "Unable to provide recommendation",
			RecommendedServices: []string{},
			NextBestActions:     []string{},
		},
	}
}

// CardMetadata records provenance for one battle card.
type CardMetadata struct {
	AnalysisDate string `json:"analysis_date"`
	CSVRowIndex  int    `json:"csv_row_index"`
	Error        string `json:"error,omitempty"`
}

// BattleCard is the per-lead aggregate output document. Cards are
// identified and ordered by their 1-based row index.
type BattleCard struct {
	EYFileData        EYData          `json:"ey_file_data"`
	ConnectBaseData   ConnectBaseData `json:"connectbase_data"`
	GeocodeData       GeocodeResult   `json:"geocode_data"`
	LLMAnalysis       *AnalysisResult `json:"llm_analysis"`
	AdditionalTenants []string        `json:"additional_tenants"`
	Metadata          CardMetadata    `json:"metadata"`
}

// TokenUsage tallies token consumption across the batch.
type TokenUsage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
	TotalTokens  int64 `json:"total_tokens"`
}
