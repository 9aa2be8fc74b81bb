// Package summary derives batch-level statistics from a set of battle cards.
package summary

import (
	"math"
	"sort"
	"time"

	"github.com/dqe-comms/battlecard-cli/internal/model"
)

const generationDateFormat = "2006-01-02 15:04:05"

// TopProspectLimit caps the top-prospects list.
const TopProspectLimit = 20

// Build computes the summary for a finished batch. Cards with a zero
// overall score are excluded from the average, the distribution, and the
// top prospects: a zero is "not meaningfully scored" (fallbacks land
// there), not a legitimate low score.
func Build(cards []model.BattleCard, usage model.TokenUsage, now time.Time) model.BatchSummary {
	scored := make([]model.BattleCard, 0, len(cards))
	for _, c := range cards {
		if c.LLMAnalysis != nil && c.LLMAnalysis.OverallScore > 0 {
			scored = append(scored, c)
		}
	}

	var scoreSum, confSum float64
	dist := map[string]int{
		model.BucketExcellent:    0,
		model.BucketGood:         0,
		model.BucketFair:         0,
		model.BucketPoor:         0,
		model.BucketDisqualified: 0,
	}
	for _, c := range scored {
		s := c.LLMAnalysis.OverallScore
		scoreSum += float64(s)
		confSum += c.LLMAnalysis.DataConfidence.ConfidenceScore
		dist[bucketFor(s)]++
	}

	avgScore, avgConf := 0.0, 0.0
	if len(scored) > 0 {
		avgScore = round1(scoreSum / float64(len(scored)))
		avgConf = round2(confSum / float64(len(scored)))
	}

	return model.BatchSummary{
		TotalRecords:      len(cards),
		AnalyzedRecords:   len(scored),
		SkippedRecords:    len(cards) - len(scored),
		GenerationDate:    now.Format(generationDateFormat),
		AvgScore:          avgScore,
		AvgConfidence:     avgConf,
		ScoreDistribution: dist,
		TokenUsage:        usage,
		TopProspects:      topProspects(scored),
	}
}

// topProspects ranks the nonzero-score cards by score descending. The sort
// is stable, so ties keep input order.
func topProspects(scored []model.BattleCard) []model.Prospect {
	ranked := make([]model.BattleCard, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].LLMAnalysis.OverallScore > ranked[j].LLMAnalysis.OverallScore
	})

	if len(ranked) > TopProspectLimit {
		ranked = ranked[:TopProspectLimit]
	}

	prospects := make([]model.Prospect, 0, len(ranked))
	for _, c := range ranked {
		prospects = append(prospects, model.Prospect{
			BusinessName:       c.EYFileData.Name,
			Address:            c.EYFileData.Address,
			City:               c.EYFileData.City,
			State:              c.EYFileData.State,
			Score:              c.LLMAnalysis.OverallScore,
			Confidence:         c.LLMAnalysis.DataConfidence.ConfidenceScore,
			ICPScore:           c.LLMAnalysis.ICPFit.ICPFitScore,
			ValidatedEmployees: c.LLMAnalysis.DataConfidence.ValidatedEmployeeCount,
			Priority:           c.LLMAnalysis.SalesIntelligence.PriorityLevel,
			DQEDistance:        c.ConnectBaseData.SiteDistance,
		})
	}
	return prospects
}

func bucketFor(score int) string {
	switch {
	case score >= 80:
		return model.BucketExcellent
	case score >= 60:
		return model.BucketGood
	case score >= 40:
		return model.BucketFair
	case score >= 20:
		return model.BucketPoor
	default:
		return model.BucketDisqualified
	}
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
