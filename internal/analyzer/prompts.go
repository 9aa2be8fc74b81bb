package analyzer

import (
	"fmt"
	"strings"

	"github.com/dqe-comms/battlecard-cli/internal/model"
)

// researchPrompt asks the search-augmented model for a free-text report on
// the business, with a hard recency bias toward 2024-2026 evidence.
func researchPrompt(ey model.EYData, cb model.ConnectBaseData) string {
	location := fmt.Sprintf("%s, %s, %s", ey.Address, ey.City, ey.State)
	return fmt.Sprintf(`Search for and research the following business:
Name: %s
Address: %s
EY Employee Count: %s
ConnectBase Employee Count: %s
ConnectBase LinkedIn: %s

CRITICAL: Focus on RECENT data from 2024-2026 only. Prioritize:
1. LinkedIn company page and employee profiles (check for recent activity in 2024-2026)
2. Company website (verify this location is still listed)
3. Recent news articles or press releases (2024-2026)
4. Google Maps/Business listings with recent reviews (2024-2026)
5. Recent social media activity

IGNORE data older than 2024 unless no recent data exists. Data from 2022-2023 should be considered potentially outdated.

Provide a detailed report on:
1. Current operating status at this location (is the business still active HERE in 2025-2026?)
   - Check LinkedIn for recent employee posts from this location
   - Check Google Maps for recent reviews/photos
   - Verify the company website lists this address currently

2. Best estimate of employee count for THIS SPECIFIC LOCATION at %s
   - Look for LinkedIn employee counts at THIS specific office (recent data)
   - Check recent company announcements or news
   - If only company-wide data is available, estimate this location's share

3. Business type, vertical, and infrastructure/connectivity needs

4. This location's potential company footprint (e.g. headquarters, regional office, branch, etc.)

Focus on validating the employee count for THIS SPECIFIC OFFICE and confirming the business is CURRENTLY ACTIVE (2025-2026) at this address.

BE SKEPTICAL of data from 2022-2023. Businesses move, close, or restructure frequently.`,
		ey.Name, location, emptyToNA(ey.NoOfEmployees), cb.NoOfEmployees, cb.LinkedIn, location)
}

// scoringSystemPrompt frames the scoring pass. The rubric itself lives in
// the user prompt alongside the research findings.
const scoringSystemPrompt = `You are a sales intelligence analyst for DQE Communications, a fiber-optic telecommunications provider. You score business prospects from validated data and return only strict JSON.`

// scoringPrompt embeds the research output and all structured lead fields
// into the confidence x ICP rubric. When ConnectBase enrichment is absent
// the network sections switch to conservative no-data variants, but the
// analysis still runs on EY data and research alone.
func scoringPrompt(researchText string, ey model.EYData, cb model.ConnectBaseData) string {
	hasCB := cb.HasEnrichment()

	var b strings.Builder
	fmt.Fprintf(&b, "RESEARCH DATA FOUND:\n%s\n\n---\n", researchText)

	b.WriteString(`IMPORTANT: Today is February 2026. Only trust data from 2024-2026 as "recent" or "current".
Data from 2022-2023 should be considered potentially outdated for business operating status.

The best companies for DQE are companies with a mission-critical need for fast, reliable internet services.

TASK: Score this business on two dimensions: data confidence and ICP fit.

`)

	fmt.Fprintf(&b, `BUSINESS DETAILS FROM EY:
- Business Name: %s
- Address: %s, %s, %s
- EY Employee Count: %s

`, ey.Name, ey.Address, ey.City, ey.State, emptyToNA(ey.NoOfEmployees))

	if hasCB {
		fmt.Fprintf(&b, `CONNECTBASE DATA:
- CB Entity Name: %s
- CB Employee Count: %s
- CB Industry: %s
- CB Location Type: %s
- CB LinkedIn: %s
- CB Revenue: %s
- CB Monthly Network Spend: %s

DQE NETWORK INTELLIGENCE:
- DQE Site Distance: %s feet (distance to nearest DQE fiber)
- DQE Connection Status: %s
- DQE Network Status: %s
- Competitors at Site: %s

`, cb.EntityName, cb.NoOfEmployees, cb.Industry, cb.LocationType, cb.LinkedIn,
			cb.Revenue, cb.MonthlyNetworkSpend, cb.SiteDistance, cb.ConnectionStatus,
			cb.NetworkStatus, cb.SiteCompetitors)
	} else {
		b.WriteString(`CONNECTBASE DATA:
No ConnectBase data is available for this location.

DQE NETWORK INTELLIGENCE:
- Not available without ConnectBase data

NOTE: You must rely entirely on EY data and the research above for this analysis.
Focus extra effort on validating the business and finding employee count data.

`)
	}

	b.WriteString(`SCORING METHODOLOGY:

COMPONENT 1: DATA CONFIDENCE SCORE (0.0 - 1.0 multiplier)
How confident are we that our data is accurate for THIS specific location?

A. Business Operating Status (0.0 - 0.40):
   - 0.40: Confirmed active at this address with RECENT evidence (2024-2026: LinkedIn activity, website, news, Google reviews)
   - 0.30: Strong indicators of recent activity (LinkedIn employees at location, recent reviews/posts from 2024-2026)
   - 0.20: Appears active but only older evidence (2022-2023 data, unclear if still current)
   - 0.10: Uncertain - only very old data (pre-2022) or conflicting signals
   - 0.00: Clear evidence of closure, move, or address mismatch

B. Employee Count Validation for THIS Location (0.0 - 0.40):
`)
	if hasCB {
		b.WriteString("   Compare EY vs ConnectBase vs the research for THIS SPECIFIC OFFICE:\n")
	} else {
		b.WriteString("   Use EY data and the research to validate the employee count for THIS SPECIFIC OFFICE:\n")
	}
	b.WriteString(`   - 0.40: Multiple sources align within ±10 employees, confident this is location-specific
   - 0.30: Sources generally agree (±25 employees), likely accurate for this location
   - 0.20: Moderate agreement OR only company-wide data (must estimate location split)
   - 0.10: Significant discrepancies OR company-wide only with unclear allocation
   - 0.00: Cannot validate employee presence or major data conflicts

C. Source Quality & Data Recency (0.0 - 0.20):
   - 0.20: Multiple authoritative sources from 2024-2026 (LinkedIn, filings, recent announcements, company website)
   - 0.15: Reliable sources but single-source dependent or a mix of recent/older data
   - 0.10: Limited sources or most data from 2022-2023
   - 0.05: Data appears stale (pre-2022) or contradictory
   - 0.00: No reliable data sources

CONFIDENCE SCORE = A + B + C (max 1.0)

COMPONENT 2: ICP FIT SCORE (0-100 points)
If the data IS accurate, how valuable is this customer?

A. Network Economics (0-20 points):
`)
	if hasCB {
		b.WriteString(`   Based on DQE Site Distance and connection status:
   - 20 pts: On-net (distance = 0 or connection status indicates 'on-net' or 'connected')
   - 10 pts: Near-net (distance > 0, any distance showing near-net status)
   - 0 pts: Not near DQE network or NOT_FOUND

   NOTE: On-net prospects have a zero build cost advantage, but business characteristics drive overall fit.
`)
	} else {
		b.WriteString(`   Without network data, use conservative estimates:
   - 10 pts: Network proximity unknown - assume moderate build cost

   NOTE: Without network data, focus scoring on business characteristics.
`)
	}
	b.WriteString(`
B. Business Scale & Infrastructure Need (0-80 points):
   Combine validated employee count with business criticality:

   HIGH-CRITICALITY businesses (need dedicated fiber/DIA):
   - Technology, data centers, financial services, healthcare facilities
   - Legal/accounting firms, engineering, media/production companies
   - Businesses with real-time data needs, cloud infrastructure, distributed teams
   - Government, research facilities, higher education

   MODERATE-CRITICALITY businesses:
   - General corporate offices, professional services
   - Standard business operations needing reliable connectivity

   LOW-CRITICALITY businesses (unlikely to need DIA):
   - Retail, food service, personal services, residential
   - Small consumer-facing businesses with minimal data needs

   SCORING:
   - 80 pts: 100+ employees AND high-criticality business
   - 60 pts: 50-99 employees AND high-criticality OR 100+ moderate-criticality
   - 40 pts: 25-49 high-criticality OR 50-99 moderate-criticality
   - 25 pts: 25-49 moderate-criticality OR 10-24 high-criticality
   - 15 pts: 10-24 moderate-criticality OR small high-criticality
   - 5 pts: Small office (1-9 employees) but high-criticality
   - 0 pts: Low-criticality business type unlikely to need dedicated fiber

ICP FIT SCORE = Network Economics + Business Scale & Need (max 100)

FINAL SCORE = Data Confidence × ICP Fit Score

Example Calculations:
- Confidence: 0.85, ICP: 80 → Final Score: 68
- Confidence: 0.50, ICP: 90 → Final Score: 45 (good opportunity but uncertain data)
- Confidence: 0.95, ICP: 25 → Final Score: 24 (confident it's not a good fit)
- Confidence: 0.30, ICP: 60 → Final Score: 18 (too uncertain to pursue)

OUTPUT FORMAT (strict JSON):
{
  "overall_score": <0-100, calculated as confidence_score × icp_fit_score>,

  "data_confidence": {
    "confidence_score": <0.0-1.0>,
    "business_status_points": <0.0-0.40>,
    "employee_validation_points": <0.0-0.40>,
    "source_quality_points": <0.0-0.20>,

    "business_status": "<operating|closed|moved|uncertain>",
    "business_status_evidence": "<key evidence for status determination>",

    "validated_employee_count": <number or null>,
    "employee_count_confidence": "<high|medium|low>",
    "employee_count_basis": "<location-specific or company-wide estimate>",
    "employee_count_sources": ["source1", "source2"],
    "employee_comparison": "<EY: X, CB: Y, Validated: Z, differences explained>",

    "location_type": "<headquarters|regional_office|branch_office|unclear>",
    "data_quality_notes": "<key concerns or validation details>"
  },

  "icp_fit": {
    "icp_fit_score": <0-100>,
    "network_economics_points": <0-20>,
    "business_scale_need_points": <0-80>,

    "network_analysis": {
      "dqe_distance_feet": <number or "NOT_FOUND" or "NO_DATA">,
      "network_category": "<on_net|near_net|not_near_net|not_found|no_data>",
      "build_cost_assessment": "<zero|low|moderate|high|not_viable|unknown>",
      "network_advantage": "<why DQE is well-positioned or challenges>"
    },

    "business_assessment": {
      "business_criticality": "<high|moderate|low>",
      "criticality_reasoning": "<why this business type needs/doesn't need dedicated fiber>",
      "infrastructure_needs": ["need1", "need2", "need3"],
      "bandwidth_requirements": "<high|moderate|low>",
      "estimated_monthly_spend": <number or null>
    },

    "competitive_context": {
      "competitors_at_site": "<list from the site competitor data or 'Unknown - no network data'>",
      "competitive_position": "<DQE advantage or disadvantages or 'Unknown without network data'>"
    },

    "icp_fit_summary": "<2-3 sentences on overall fit>"
  },

  "sales_intelligence": {
    "priority_level": "<immediate|high|medium|low|disqualify>",
    "priority_reasoning": "<explain priority based on final score: confidence × ICP>",

    "key_selling_points": ["point1", "point2", "point3"],
    "likely_pain_points": ["pain1", "pain2"],
    "competitive_angles": ["angle1", "angle2"],

    "data_gaps_to_resolve": ["what sales should validate before outreach"],
    "recommended_approach": "<specific approach based on confidence and opportunity>",
    "recommended_services": ["DIA", "SD-WAN", "Managed Security", "etc"],
    "next_best_actions": ["action1", "action2", "action3"]
  }
}

CRITICAL PRINCIPLES:
- The final score naturally reflects reality: high confidence + high ICP = high score
- Low confidence suppresses scores even for great opportunities (need validation first)
- High confidence about non-ICP businesses = low scores (confident they're not a fit)
`)
	if hasCB {
		b.WriteString(`- On-net with validated data and strong ICP fit should score in the 70-95 range
- Use DQE Site Distance to determine on-net vs near-net status
`)
	} else {
		b.WriteString(`- Without network data, scores will be lower (max ~60-70) due to unknown build costs
- Without DQE distance data, default to "NO_DATA" and "unknown" for network fields
`)
	}
	b.WriteString(`- Be realistic about employee counts - many won't have location-specific data
- Focus on business types and scale that need dedicated fiber connectivity
- Prioritize recent data (2024-2026) when assessing business status and confidence

Return ONLY valid JSON, no additional text.`)

	return b.String()
}

func emptyToNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return model.NoData
	}
	return s
}
