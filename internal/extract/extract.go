// Package extract maps raw lead rows into the fixed battle card sections.
// Extraction has no failure modes: missing columns degrade to defaults.
package extract

import (
	"strings"

	"github.com/dqe-comms/battlecard-cli/internal/model"
)

// EYData builds the EY section of a card. Missing columns default to "".
func EYData(row model.LeadRecord) model.EYData {
	return model.EYData{
		Name:                     row.Get("Name", ""),
		Address:                  row.Get("Address", ""),
		City:                     row.Get("City", ""),
		State:                    row.Get("State", ""),
		Zipcode:                  row.Get("Zipcode", ""),
		Bandwidth:                row.Get("Bandwitdh ( DIA or Broadband)", ""),
		Prediction:               row.Get("Prediction", ""),
		DirectWholesalePred:      row.Get("Direct or Wholesale Prediction", ""),
		ICPFocus:                 row.Get("DQE ICP Focus", ""),
		ProviderConnectivity:     row.Get("Provider And Connectivity", ""),
		Website:                  row.Get("Website", ""),
		Phone:                    row.Get("Phone", ""),
		LinkedInURL:              row.Get("LinkedIn Url", ""),
		NoOfEmployees:            row.Get("No Of Employees", ""),
		EstTelcoSpend:            row.Get("Est Telco Spend", ""),
		NetworkBuildStatus:       row.Get("Network Build Status", ""),
		BuildingConnectionStatus: row.Get("Building Connection Status", ""),
		BuildingCategory:         row.Get("Building Category", ""),
		AccessMedium:             row.Get("Access Medium", ""),
		SupplierName:             row.Get("Supplier Name", ""),
		GlobalLocationID:         row.Get("Global Location ID", ""),
	}
}

// ConnectBaseData builds the enrichment section. Missing columns default to
// the "N/A" sentinel so prompts can tell "never enriched" from "blank".
func ConnectBaseData(row model.LeadRecord) model.ConnectBaseData {
	return model.ConnectBaseData{
		EntityName:          row.Get("API_EntityName", model.NoData),
		Website:             row.Get("API_Website", model.NoData),
		Phone:               row.Get("API_Phone", model.NoData),
		LinkedIn:            row.Get("API_LinkedIn", model.NoData),
		NoOfEmployees:       row.Get("API_NoOfEmployees", model.NoData),
		MonthlyNetworkSpend: row.Get("API_MonthlyNetworkSpend", model.NoData),
		Revenue:             row.Get("API_Revenue", model.NoData),
		Industry:            row.Get("API_Industry", model.NoData),
		FoundedYear:         row.Get("API_FoundedYear", model.NoData),
		LocationType:        row.Get("API_LocationType", model.NoData),
		LocationCount:       row.Get("API_LocationCount", model.NoData),
		SiteDistance:        row.Get("DQE_Site_Distance", model.NoData),
		ConnectionStatus:    row.Get("DQE_Connection_Status", model.NoData),
		AccessMedium:        row.Get("DQE_Access_Medium", model.NoData),
		NetworkStatus:       row.Get("DQE_Network_Status", model.NoData),
		SiteCompetitors:     row.Get("SITE_All_Competitors", model.NoData),
	}
}

// AdditionalTenants splits the comma-delimited tenant column into a trimmed
// list. Absent or "N/A" yields an empty list, never nil in the output JSON.
func AdditionalTenants(row model.LeadRecord) []string {
	raw := row.Get("API_Additional_Tenants", model.NoData)
	if raw == model.NoData {
		return []string{}
	}

	var tenants []string
	for _, t := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			tenants = append(tenants, trimmed)
		}
	}
	if tenants == nil {
		return []string{}
	}
	return tenants
}
