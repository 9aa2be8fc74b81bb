// Package model defines the core domain types shared across the battle card pipeline.
package model

import "strings"

// LeadRecord is one raw input row, keyed by column header. Missing columns
// simply have no key; extraction substitutes per-field defaults.
type LeadRecord map[string]string

// Get returns the value for key, or def when the key is absent or empty.
func (r LeadRecord) Get(key, def string) string {
	if v, ok := r[key]; ok && v != "" {
		return v
	}
	return def
}

// EYData is the internal baseline dataset section of a battle card,
// mapped one-to-one from the EY columns of the input file.
type EYData struct {
	Name                     string `json:"Name"`
	Address                  string `json:"Address"`
	City                     string `json:"City"`
	State                    string `json:"State"`
	Zipcode                  string `json:"Zipcode"`
	Bandwidth                string `json:"Bandwidth"`
	Prediction               string `json:"Prediction"`
	DirectWholesalePred      string `json:"Direct or Wholesale Prediction"`
	ICPFocus                 string `json:"DQE ICP Focus"`
	ProviderConnectivity     string `json:"Provider And Connectivity"`
	Website                  string `json:"Website"`
	Phone                    string `json:"Phone"`
	LinkedInURL              string `json:"LinkedIn Url"`
	NoOfEmployees            string `json:"No Of Employees"`
	EstTelcoSpend            string `json:"Est Telco Spend"`
	NetworkBuildStatus       string `json:"Network Build Status"`
	BuildingConnectionStatus string `json:"Building Connection Status"`
	BuildingCategory         string `json:"Building Category"`
	AccessMedium             string `json:"Access Medium"`
	SupplierName             string `json:"Supplier Name"`
	GlobalLocationID         string `json:"Global Location ID"`
}

// ConnectBaseData is the third-party enrichment section of a battle card.
// Absent fields carry the "N/A" sentinel rather than empty strings so the
// downstream prompts can distinguish "no enrichment" from "blank".
type ConnectBaseData struct {
	EntityName          string `json:"API_EntityName"`
	Website             string `json:"API_Website"`
	Phone               string `json:"API_Phone"`
	LinkedIn            string `json:"API_LinkedIn"`
	NoOfEmployees       string `json:"API_NoOfEmployees"`
	MonthlyNetworkSpend string `json:"API_MonthlyNetworkSpend"`
	Revenue             string `json:"API_Revenue"`
	Industry            string `json:"API_Industry"`
	FoundedYear         string `json:"API_FoundedYear"`
	LocationType        string `json:"API_LocationType"`
	LocationCount       string `json:"API_LocationCount"`
	SiteDistance        string `json:"DQE_Site_Distance"`
	ConnectionStatus    string `json:"DQE_Connection_Status"`
	AccessMedium        string `json:"DQE_Access_Medium"`
	NetworkStatus       string `json:"DQE_Network_Status"`
	SiteCompetitors     string `json:"SITE_All_Competitors"`
}

// NoData is the sentinel for absent ConnectBase fields.
const NoData = "N/A"

// HasEnrichment reports whether ConnectBase returned an entity for this site.
func (c ConnectBaseData) HasEnrichment() bool {
	return c.EntityName != NoData && strings.TrimSpace(c.EntityName) != ""
}
