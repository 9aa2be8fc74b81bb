package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dqe-comms/battlecard-cli/internal/model"
)

func TestEYData_MapsColumns(t *testing.T) {
	row := model.LeadRecord{
		"Name":                          "Acme Radiology",
		"Address":                       "100 Main St",
		"City":                          "Pittsburgh",
		"State":                         "PA",
		"Zipcode":                       "15222",
		"Bandwitdh ( DIA or Broadband)": "DIA",
		"No Of Employees":               "120",
		"Network Build Status":          "Near Net",
	}

	ey := EYData(row)
	assert.Equal(t, "Acme Radiology", ey.Name)
	assert.Equal(t, "100 Main St", ey.Address)
	assert.Equal(t, "DIA", ey.Bandwidth)
	assert.Equal(t, "120", ey.NoOfEmployees)
	assert.Equal(t, "Near Net", ey.NetworkBuildStatus)
}

func TestEYData_MissingColumnsDefaultEmpty(t *testing.T) {
	ey := EYData(model.LeadRecord{"Name": "Solo Corp"})
	assert.Equal(t, "Solo Corp", ey.Name)
	assert.Equal(t, "", ey.Address)
	assert.Equal(t, "", ey.Website)
	assert.Equal(t, "", ey.GlobalLocationID)
}

func TestConnectBaseData_MissingColumnsDefaultNA(t *testing.T) {
	cb := ConnectBaseData(model.LeadRecord{"API_EntityName": "Acme Holdings"})
	assert.Equal(t, "Acme Holdings", cb.EntityName)
	assert.Equal(t, model.NoData, cb.NoOfEmployees)
	assert.Equal(t, model.NoData, cb.SiteDistance)
	assert.Equal(t, model.NoData, cb.SiteCompetitors)
	assert.True(t, cb.HasEnrichment())
}

func TestConnectBaseData_NoEnrichment(t *testing.T) {
	cb := ConnectBaseData(model.LeadRecord{})
	assert.Equal(t, model.NoData, cb.EntityName)
	assert.False(t, cb.HasEnrichment())
}

func TestAdditionalTenants_SplitsAndTrims(t *testing.T) {
	row := model.LeadRecord{"API_Additional_Tenants": "Tenant A, Tenant B ,  Tenant C"}
	assert.Equal(t, []string{"Tenant A", "Tenant B", "Tenant C"}, AdditionalTenants(row))
}

func TestAdditionalTenants_AbsentOrNA(t *testing.T) {
	assert.Equal(t, []string{}, AdditionalTenants(model.LeadRecord{}))
	assert.Equal(t, []string{}, AdditionalTenants(model.LeadRecord{"API_Additional_Tenants": "N/A"}))
}

func TestAdditionalTenants_DropsEmptyEntries(t *testing.T) {
	row := model.LeadRecord{"API_Additional_Tenants": "Tenant A,, ,Tenant B"}
	assert.Equal(t, []string{"Tenant A", "Tenant B"}, AdditionalTenants(row))
}
