package fetcher

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSVLeads(t *testing.T) {
	csvData := `Name,Address,City,State,Zipcode
Acme Radiology,100 Main St,Pittsburgh,PA,15222
Beta Corp,200 Oak Ave,Monroeville,PA,15146
`
	leads, err := ReadCSVLeads(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, leads, 2)

	assert.Equal(t, "Acme Radiology", leads[0]["Name"])
	assert.Equal(t, "100 Main St", leads[0]["Address"])
	assert.Equal(t, "15222", leads[0]["Zipcode"])
	assert.Equal(t, "Beta Corp", leads[1]["Name"])
}

func TestReadCSVLeads_RaggedRows(t *testing.T) {
	csvData := `Name,Address,City
Short Row,1 Elm St
Long Row,2 Elm St,Etna,EXTRA
`
	leads, err := ReadCSVLeads(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, leads, 2)

	// Short rows just omit the trailing columns.
	assert.Equal(t, "Short Row", leads[0]["Name"])
	_, ok := leads[0]["City"]
	assert.False(t, ok)
	assert.Equal(t, "1 Elm St", leads[0].Get("Address", ""))
	assert.Equal(t, "", leads[0].Get("City", ""))

	// Extra cells past the header are dropped.
	assert.Equal(t, "Etna", leads[1]["City"])
	assert.Len(t, leads[1], 3)
}

func TestReadCSVLeads_HeaderWhitespaceTrimmed(t *testing.T) {
	csvData := " Name , Address \nAcme,1 Main St\n"
	leads, err := ReadCSVLeads(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Acme", leads[0]["Name"])
	assert.Equal(t, "1 Main St", leads[0]["Address"])
}

func TestReadCSVLeads_QuotedFields(t *testing.T) {
	csvData := `Name,Additional Tenants
"Jones, Smith & Co","Tenant A, Tenant B"
`
	leads, err := ReadCSVLeads(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Jones, Smith & Co", leads[0]["Name"])
	assert.Equal(t, "Tenant A, Tenant B", leads[0]["Additional Tenants"])
}

func TestReadCSVLeads_Empty(t *testing.T) {
	leads, err := ReadCSVLeads(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, leads)
	assert.NotNil(t, leads)
}

func TestReadCSVLeads_HeaderOnly(t *testing.T) {
	leads, err := ReadCSVLeads(strings.NewReader("Name,Address\n"))
	require.NoError(t, err)
	assert.Empty(t, leads)
	assert.NotNil(t, leads)
}

func TestReadLeads_CSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name\nAcme\n"), 0o644))

	leads, err := ReadLeads(path)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Acme", leads[0]["Name"])
}

func TestReadLeads_MissingFile(t *testing.T) {
	_, err := ReadLeads(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

func TestReadLeads_MissingXLSX(t *testing.T) {
	_, err := ReadLeads(filepath.Join(t.TempDir(), "nope.xlsx"))
	require.Error(t, err)
}

func TestZipRow_SkipsEmptyHeaderNames(t *testing.T) {
	row := zipRow([]string{"Name", "", "City"}, []string{"Acme", "ignored", "Etna"})
	assert.Equal(t, "Acme", row["Name"])
	assert.Equal(t, "Etna", row["City"])
	assert.Len(t, row, 2)
}
