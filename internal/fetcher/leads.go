// Package fetcher reads lead files (CSV or XLSX) into header-mapped rows.
package fetcher

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/dqe-comms/battlecard-cli/internal/model"
)

// ReadLeads loads every row of the lead file at path, dispatching on the
// file extension. The first row is the header; each subsequent row becomes
// one LeadRecord keyed by column name.
func ReadLeads(path string) ([]model.LeadRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return readXLSXLeads(path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrapf(err, "fetcher: open %s", path)
		}
		defer f.Close() //nolint:errcheck
		return ReadCSVLeads(f)
	}
}

// ReadCSVLeads parses CSV lead data from r.
func ReadCSVLeads(r io.Reader) ([]model.LeadRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow ragged rows
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return []model.LeadRecord{}, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: read csv header")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var leads []model.LeadRecord
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "fetcher: read csv row")
		}
		leads = append(leads, zipRow(header, record))
	}
	if leads == nil {
		leads = []model.LeadRecord{}
	}
	return leads, nil
}

// readXLSXLeads parses the first sheet of an XLSX workbook.
func readXLSXLeads(path string) ([]model.LeadRecord, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: open xlsx %s", path)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("fetcher: xlsx %s has no sheets", path)
	}

	sheet := f.Sheets[0]
	leads := []model.LeadRecord{}
	var header []string
	for i, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = strings.TrimSpace(cell.String())
		}
		if i == 0 {
			header = cells
			continue
		}
		leads = append(leads, zipRow(header, cells))
	}
	return leads, nil
}

// zipRow pairs header names with row values; short rows simply omit the
// trailing keys and extra cells past the header are dropped.
func zipRow(header, record []string) model.LeadRecord {
	row := make(model.LeadRecord, len(header))
	for i, name := range header {
		if name == "" || i >= len(record) {
			continue
		}
		row[name] = record[i]
	}
	return row
}
