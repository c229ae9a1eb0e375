package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"pubfinder/internal"
)

func TestExportMissingToXLSX(t *testing.T) {
	year := 2024
	rows := []internal.MissingReportRow{
		{
			DOI:             "10.1/y",
			Title:           "Unknown work",
			Authors:         "A. Author",
			Affiliations:    "Dept A",
			ORCIDs:          "Not Available",
			PublicationYear: &year,
			PublicationDate: "2024-01-15",
			IsOA:            true,
			OAStatus:        "gold",
			OAURL:           "https://example.test/oa",
			License:         "cc-by",
			PDFURL:          "Not Available",
			Type:            "article",
			Source:          "Journal of Tests",
			Link:            "https://doi.org/10.1/y",
		},
		{DOI: "No DOI", Title: "Unidentified work", PublicationDate: "Unknown", Link: "No DOI"},
	}

	out := filepath.Join(t.TempDir(), "nested", "report.xlsx")
	if err := ExportMissingToXLSX(rows, out); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatalf("reopen exported file: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	got, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(got))
	}
	for i, h := range ReportHeaders {
		if got[0][i] != h {
			t.Fatalf("header %d: got %q, want %q", i, got[0][i], h)
		}
	}
	if got[1][0] != "10.1/y" || got[1][1] != "Unknown work" {
		t.Fatalf("unexpected first data row: %v", got[1])
	}
	if got[1][16] != "https://doi.org/10.1/y" {
		t.Fatalf("unexpected link cell: %q", got[1][16])
	}
	if got[2][0] != "No DOI" || got[2][5] != "Unknown" {
		t.Fatalf("unexpected sentinel row: %v", got[2])
	}
}
