package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"pubfinder/internal"
)

// ReportHeaders is the fixed column order of the missing-works report.
var ReportHeaders = []string{
	"DOI", "Title", "Authors (My Institution)", "Affiliations (My Institution)",
	"ORCID (My Institution)", "Publication Year", "Publication Date",
	"Is OA", "OA Status", "OA URL", "Accepted", "Published",
	"License", "PDF URL", "Type", "Source", "Link",
}

func ExportMissingToXLSX(rows []internal.MissingReportRow, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, h := range ReportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, row.DOI)
		set(2, row.Title)
		set(3, row.Authors)
		set(4, row.Affiliations)
		set(5, row.ORCIDs)
		set(6, derefYear(row.PublicationYear))
		set(7, row.PublicationDate)
		set(8, row.IsOA)
		set(9, row.OAStatus)
		set(10, row.OAURL)
		set(11, row.Accepted)
		set(12, row.Published)
		set(13, row.License)
		set(14, row.PDFURL)
		set(15, row.Type)
		set(16, row.Source)
		set(17, row.Link)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func derefYear(v *int) any {
	if v == nil {
		return sentinelUnknown
	}
	return *v
}
