package tpmAnalysis

import (
	"github.com/liserjrqlxue/goUtil/simpleUtil"
	"github.com/xuri/excelize/v2"
)

func SetCellValue(xlsx *excelize.File, sheet string, col, row int, value interface{}) {
	simpleUtil.CheckErr(
		xlsx.SetCellValue(
			sheet,
			simpleUtil.HandleError(excelize.CoordinatesToCellName(col, row)),
			value,
		),
	)
}

func SetCellStr(xlsx *excelize.File, sheet string, col, row int, value string) {
	simpleUtil.CheckErr(
		xlsx.SetCellStr(
			sheet,
			simpleUtil.HandleError(excelize.CoordinatesToCellName(col, row)),
			value,
		),
	)
}

func SetRow(xlsx *excelize.File, sheet string, col, row int, value []interface{}) {
	simpleUtil.CheckErr(
		xlsx.SetSheetRow(
			sheet,
			simpleUtil.HandleError(excelize.CoordinatesToCellName(col, row)),
			&value,
		),
	)
}

// RegionSummary is one Summary sheet row.
type RegionSummary struct {
	Region        string
	InputGenes    int
	OverThreshold int
	TargetMax     int
	GroupMax      int
}

// SummaryXlsx writes the run summary workbook: one Summary sheet of
// per-region counts and one Comparison sheet of paired TPM rows.
func SummaryXlsx(path string, titles []string, summaries []RegionSummary, comparison []ComparisonRow) {
	var xlsx = excelize.NewFile()
	simpleUtil.CheckErr(xlsx.SetSheetName("Sheet1", "Summary"))

	for i, title := range titles {
		SetCellStr(xlsx, "Summary", 1+i, 1, title)
	}
	for i, s := range summaries {
		SetRow(xlsx, "Summary", 1, 2+i, []interface{}{
			s.Region, s.InputGenes, s.OverThreshold, s.TargetMax, s.GroupMax,
		})
	}

	simpleUtil.HandleError(xlsx.NewSheet("Comparison"))
	SetRow(xlsx, "Comparison", 1, 1, []interface{}{"gene", "region", "scaled_TPM_A", "scaled_TPM_B"})
	for i, row := range comparison {
		SetRow(xlsx, "Comparison", 1, 2+i, []interface{}{
			row.GeneName, row.Region, row.ScaledTPMA, row.ScaledTPMB,
		})
	}

	simpleUtil.CheckErr(xlsx.SaveAs(path))
}
