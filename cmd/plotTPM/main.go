package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"TPMAnalysis/pkg/tpmAnalysis"

	"github.com/liserjrqlxue/goUtil/simpleUtil"
)

// flag
var (
	input = flag.String(
		"i",
		"",
		"filtered tables directory for the expression heatmap",
	)
	comparison = flag.String(
		"c",
		"",
		"intersection table for the cross-dataset scatter",
	)
	nameA = flag.String(
		"na",
		"wormseq",
		"dataset A label",
	)
	nameB = flag.String(
		"nb",
		"cengen",
		"dataset B label",
	)
	commonOnly = flag.Bool(
		"common",
		false,
		"heatmap only genes present in every region",
	)
	output = flag.String(
		"o",
		"plots",
		"output directory",
	)
)

func main() {
	flag.Parse()
	if *input == "" && *comparison == "" {
		flag.PrintDefaults()
		log.Fatal("-i or -c required!")
	}
	simpleUtil.CheckErr(os.MkdirAll(*output, 0755))

	if *input != "" {
		var sources = make(map[string][]tpmAnalysis.ExpressionRecord)
		for _, entry := range simpleUtil.HandleError(os.ReadDir(*input)) {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), "_filtered.csv") {
				continue
			}
			var name = strings.TrimSuffix(entry.Name(), "_filtered.csv")
			var records, err = tpmAnalysis.LoadExpressionTable(filepath.Join(*input, entry.Name()), name)
			simpleUtil.CheckErr(err)
			sources[name] = records
		}

		var m = tpmAnalysis.CombineDatasets(sources)
		if *commonOnly {
			m = m.CommonGenes()
		}
		tpmAnalysis.PlotHeatMap(
			m,
			"Scaled TPM by region",
			"log10(scaled_TPM + 1)",
			filepath.Join(*output, "scaled_TPM_heatmap.html"),
			true,
		)
		slog.Info("heatmap rendered", "genes", len(m.Genes), "columns", len(m.Columns))
	}

	if *comparison != "" {
		var rows, err = tpmAnalysis.LoadComparison(*comparison)
		simpleUtil.CheckErr(err)
		simpleUtil.CheckErr(tpmAnalysis.PlotComparisonScatter(
			rows,
			*nameA,
			*nameB,
			filepath.Join(*output, "comparison_scatter.png"),
		))
		slog.Info("scatter rendered", "points", len(rows))
	}
}
