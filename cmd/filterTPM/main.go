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
		"scaled-TPM tables directory",
	)
	threshold = flag.Float64(
		"t",
		400,
		"scaled TPM threshold",
	)
	output = flag.String(
		"o",
		"",
		"output directory, default next to input",
	)
)

func main() {
	flag.Parse()
	if *input == "" {
		flag.PrintDefaults()
		log.Fatal("-i required!")
	}
	if *output == "" {
		*output = *input
	}
	simpleUtil.CheckErr(os.MkdirAll(*output, 0755))

	var all []tpmAnalysis.ExpressionRecord
	for _, entry := range simpleUtil.HandleError(os.ReadDir(*input)) {
		var name = entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".csv" || strings.HasSuffix(name, "_filtered.csv") {
			continue
		}
		var records, err = tpmAnalysis.LoadExpressionTable(filepath.Join(*input, name), tpmAnalysis.RegionName(name))
		simpleUtil.CheckErr(err)
		all = append(all, records...)
	}

	var perRegion, combined = tpmAnalysis.FilterPerRegion(all, *threshold)
	for region, kept := range perRegion {
		tpmAnalysis.WriteCsv(filepath.Join(*output, region+"_filtered.csv"), kept)
		slog.Info("filtered", "region", region, "over", len(kept), "threshold", *threshold)
	}
	tpmAnalysis.WriteCsv(filepath.Join(*output, "combined_filtered.csv"), combined)
	tpmAnalysis.WriteGeneList(filepath.Join(*output, "combined_genes.txt"), tpmAnalysis.GeneNames(combined))
}
