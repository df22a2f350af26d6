package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"TPMAnalysis/pkg/tpmAnalysis"

	"github.com/liserjrqlxue/goUtil/simpleUtil"
)

// flag
var (
	input = flag.String(
		"i",
		"combined_enrichment.csv",
		"combined enrichment table",
	)
	output = flag.String(
		"o",
		"go_genes_list",
		"output directory",
	)
)

func main() {
	flag.Parse()
	if *input == "" {
		flag.PrintDefaults()
		log.Fatal("-i required!")
	}
	simpleUtil.CheckErr(os.MkdirAll(*output, 0755))

	var rows, err = tpmAnalysis.LoadEnrichment(*input)
	simpleUtil.CheckErr(err)

	var byRegion = tpmAnalysis.ExtractGeneLists(rows)
	for region, list := range byRegion {
		tpmAnalysis.WriteCsv(filepath.Join(*output, region+"_go_genes_lists.csv"), list)
	}
	slog.Info("gene lists extracted", "regions", len(byRegion), "terms", len(rows))
}
