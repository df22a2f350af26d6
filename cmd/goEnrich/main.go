package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"TPMAnalysis/pkg/gprofiler"
	"TPMAnalysis/pkg/tpmAnalysis"

	"github.com/liserjrqlxue/goUtil/simpleUtil"
	"github.com/liserjrqlxue/goUtil/textUtil"
)

// flag
var (
	input = flag.String(
		"i",
		"",
		"gene list directory, one *_genes.txt per region",
	)
	organism = flag.String(
		"org",
		"celegans",
		"organism code for the enrichment service",
	)
	enrichURL = flag.String(
		"u",
		"",
		"enrichment service URL, empty for public g:Profiler",
	)
	pValue = flag.Float64(
		"p",
		0.05,
		"user p-value threshold",
	)
	output = flag.String(
		"o",
		"enrichment_results",
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

	var client = gprofiler.NewClient(*enrichURL)
	client.UserThreshold = *pValue

	var combined []tpmAnalysis.EnrichmentRow
	for _, entry := range simpleUtil.HandleError(os.ReadDir(*input)) {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "_genes.txt") {
			continue
		}
		var (
			region = strings.TrimSuffix(entry.Name(), "_genes.txt")
			genes  = textUtil.File2Array(filepath.Join(*input, entry.Name()))
		)
		var rows, err = tpmAnalysis.EnrichRegion(client, *organism, region, genes)
		simpleUtil.CheckErr(err)
		if len(rows) == 0 {
			slog.Info("no enriched terms", "region", region, "genes", len(genes))
			continue
		}
		tpmAnalysis.WriteCsv(filepath.Join(*output, region+"_enrichment.csv"), rows)
		slog.Info("enriched", "region", region, "genes", len(genes), "terms", len(rows))
		combined = append(combined, rows...)
	}

	tpmAnalysis.WriteCsv(filepath.Join(*output, "combined_enrichment.csv"), combined)
}
