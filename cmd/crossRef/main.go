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
	mine = flag.String(
		"m",
		"",
		"WormMine query export, gene_id/wbgene_id/go_description",
	)
	exprDir = flag.String(
		"e",
		"",
		"expression tables directory, one csv per dataset",
	)
	output = flag.String(
		"o",
		"wormmine_analysis",
		"output directory",
	)
)

func main() {
	flag.Parse()
	if *mine == "" || *exprDir == "" {
		flag.PrintDefaults()
		log.Fatal("-m/-e required!")
	}
	simpleUtil.CheckErr(os.MkdirAll(*output, 0755))

	var query, err = tpmAnalysis.LoadWormMine(*mine)
	simpleUtil.CheckErr(err)
	slog.Info("WormMine query loaded", "genes", len(query))

	var datasets = make(map[string][]tpmAnalysis.ExpressionRecord)
	for _, entry := range simpleUtil.HandleError(os.ReadDir(*exprDir)) {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".csv" {
			continue
		}
		var name = tpmAnalysis.RegionName(entry.Name())
		var records, err = tpmAnalysis.LoadExpressionTable(filepath.Join(*exprDir, entry.Name()), name)
		simpleUtil.CheckErr(err)
		datasets[name] = records
	}

	var rows = tpmAnalysis.CrossReference(query, datasets)
	tpmAnalysis.WriteCsv(filepath.Join(*output, "crossref.csv"), rows)

	var byCategory = make(map[string]int)
	for _, row := range rows {
		byCategory[row.Category]++
	}
	slog.Info("cross-referenced", "matches", len(rows), "categories", byCategory)
}
