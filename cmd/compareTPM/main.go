package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"TPMAnalysis/pkg/tpmAnalysis"

	"github.com/liserjrqlxue/goUtil/simpleUtil"
	"github.com/liserjrqlxue/goUtil/textUtil"
)

// flag
var (
	inputA = flag.String(
		"a",
		"",
		"dataset A tables, directory or single csv (fine-grained regions)",
	)
	inputB = flag.String(
		"b",
		"",
		"dataset B tables, directory or single csv (coarse regions)",
	)
	groupsPath = flag.String(
		"g",
		"",
		"region grouping map applied to both datasets",
	)
	threshold = flag.Float64(
		"t",
		400,
		"scaled TPM threshold",
	)
	output = flag.String(
		"o",
		"combined_datasets",
		"output directory",
	)
)

func main() {
	flag.Parse()
	if *inputA == "" || *inputB == "" {
		flag.PrintDefaults()
		log.Fatal("-a/-b required!")
	}

	var groups = make(tpmAnalysis.GroupMap)
	if *groupsPath != "" {
		var groupMap, _ = textUtil.File2MapArray(*groupsPath, "\t", nil)
		for _, m := range groupMap {
			groups[m["Region"]] = m["Group"]
		}
	}

	var (
		a = loadDataset(*inputA)
		b = loadDataset(*inputB)
	)
	simpleUtil.CheckErr(os.MkdirAll(*output, 0755))

	var result = tpmAnalysis.Compare(a, b, groups, *threshold)
	tpmAnalysis.WriteCsv(filepath.Join(*output, "intersection.csv"), result.Rows)
	for region, genes := range result.AOnly {
		tpmAnalysis.WriteGeneList(filepath.Join(*output, region+"_A_only.txt"), genes)
	}
	for region, genes := range result.BOnly {
		tpmAnalysis.WriteGeneList(filepath.Join(*output, region+"_B_only.txt"), genes)
	}

	slog.Info(
		"datasets compared",
		"shared", len(result.Rows),
		"aOnlyRegions", len(result.AOnly),
		"bOnlyRegions", len(result.BOnly),
	)
}

// loadDataset reads either one table or every csv of a directory.
func loadDataset(path string) []tpmAnalysis.ExpressionRecord {
	var info = simpleUtil.HandleError(os.Stat(path))
	if !info.IsDir() {
		var records, err = tpmAnalysis.LoadExpressionTable(path, tpmAnalysis.RegionName(filepath.Base(path)))
		simpleUtil.CheckErr(err)
		return records
	}

	var all []tpmAnalysis.ExpressionRecord
	for _, entry := range simpleUtil.HandleError(os.ReadDir(path)) {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".csv" {
			continue
		}
		var records, err = tpmAnalysis.LoadExpressionTable(
			filepath.Join(path, entry.Name()),
			tpmAnalysis.RegionName(entry.Name()),
		)
		simpleUtil.CheckErr(err)
		all = append(all, records...)
	}
	return all
}
