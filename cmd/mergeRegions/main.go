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
	input = flag.String(
		"i",
		"",
		"per-subregion tables directory",
	)
	groupsPath = flag.String(
		"g",
		"",
		"region grouping map, tab-separated Region/Group",
	)
	output = flag.String(
		"o",
		"merged_regions.csv",
		"merged output table",
	)
)

func main() {
	flag.Parse()
	if *input == "" || *groupsPath == "" {
		flag.PrintDefaults()
		log.Fatal("-i/-g required!")
	}

	var groups = make(tpmAnalysis.GroupMap)
	var groupMap, _ = textUtil.File2MapArray(*groupsPath, "\t", nil)
	for _, m := range groupMap {
		groups[m["Region"]] = m["Group"]
	}

	var all []tpmAnalysis.ExpressionRecord
	for _, entry := range simpleUtil.HandleError(os.ReadDir(*input)) {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".csv" {
			continue
		}
		var records, err = tpmAnalysis.LoadExpressionTable(
			filepath.Join(*input, entry.Name()),
			tpmAnalysis.RegionName(entry.Name()),
		)
		simpleUtil.CheckErr(err)
		all = append(all, records...)
	}

	var merged = tpmAnalysis.Merge(all, groups)
	tpmAnalysis.WriteCsv(*output, merged)
	slog.Info("regions merged", "input", len(all), "merged", len(merged), "output", *output)
}
