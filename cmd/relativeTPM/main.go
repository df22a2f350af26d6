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
	refDir = flag.String(
		"ref",
		"",
		"reference cell-type tables directory",
	)
	input = flag.String(
		"i",
		"",
		"target region tables directory, one csv per region",
	)
	output = flag.String(
		"o",
		"w_relative_TPM",
		"output directory",
	)
	groupsPath = flag.String(
		"g",
		"",
		"region grouping map, tab-separated Region/Group",
	)
	targetsPath = flag.String(
		"target",
		"",
		"target region list, one region per line",
	)
)

func main() {
	flag.Parse()
	if *refDir == "" || *input == "" {
		flag.PrintDefaults()
		log.Fatal("-ref/-i required!")
	}

	var groups = make(tpmAnalysis.GroupMap)
	if *groupsPath != "" {
		var groupMap, _ = textUtil.File2MapArray(*groupsPath, "\t", nil)
		for _, m := range groupMap {
			groups[m["Region"]] = m["Group"]
		}
	}
	var targets = make(map[string]bool)
	if *targetsPath != "" {
		for _, region := range textUtil.File2Array(*targetsPath) {
			targets[region] = true
		}
	}

	var refMax, err = tpmAnalysis.LoadReference(*refDir)
	simpleUtil.CheckErr(err)
	simpleUtil.CheckErr(os.MkdirAll(*output, 0755))

	for _, entry := range simpleUtil.HandleError(os.ReadDir(*input)) {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".csv" {
			continue
		}
		var region = tpmAnalysis.RegionName(entry.Name())
		var records, err = tpmAnalysis.LoadExpressionTable(filepath.Join(*input, entry.Name()), region)
		simpleUtil.CheckErr(err)

		var relative = tpmAnalysis.Normalize(records, refMax, groups, targets)
		tpmAnalysis.WriteCsv(filepath.Join(*output, entry.Name()), relative)

		var targetMax, groupMax int
		for _, rel := range relative {
			if rel.MaxInTarget {
				targetMax++
			}
			if rel.MaxInGroup {
				groupMax++
			}
		}
		slog.Info("relative TPM", "region", region, "maxInTarget", targetMax, "maxInGroup", groupMax)
	}
}
