package main

import (
	"embed"
	"flag"
	"log"
	"os"
	"path/filepath"

	"TPMAnalysis/pkg/gprofiler"
	"TPMAnalysis/pkg/tpmAnalysis"

	"github.com/liserjrqlxue/goUtil/simpleUtil"
)

// os
var (
	ex, _  = os.Executable()
	exPath = filepath.Dir(ex)
)

// flag
var (
	workDir = flag.String(
		"w",
		"",
		"current working directory",
	)
	refDir = flag.String(
		"ref",
		"",
		"reference cell-type tables directory",
	)
	targetDir = flag.String(
		"i",
		"",
		"target region tables directory, one csv per region",
	)
	compareB = flag.String(
		"b",
		"",
		"dataset B table for cross-dataset comparison",
	)
	datasetName = flag.String(
		"n",
		"wormseq",
		"label of the target dataset in comparison outputs",
	)
	outputDir = flag.String(
		"o",
		"result",
		"output directory",
	)
	threshold = flag.Float64(
		"t",
		400,
		"scaled TPM threshold",
	)
	topN = flag.Int(
		"top",
		20,
		"top N GO terms per bar chart",
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
	enrich = flag.Bool(
		"enrich",
		false,
		"submit filtered gene lists for GO enrichment",
	)
	plot = flag.Bool(
		"plot",
		false,
		"render heatmaps and charts",
	)
	server = flag.String(
		"server",
		"",
		"serve the upload UI on this address instead of one batch run",
	)
)

// embed etc
//
//go:embed etc/*.txt
var etcEMFS embed.FS

func main() {
	flag.Parse()
	if *server != "" {
		serve(*server)
		return
	}
	if *refDir == "" || *targetDir == "" {
		flag.PrintDefaults()
		log.Fatal("-ref/-i required!")
	}
	if *workDir != "" {
		log.Printf("changes the current working directory to [%s]", *workDir)
		simpleUtil.CheckErr(os.Chdir(*workDir))
	}

	var batch = &tpmAnalysis.Batch{
		OutputPrefix: *outputDir,
		RefDir:       *refDir,
		TargetDir:    *targetDir,
		CompareAs:    *datasetName,
		CompareB:     *compareB,
		Organism:     *organism,
		Threshold:    *threshold,
		TopN:         *topN,
		Plot:         *plot,
	}
	if *enrich {
		batch.Profiler = gprofiler.NewClient(*enrichURL)
	}

	simpleUtil.CheckErr(batch.BatchRun(exPath, etcEMFS))
}
