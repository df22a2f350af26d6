package tpmAnalysis

import (
	"embed"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"TPMAnalysis/pkg/gprofiler"

	"github.com/liserjrqlxue/goUtil/fmtUtil"
	"github.com/liserjrqlxue/goUtil/osUtil"
	"github.com/liserjrqlxue/goUtil/simpleUtil"
)

// Batch runs the whole analysis as a strict sequence of in-memory
// transforms, writing each stage's table under OutputPrefix.
type Batch struct {
	OutputPrefix string

	RefDir    string
	TargetDir string
	CompareAs string // label of the target dataset in comparisons
	CompareB  string // dataset B table, empty to skip comparison

	Organism  string
	Threshold float64
	TopN      int
	Plot      bool

	TitleSummary []string
	Groups       GroupMap
	Targets      map[string]bool

	// nil Profiler skips the enrichment stage
	Profiler gprofiler.Profiler

	RefMax     map[string]RefMax
	Regions    map[string][]ExpressionRecord
	Relative   map[string][]RelativeRecord
	Filtered   map[string][]ExpressionRecord
	Combined   []ExpressionRecord
	Merged     []ExpressionRecord
	Comparison CompareResult
	Enrichment []EnrichmentRow
}

// LoadConfig reads the etc tables, from cfgPath when present, falling
// back to the embedded copies.
func (batch *Batch) LoadConfig(cfgPath string, cfgFS embed.FS) {
	batch.Groups = make(GroupMap)
	var groupMap, _ = osUtil.FS2MapArray(osUtil.OpenFS("etc/region.groups.txt", cfgPath, cfgFS), "\t", nil)
	for _, m := range groupMap {
		batch.Groups[m["Region"]] = m["Group"]
	}

	batch.Targets = make(map[string]bool)
	for _, region := range osUtil.FS2Array(osUtil.OpenFS("etc/target.regions.txt", cfgPath, cfgFS)) {
		batch.Targets[region] = true
	}

	batch.TitleSummary = osUtil.FS2Array(osUtil.OpenFS("etc/title.Summary.txt", cfgPath, cfgFS))
}

func (batch *Batch) Prepare() {
	for _, dir := range []string{"relative", "filtered", "merged", "combined", "enrichment", "plots"} {
		simpleUtil.CheckErr(os.MkdirAll(filepath.Join(batch.OutputPrefix, dir), 0755))
	}
}

// LoadTargets reads one table per target region from TargetDir, region
// label taken from the filename.
func (batch *Batch) LoadTargets() error {
	batch.Regions = make(map[string][]ExpressionRecord)
	for _, entry := range simpleUtil.HandleError(os.ReadDir(batch.TargetDir)) {
		if entry.IsDir() || !isCsv.MatchString(entry.Name()) {
			continue
		}
		var region = RegionName(entry.Name())
		var records, err = LoadExpressionTable(filepath.Join(batch.TargetDir, entry.Name()), region)
		if err != nil {
			return err
		}
		batch.Regions[region] = records
		slog.Info("target region loaded", "region", region, "genes", len(records))
	}
	return nil
}

func (batch *Batch) LoadReference() error {
	var refMax, err = LoadReference(batch.RefDir)
	batch.RefMax = refMax
	return err
}

// NormalizeRegions derives relative TPM per region and writes the
// per-region relative tables.
func (batch *Batch) NormalizeRegions() {
	batch.Relative = make(map[string][]RelativeRecord, len(batch.Regions))
	for region, records := range batch.Regions {
		var relative = Normalize(records, batch.RefMax, batch.Groups, batch.Targets)
		batch.Relative[region] = relative
		WriteCsv(filepath.Join(batch.OutputPrefix, "relative", region+".csv"), relative)
		slog.Info("relative TPM", "region", region, "records", len(relative))
	}
}

// FilterRegions applies the threshold per region and writes the
// filtered tables, the combined any-region list, and the flat gene
// lists the enrichment gateway consumes.
func (batch *Batch) FilterRegions() {
	var all []ExpressionRecord
	for _, records := range batch.Regions {
		all = append(all, records...)
	}
	batch.Filtered, batch.Combined = FilterPerRegion(all, batch.Threshold)

	for region, kept := range batch.Filtered {
		WriteCsv(filepath.Join(batch.OutputPrefix, "filtered", region+"_filtered.csv"), kept)
		WriteGeneList(
			filepath.Join(batch.OutputPrefix, "filtered", region+"_genes.txt"),
			batch.targetSpecificGenes(region, kept),
		)
		slog.Info("threshold filter", "region", region, "over", len(kept), "threshold", batch.Threshold)
	}
	WriteCsv(filepath.Join(batch.OutputPrefix, "filtered", "combined_filtered.csv"), batch.Combined)
}

// targetSpecificGenes keeps the over-threshold genes whose expression
// peaks inside a target region, the enrichment query set.
func (batch *Batch) targetSpecificGenes(region string, kept []ExpressionRecord) []string {
	var specific = make(map[string]bool)
	for _, rel := range batch.Relative[region] {
		if rel.MaxInTarget {
			specific[rel.GeneName] = true
		}
	}
	var genes []string
	for _, rec := range kept {
		if specific[rec.GeneName] {
			genes = append(genes, rec.GeneName)
		}
	}
	return genes
}

// MergeGroups collapses the target sub-regions onto group labels.
func (batch *Batch) MergeGroups() {
	var all []ExpressionRecord
	for _, records := range batch.Regions {
		all = append(all, records...)
	}
	batch.Merged = Merge(all, batch.Groups)
	WriteCsv(filepath.Join(batch.OutputPrefix, "merged", "merged_regions.csv"), batch.Merged)
	slog.Info("regions merged", "records", len(batch.Merged))
}

// CompareDatasets aligns the merged target dataset with dataset B and
// writes the intersection matrix and the per-direction unique lists.
func (batch *Batch) CompareDatasets() error {
	if batch.CompareB == "" {
		return nil
	}
	var all []ExpressionRecord
	for _, records := range batch.Regions {
		all = append(all, records...)
	}
	var b, err = LoadExpressionTable(batch.CompareB, RegionName(filepath.Base(batch.CompareB)))
	if err != nil {
		return err
	}

	batch.Comparison = Compare(all, b, batch.Groups, batch.Threshold)
	var dir = filepath.Join(batch.OutputPrefix, "combined")
	WriteCsv(filepath.Join(dir, "intersection.csv"), batch.Comparison.Rows)
	for region, genes := range batch.Comparison.AOnly {
		WriteGeneList(filepath.Join(dir, region+"_A_only.txt"), genes)
	}
	for region, genes := range batch.Comparison.BOnly {
		WriteGeneList(filepath.Join(dir, region+"_B_only.txt"), genes)
	}
	slog.Info("datasets compared", "shared", len(batch.Comparison.Rows))
	return nil
}

// EnrichRegions submits each region's target-specific gene list and
// writes per-region plus combined enrichment tables and the extracted
// GO gene lists.
func (batch *Batch) EnrichRegions() error {
	if batch.Profiler == nil {
		return nil
	}
	var (
		dir     = filepath.Join(batch.OutputPrefix, "enrichment")
		regions = batch.regionList()
	)
	for _, region := range regions {
		var rows, err = EnrichRegion(
			batch.Profiler,
			batch.Organism,
			region,
			batch.targetSpecificGenes(region, batch.Filtered[region]),
		)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			slog.Info("no enriched terms", "region", region)
			continue
		}
		WriteCsv(filepath.Join(dir, region+"_enrichment.csv"), rows)
		batch.Enrichment = append(batch.Enrichment, rows...)
	}
	WriteCsv(filepath.Join(dir, "combined_enrichment.csv"), batch.Enrichment)

	for region, list := range ExtractGeneLists(batch.Enrichment) {
		WriteCsv(filepath.Join(dir, region+"_go_genes_lists.csv"), list)
	}
	return nil
}

// Visual renders the heatmaps, the GO bar charts and the comparison
// scatter.
func (batch *Batch) Visual() error {
	if !batch.Plot {
		return nil
	}
	var dir = filepath.Join(batch.OutputPrefix, "plots")

	PlotHeatMap(
		batch.relativeMatrix(),
		"Relative TPM across target regions",
		"genes peaking inside the target structure",
		filepath.Join(dir, "relative_TPM_heatmap.html"),
		false,
	)

	PlotHeatMap(
		CombineDatasets(batch.Filtered),
		"Scaled TPM of genes over threshold",
		"",
		filepath.Join(dir, "scaled_TPM_heatmap.html"),
		true,
	)

	if len(batch.Comparison.Rows) > 0 {
		if err := PlotComparisonScatter(
			batch.Comparison.Rows,
			batch.CompareAs,
			RegionName(filepath.Base(batch.CompareB)),
			filepath.Join(dir, "comparison_scatter.png"),
		); err != nil {
			return err
		}
	}

	for region, list := range ExtractGeneLists(batch.Enrichment) {
		var (
			top    = list
			terms  []string
			counts []int
		)
		if batch.TopN > 0 && batch.TopN < len(top) {
			top = top[:batch.TopN]
		}
		for _, row := range top {
			terms = append(terms, row.Description)
			counts = append(counts, row.GeneCount)
		}
		PlotTermBar(terms, counts, region, filepath.Join(dir, region+"_go_terms.html"))
	}
	return nil
}

// Summary writes summary.txt and the summary workbook.
func (batch *Batch) Summary() {
	var summaries []RegionSummary
	for _, region := range batch.regionList() {
		var s = RegionSummary{
			Region:        region,
			InputGenes:    len(batch.Regions[region]),
			OverThreshold: len(batch.Filtered[region]),
		}
		for _, rel := range batch.Relative[region] {
			if rel.MaxInTarget {
				s.TargetMax++
			}
			if rel.MaxInGroup {
				s.GroupMax++
			}
		}
		summaries = append(summaries, s)
	}

	var summary = osUtil.Create(filepath.Join(batch.OutputPrefix, "summary.txt"))
	defer simpleUtil.DeferClose(summary)
	fmtUtil.FprintStringArray(summary, batch.TitleSummary, "\t")
	for _, s := range summaries {
		fmtUtil.Fprintf(
			summary,
			"%s\t%d\t%d\t%d\t%d\n",
			s.Region, s.InputGenes, s.OverThreshold, s.TargetMax, s.GroupMax,
		)
	}

	SummaryXlsx(
		filepath.Join(batch.OutputPrefix, "summary.xlsx"),
		batch.TitleSummary,
		summaries,
		batch.Comparison.Rows,
	)
}

func (batch *Batch) regionList() []string {
	var regions []string
	for region := range batch.Regions {
		regions = append(regions, region)
	}
	sort.Strings(regions)
	return regions
}

// relativeMatrix pivots the target-peaking relative TPM records into a
// gene x region matrix.
func (batch *Batch) relativeMatrix() Matrix {
	var sources = make(map[string][]ExpressionRecord, len(batch.Relative))
	for region, relative := range batch.Relative {
		var records []ExpressionRecord
		for _, rel := range relative {
			if rel.MaxInTarget && !math.IsNaN(rel.RelativeTPM) {
				records = append(records, ExpressionRecord{
					GeneName:  rel.GeneName,
					Region:    region,
					ScaledTPM: rel.RelativeTPM,
				})
			}
		}
		sources[region] = records
	}
	return CombineDatasets(sources)
}

// BatchRun executes every stage in order.
func (batch *Batch) BatchRun(cfgPath string, cfgFS embed.FS) error {
	var now = time.Now()

	batch.LoadConfig(cfgPath, cfgFS)
	batch.Prepare()
	if err := batch.LoadReference(); err != nil {
		return err
	}
	if err := batch.LoadTargets(); err != nil {
		return err
	}
	batch.NormalizeRegions()
	batch.FilterRegions()
	batch.MergeGroups()
	if err := batch.CompareDatasets(); err != nil {
		return err
	}
	if err := batch.EnrichRegions(); err != nil {
		return err
	}
	if err := batch.Visual(); err != nil {
		return err
	}
	batch.Summary()

	slog.Info("Done", "time", time.Since(now))
	return nil
}
