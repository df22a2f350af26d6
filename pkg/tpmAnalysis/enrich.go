package tpmAnalysis

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"TPMAnalysis/pkg/gprofiler"

	"github.com/gocarina/gocsv"
)

// EnrichmentRow is one GO term attached to the region whose gene list
// produced it, the row format of per-region and combined enrichment
// tables.
type EnrichmentRow struct {
	Native string  `csv:"native"`
	Name   string  `csv:"name"`
	Source string  `csv:"source"`
	PValue float64 `csv:"p_value"`
	Region string  `csv:"region"`
	Genes  string  `csv:"intersections"`
}

// EnrichRegion submits one region's gene list and tags the returned
// terms with the region.
func EnrichRegion(profiler gprofiler.Profiler, organism, region string, genes []string) ([]EnrichmentRow, error) {
	if len(genes) == 0 {
		return nil, nil
	}
	var terms, err = profiler.Profile(organism, genes)
	if err != nil {
		return nil, fmt.Errorf("enrich %s: %w", region, err)
	}

	var rows = make([]EnrichmentRow, 0, len(terms))
	for _, term := range terms {
		rows = append(rows, EnrichmentRow{
			Native: term.Native,
			Name:   term.Name,
			Source: term.Source,
			PValue: term.PValue,
			Region: region,
			Genes:  strings.Join(term.Intersections, ","),
		})
	}
	return rows, nil
}

// GeneListRow is one GO term with its member genes, the per-region
// extraction format.
type GeneListRow struct {
	GoID        string `csv:"GO_ID"`
	Description string `csv:"Description"`
	GeneCount   int    `csv:"Gene_Count"`
	Genes       string `csv:"Genes"`
}

// ExtractGeneLists regroups combined enrichment rows by region into
// GO-term gene lists.
func ExtractGeneLists(rows []EnrichmentRow) map[string][]GeneListRow {
	var byRegion = make(map[string][]GeneListRow)
	for _, row := range rows {
		var genes []string
		if row.Genes != "" {
			genes = strings.Split(row.Genes, ",")
		}
		byRegion[row.Region] = append(byRegion[row.Region], GeneListRow{
			GoID:        row.Native,
			Description: row.Name,
			GeneCount:   len(genes),
			Genes:       strings.Join(genes, ";"),
		})
	}
	for _, list := range byRegion {
		sort.Slice(list, func(i, j int) bool {
			if list[i].GeneCount != list[j].GeneCount {
				return list[i].GeneCount > list[j].GeneCount
			}
			return list[i].GoID < list[j].GoID
		})
	}
	return byRegion
}

// CleanGoID makes a GO term id filename-safe, GO:0003774 -> GO_0003774.
func CleanGoID(goID string) string {
	return strings.ReplaceAll(goID, ":", "_")
}

// LoadEnrichment reads a combined enrichment table written by WriteCsv.
func LoadEnrichment(path string) ([]EnrichmentRow, error) {
	var rows []*EnrichmentRow
	if err := gocsv.Unmarshal(bytes.NewReader(readTable(path)), &rows); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	var out = make([]EnrichmentRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	return out, nil
}
