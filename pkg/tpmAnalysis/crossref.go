package tpmAnalysis

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/cloudflare/ahocorasick"
	"github.com/gocarina/gocsv"
)

// FunctionalKeywords are the contractile-machinery terms scanned for in
// GO descriptions when cross-referencing WormMine query genes.
var FunctionalKeywords = []string{"actin", "myosin", "calcium"}

var keywordMatcher = ahocorasick.NewStringMatcher(FunctionalKeywords)

// WormMineGene is one row of a WormMine query export.
type WormMineGene struct {
	Gene          string `csv:"gene_id"`
	WBGeneID      string `csv:"wbgene_id"`
	GODescription string `csv:"go_description"`
}

// CrossRefRow is one gene matched between the WormMine query and an
// expression dataset.
type CrossRefRow struct {
	Gene      string  `csv:"gene"`
	WBGeneID  string  `csv:"wbgene_id"`
	Category  string  `csv:"functional_category"`
	Dataset   string  `csv:"dataset"`
	ScaledTPM float64 `csv:"scaled_TPM"`
}

// Categorize tags a GO description with the functional keywords it
// mentions, ;-joined, or "other" when none match.
func Categorize(goDescription string) string {
	var hits = keywordMatcher.Match([]byte(strings.ToLower(goDescription)))
	if len(hits) == 0 {
		return "other"
	}
	sort.Ints(hits)
	var categories = make([]string, 0, len(hits))
	for _, hit := range hits {
		categories = append(categories, FunctionalKeywords[hit])
	}
	return strings.Join(categories, ";")
}

// CrossReference intersects WormMine query genes with each expression
// dataset, emitting a long-format row per (gene, dataset) match. Gene
// identity matches on either the public name or the WBGene ID.
func CrossReference(query []WormMineGene, datasets map[string][]ExpressionRecord) []CrossRefRow {
	var datasetNames []string
	for name := range datasets {
		datasetNames = append(datasetNames, name)
	}
	sort.Strings(datasetNames)

	var rows []CrossRefRow
	for _, name := range datasetNames {
		var tpm = make(map[string]float64)
		for _, rec := range datasets[name] {
			if _, ok := tpm[rec.GeneName]; !ok {
				tpm[rec.GeneName] = rec.ScaledTPM
			}
		}
		for _, q := range query {
			var value, ok = tpm[q.Gene]
			if !ok {
				value, ok = tpm[q.WBGeneID]
			}
			if !ok {
				continue
			}
			rows = append(rows, CrossRefRow{
				Gene:      q.Gene,
				WBGeneID:  q.WBGeneID,
				Category:  Categorize(q.GODescription),
				Dataset:   name,
				ScaledTPM: value,
			})
		}
	}
	return rows
}

// LoadWormMine reads a WormMine query export of
// {gene_id, wbgene_id, go_description}.
func LoadWormMine(path string) ([]WormMineGene, error) {
	var query []*WormMineGene
	if err := gocsv.Unmarshal(bytes.NewReader(readTable(path)), &query); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	var genes = make([]WormMineGene, 0, len(query))
	for _, q := range query {
		if q.Gene == "" && q.WBGeneID == "" {
			continue
		}
		genes = append(genes, *q)
	}
	return genes, nil
}
