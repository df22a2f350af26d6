package tpmAnalysis

import (
	"sort"
)

// ExpressionRecord is one row of a scaled-TPM table: one gene in one
// region or cell type. Loaded once per run and never modified.
type ExpressionRecord struct {
	GeneID    string  `csv:"gene_ID"`
	GeneName  string  `csv:"gene_short_name"`
	Region    string  `csv:"region"`
	ScaledTPM float64 `csv:"scaled_TPM"`
}

// RelativeRecord extends ExpressionRecord with the relative TPM against
// the reference catalogue.
//
// RelativeTPM is NaN when the gene is absent from the reference and 0
// when the gene's reference maximum is 0.
type RelativeRecord struct {
	GeneID      string  `csv:"gene_ID"`
	GeneName    string  `csv:"gene_short_name"`
	Region      string  `csv:"region"`
	ScaledTPM   float64 `csv:"scaled_TPM"`
	RelativeTPM float64 `csv:"relative_TPM"`
	MaxInTarget bool    `csv:"max_in_spermatheca"`
	MaxInGroup  bool    `csv:"max_in_same_component"`
}

// RefMax is a gene's maximum scaled TPM across the whole reference
// catalogue and the cell type holding that maximum.
type RefMax struct {
	Value  float64
	Source string
}

// GroupMap maps a source region label to its merged group label. The map
// is partial: regions without an entry keep their own label.
type GroupMap map[string]string

// Label resolves a region through the grouping map, identity for
// unmapped regions.
func (g GroupMap) Label(region string) string {
	if label, ok := g[region]; ok {
		return label
	}
	return region
}

// ComparisonRow pairs one gene's scaled TPM in two datasets for a shared
// region label.
type ComparisonRow struct {
	GeneName   string  `csv:"gene"`
	Region     string  `csv:"region"`
	ScaledTPMA float64 `csv:"scaled_TPM_A"`
	ScaledTPMB float64 `csv:"scaled_TPM_B"`
}

// CompareResult is the outcome of aligning two filtered datasets on the
// shared region vocabulary.
type CompareResult struct {
	Rows []ComparisonRow

	// genes over threshold in only one dataset, per shared region
	AOnly map[string][]string
	BOnly map[string][]string
}

// SortByTPM orders records by descending scaled TPM, gene name as
// tie-break so output files are reproducible.
func SortByTPM(records []ExpressionRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].ScaledTPM != records[j].ScaledTPM {
			return records[i].ScaledTPM > records[j].ScaledTPM
		}
		return records[i].GeneName < records[j].GeneName
	})
}
