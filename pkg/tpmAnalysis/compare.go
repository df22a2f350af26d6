package tpmAnalysis

import (
	"bytes"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/gocarina/gocsv"
)

// Compare aligns two filtered datasets on the shared coarse region
// vocabulary: both sides are merged through groups, filtered, then
// joined on (gene, region). Matches are only at merged-region
// granularity; fine sub-region identity is not preserved. Regions seen
// in one dataset only are excluded with a warning.
func Compare(a, b []ExpressionRecord, groups GroupMap, threshold float64) CompareResult {
	var (
		indexA = indexByRegion(Filter(Merge(a, groups), threshold))
		indexB = indexByRegion(Filter(Merge(b, groups), threshold))

		result = CompareResult{
			AOnly: make(map[string][]string),
			BOnly: make(map[string][]string),
		}
	)

	for region := range indexA {
		if _, ok := indexB[region]; !ok {
			slog.Warn("region absent from dataset B, excluded from comparison", "region", region)
		}
	}
	for region := range indexB {
		if _, ok := indexA[region]; !ok {
			slog.Warn("region absent from dataset A, excluded from comparison", "region", region)
		}
	}

	for region, genesA := range indexA {
		var genesB, ok = indexB[region]
		if !ok {
			continue
		}
		for gene, tpmA := range genesA {
			if tpmB, shared := genesB[gene]; shared {
				result.Rows = append(result.Rows, ComparisonRow{
					GeneName:   gene,
					Region:     region,
					ScaledTPMA: tpmA,
					ScaledTPMB: tpmB,
				})
			} else {
				result.AOnly[region] = append(result.AOnly[region], gene)
			}
		}
		for gene := range genesB {
			if _, shared := genesA[gene]; !shared {
				result.BOnly[region] = append(result.BOnly[region], gene)
			}
		}
	}

	sort.Slice(result.Rows, func(i, j int) bool {
		if result.Rows[i].Region != result.Rows[j].Region {
			return result.Rows[i].Region < result.Rows[j].Region
		}
		return result.Rows[i].GeneName < result.Rows[j].GeneName
	})
	for _, only := range []map[string][]string{result.AOnly, result.BOnly} {
		for _, genes := range only {
			sort.Strings(genes)
		}
	}
	return result
}

func indexByRegion(records []ExpressionRecord) map[string]map[string]float64 {
	var index = make(map[string]map[string]float64)
	for _, rec := range records {
		if _, ok := index[rec.Region]; !ok {
			index[rec.Region] = make(map[string]float64)
		}
		index[rec.Region][rec.GeneName] = rec.ScaledTPM
	}
	return index
}

// Matrix is a gene x column pivot of scaled TPM values. Missing cells
// are NaN.
type Matrix struct {
	Genes   []string
	Columns []string
	Values  [][]float64
}

// CombineDatasets pivots named record sets into one comparison matrix,
// column per source, for the heatmap and scatter suite.
func CombineDatasets(sources map[string][]ExpressionRecord) Matrix {
	var m Matrix
	for source := range sources {
		m.Columns = append(m.Columns, source)
	}
	sort.Strings(m.Columns)

	var geneSet = make(map[string]bool)
	for _, records := range sources {
		for _, rec := range records {
			geneSet[rec.GeneName] = true
		}
	}
	for gene := range geneSet {
		m.Genes = append(m.Genes, gene)
	}
	sort.Strings(m.Genes)

	var geneRow = make(map[string]int, len(m.Genes))
	for i, gene := range m.Genes {
		geneRow[gene] = i
	}

	m.Values = make([][]float64, len(m.Genes))
	for i := range m.Values {
		m.Values[i] = make([]float64, len(m.Columns))
		for j := range m.Values[i] {
			m.Values[i][j] = math.NaN()
		}
	}
	for j, source := range m.Columns {
		for _, rec := range sources[source] {
			m.Values[geneRow[rec.GeneName]][j] = rec.ScaledTPM
		}
	}
	return m
}

// LoadComparison reads an intersection table written by WriteCsv.
func LoadComparison(path string) ([]ComparisonRow, error) {
	var rows []*ComparisonRow
	if err := gocsv.Unmarshal(bytes.NewReader(readTable(path)), &rows); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	var out = make([]ComparisonRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	return out, nil
}

// CommonGenes keeps matrix rows with a value in every column.
func (m Matrix) CommonGenes() Matrix {
	var common = Matrix{Columns: m.Columns}
	for i, gene := range m.Genes {
		var complete = true
		for _, v := range m.Values[i] {
			if math.IsNaN(v) {
				complete = false
				break
			}
		}
		if complete {
			common.Genes = append(common.Genes, gene)
			common.Values = append(common.Values, m.Values[i])
		}
	}
	return common
}
