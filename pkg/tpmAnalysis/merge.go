package tpmAnalysis

import "sort"

// Merge collapses sub-regions onto their group labels and aggregates
// duplicate (gene, group) pairs by maximum scaled TPM, the convention
// the merged WormSeq spermatheca table uses. Regions without a group
// entry pass through unchanged, so merging an already-merged table is a
// no-op.
func Merge(records []ExpressionRecord, groups GroupMap) []ExpressionRecord {
	type key struct {
		gene, region string
	}
	var max = make(map[key]ExpressionRecord)

	for _, rec := range records {
		rec.Region = groups.Label(rec.Region)
		var k = key{gene: rec.GeneName, region: rec.Region}
		if prev, ok := max[k]; !ok || rec.ScaledTPM > prev.ScaledTPM {
			max[k] = rec
		}
	}

	var merged = make([]ExpressionRecord, 0, len(max))
	for _, rec := range max {
		merged = append(merged, rec)
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Region != merged[j].Region {
			return merged[i].Region < merged[j].Region
		}
		if merged[i].ScaledTPM != merged[j].ScaledTPM {
			return merged[i].ScaledTPM > merged[j].ScaledTPM
		}
		return merged[i].GeneName < merged[j].GeneName
	})
	return merged
}
