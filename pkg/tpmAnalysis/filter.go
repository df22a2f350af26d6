package tpmAnalysis

import "log/slog"

// Filter keeps records with scaled TPM at or above threshold, ordered
// by descending TPM. Ties at the threshold are kept. An empty result is
// a valid empty slice, not an error.
func Filter(records []ExpressionRecord, threshold float64) []ExpressionRecord {
	var kept = make([]ExpressionRecord, 0)
	for _, rec := range records {
		if rec.ScaledTPM >= threshold {
			kept = append(kept, rec)
		}
	}
	SortByTPM(kept)
	return kept
}

// FilterPerRegion filters each region separately and additionally
// returns the combined any-region list: one entry per gene over
// threshold in at least one region, at its maximum TPM.
func FilterPerRegion(records []ExpressionRecord, threshold float64) (map[string][]ExpressionRecord, []ExpressionRecord) {
	var byRegion = make(map[string][]ExpressionRecord)
	for _, rec := range records {
		byRegion[rec.Region] = append(byRegion[rec.Region], rec)
	}

	var (
		perRegion = make(map[string][]ExpressionRecord, len(byRegion))
		maxOver   = make(map[string]ExpressionRecord)
	)
	for region, regionRecords := range byRegion {
		var kept = Filter(regionRecords, threshold)
		perRegion[region] = kept
		if len(kept) == 0 {
			slog.Info("no genes over threshold", "region", region, "threshold", threshold)
		}
		for _, rec := range kept {
			if max, ok := maxOver[rec.GeneName]; !ok || rec.ScaledTPM > max.ScaledTPM {
				maxOver[rec.GeneName] = rec
			}
		}
	}

	var combined = make([]ExpressionRecord, 0, len(maxOver))
	for _, rec := range maxOver {
		combined = append(combined, rec)
	}
	SortByTPM(combined)
	return perRegion, combined
}
