package tpmAnalysis

import (
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/liserjrqlxue/goUtil/simpleUtil"
)

// LoadReference scans every csv/csv.gz table under dir, one table per
// cell type, and records each gene's maximum scaled TPM across the
// catalogue together with the cell type holding it.
func LoadReference(dir string) (map[string]RefMax, error) {
	var refMax = make(map[string]RefMax)

	for _, entry := range simpleUtil.HandleError(os.ReadDir(dir)) {
		if entry.IsDir() || !isCsv.MatchString(entry.Name()) {
			continue
		}
		var cellType = RegionName(entry.Name())
		var records, err = LoadExpressionTable(filepath.Join(dir, entry.Name()), cellType)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			if max, ok := refMax[rec.GeneName]; !ok || rec.ScaledTPM > max.Value {
				refMax[rec.GeneName] = RefMax{Value: rec.ScaledTPM, Source: cellType}
			}
		}
	}

	slog.Info("reference catalogue loaded", "dir", dir, "genes", len(refMax))
	return refMax, nil
}

// Normalize computes relative TPM for every record against the
// reference maxima.
//
// A gene absent from the reference gets NaN and is excluded from ranked
// output downstream; a gene whose reference maximum is 0 gets 0. Each
// record is flagged with whether its gene peaks inside a target region
// at all (MaxInTarget) and inside the record's own merged group
// (MaxInGroup).
func Normalize(records []ExpressionRecord, refMax map[string]RefMax, groups GroupMap, targets map[string]bool) []RelativeRecord {
	var (
		out     = make([]RelativeRecord, 0, len(records))
		missing = 0
	)

	for _, rec := range records {
		var rel = RelativeRecord{
			GeneID:    rec.GeneID,
			GeneName:  rec.GeneName,
			Region:    rec.Region,
			ScaledTPM: rec.ScaledTPM,
		}

		var max, ok = refMax[rec.GeneName]
		switch {
		case !ok:
			rel.RelativeTPM = math.NaN()
			missing++
		case max.Value == 0:
			rel.RelativeTPM = 0
		default:
			rel.RelativeTPM = rec.ScaledTPM / max.Value
		}
		if ok {
			rel.MaxInTarget = targets[max.Source]
			rel.MaxInGroup = rel.MaxInTarget && groups.Label(max.Source) == groups.Label(rec.Region)
		}

		out = append(out, rel)
	}

	if missing > 0 {
		slog.Warn("genes absent from reference catalogue", "region", regionOf(records), "count", missing)
	}
	return out
}

func regionOf(records []ExpressionRecord) string {
	if len(records) == 0 {
		return ""
	}
	return records[0].Region
}

// RankedByRelative keeps records with a defined relative TPM, ordered
// by descending relative TPM. NaN records never rank.
func RankedByRelative(records []RelativeRecord) []RelativeRecord {
	var ranked []RelativeRecord
	for _, rec := range records {
		if !math.IsNaN(rec.RelativeTPM) {
			ranked = append(ranked, rec)
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].RelativeTPM != ranked[j].RelativeTPM {
			return ranked[i].RelativeTPM > ranked[j].RelativeTPM
		}
		return ranked[i].GeneName < ranked[j].GeneName
	})
	return ranked
}
