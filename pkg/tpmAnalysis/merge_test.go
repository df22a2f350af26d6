package tpmAnalysis

import (
	"reflect"
	"testing"
)

func TestMerge(t *testing.T) {
	groups := GroupMap{
		"neck_proximal": "neck",
		"neck_distal":   "neck",
	}
	records := []ExpressionRecord{
		{GeneName: "geneX", Region: "neck_proximal", ScaledTPM: 500},
		{GeneName: "geneX", Region: "neck_distal", ScaledTPM: 300},
	}

	merged := Merge(records, groups)
	if len(merged) != 1 {
		t.Fatalf("Expected 1 merged record, got %d", len(merged))
	}
	if merged[0].Region != "neck" || merged[0].ScaledTPM != 500 {
		t.Errorf("merged = %+v; want geneX in neck at 500", merged[0])
	}
}

func TestMergePassThrough(t *testing.T) {
	groups := GroupMap{"neck_proximal": "neck"}
	records := []ExpressionRecord{
		{GeneName: "geneA", Region: "valve", ScaledTPM: 700},
	}

	merged := Merge(records, groups)
	if merged[0].Region != "valve" {
		t.Errorf("unmapped region changed: %+v", merged[0])
	}
}

func TestMergeIdempotent(t *testing.T) {
	groups := GroupMap{
		"neck_proximal": "neck",
		"neck_distal":   "neck",
		"sp_ut":         "valve",
	}
	records := []ExpressionRecord{
		{GeneName: "geneX", Region: "neck_proximal", ScaledTPM: 500},
		{GeneName: "geneX", Region: "neck_distal", ScaledTPM: 300},
		{GeneName: "geneY", Region: "sp_ut", ScaledTPM: 450},
		{GeneName: "geneZ", Region: "other", ScaledTPM: 20},
	}

	once := Merge(records, groups)
	twice := Merge(once, groups)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("merge is not idempotent:\nonce:  %v\ntwice: %v", once, twice)
	}
}
