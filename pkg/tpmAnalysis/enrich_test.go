package tpmAnalysis

import (
	"reflect"
	"testing"

	"TPMAnalysis/pkg/gprofiler"
)

type stubProfiler struct {
	organism string
	query    []string
	terms    []gprofiler.Term
}

func (s *stubProfiler) Profile(organism string, query []string) ([]gprofiler.Term, error) {
	s.organism = organism
	s.query = query
	return s.terms, nil
}

func TestEnrichRegion(t *testing.T) {
	var profiler = &stubProfiler{
		terms: []gprofiler.Term{
			{
				Native:        "GO:0003774",
				Name:          "cytoskeletal motor activity",
				Source:        "GO:MF",
				PValue:        1e-5,
				Intersections: []string{"myo-3", "unc-54"},
			},
		},
	}

	rows, err := EnrichRegion(profiler, "celegans", "neck", []string{"myo-3", "unc-54", "act-1"})
	if err != nil {
		t.Fatalf("Expected no error, but got: %v", err)
	}
	if profiler.organism != "celegans" || len(profiler.query) != 3 {
		t.Errorf("profiler called with organism %q, %d genes", profiler.organism, len(profiler.query))
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	var want = EnrichmentRow{
		Native: "GO:0003774",
		Name:   "cytoskeletal motor activity",
		Source: "GO:MF",
		PValue: 1e-5,
		Region: "neck",
		Genes:  "myo-3,unc-54",
	}
	if !reflect.DeepEqual(rows[0], want) {
		t.Errorf("rows[0] = %+v; want %+v", rows[0], want)
	}
}

func TestEnrichRegionEmptyQuery(t *testing.T) {
	var profiler = &stubProfiler{}
	rows, err := EnrichRegion(profiler, "celegans", "valve", nil)
	if err != nil {
		t.Fatalf("Expected no error, but got: %v", err)
	}
	if rows != nil {
		t.Errorf("Expected no rows for an empty gene list, got %+v", rows)
	}
	if profiler.query != nil {
		t.Error("An empty gene list must not reach the profiler")
	}
}

func TestExtractGeneLists(t *testing.T) {
	var rows = []EnrichmentRow{
		{Native: "GO:0000001", Name: "small term", Region: "neck", Genes: "act-1"},
		{Native: "GO:0000002", Name: "big term", Region: "neck", Genes: "myo-3,unc-54,act-1"},
		{Native: "GO:0000003", Name: "bag term", Region: "bag", Genes: "spe-9,act-1"},
	}

	var byRegion = ExtractGeneLists(rows)
	if len(byRegion) != 2 {
		t.Fatalf("Expected 2 regions, got %d", len(byRegion))
	}

	var neck = byRegion["neck"]
	if len(neck) != 2 {
		t.Fatalf("Expected 2 neck terms, got %d", len(neck))
	}
	// sorted by descending gene count
	if neck[0].GoID != "GO:0000002" || neck[0].GeneCount != 3 {
		t.Errorf("neck[0] = %+v", neck[0])
	}
	if neck[0].Genes != "myo-3;unc-54;act-1" {
		t.Errorf("genes should be ;-joined, got %q", neck[0].Genes)
	}
	if neck[1].GoID != "GO:0000001" || neck[1].GeneCount != 1 {
		t.Errorf("neck[1] = %+v", neck[1])
	}
	if byRegion["bag"][0].GeneCount != 2 {
		t.Errorf("bag = %+v", byRegion["bag"])
	}
}

func TestCleanGoID(t *testing.T) {
	if got := CleanGoID("GO:0003774"); got != "GO_0003774" {
		t.Errorf("CleanGoID = %q", got)
	}
}
