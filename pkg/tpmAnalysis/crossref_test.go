package tpmAnalysis

import (
	"testing"
)

func TestCategorize(t *testing.T) {
	cases := map[string]string{
		"actin filament binding":                     "actin",
		"Myosin II complex":                          "myosin",
		"calcium ion transmembrane transport":        "calcium",
		"actin-dependent myosin motor activity":      "actin;myosin",
		"structural constituent of cuticle":          "other",
		"":                                           "other",
		"voltage-gated calcium channel, actin-bound": "actin;calcium",
	}
	for in, want := range cases {
		if got := Categorize(in); got != want {
			t.Errorf("Categorize(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestCrossReference(t *testing.T) {
	var query = []WormMineGene{
		{Gene: "act-1", WBGeneID: "WBGene00000063", GODescription: "actin filament"},
		{Gene: "myo-3", WBGeneID: "WBGene00003515", GODescription: "myosin complex"},
		{Gene: "unc-68", WBGeneID: "WBGene00006801", GODescription: "calcium release channel"},
	}
	var datasets = map[string][]ExpressionRecord{
		"wormseq": {
			{GeneName: "act-1", Region: "neck", ScaledTPM: 900},
			{GeneName: "myo-3", Region: "bag", ScaledTPM: 450},
		},
		"cengen": {
			// matched through the WBGene ID instead of the public name
			{GeneName: "WBGene00000063", Region: "spermatheca", ScaledTPM: 700},
		},
	}

	var rows = CrossReference(query, datasets)
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d: %+v", len(rows), rows)
	}

	// dataset names are emitted in sorted order
	if rows[0].Dataset != "cengen" || rows[0].Gene != "act-1" || rows[0].ScaledTPM != 700 {
		t.Errorf("rows[0] = %+v", rows[0])
	}
	if rows[0].Category != "actin" {
		t.Errorf("rows[0].Category = %q", rows[0].Category)
	}
	if rows[1].Dataset != "wormseq" || rows[1].Gene != "act-1" || rows[1].ScaledTPM != 900 {
		t.Errorf("rows[1] = %+v", rows[1])
	}
	if rows[2].Gene != "myo-3" || rows[2].Category != "myosin" {
		t.Errorf("rows[2] = %+v", rows[2])
	}
}

func TestCrossReferenceNoMatch(t *testing.T) {
	var query = []WormMineGene{
		{Gene: "unk-1", WBGeneID: "WBGene99999999", GODescription: "unknown"},
	}
	var datasets = map[string][]ExpressionRecord{
		"wormseq": {{GeneName: "act-1", ScaledTPM: 10}},
	}
	if rows := CrossReference(query, datasets); len(rows) != 0 {
		t.Errorf("Expected no rows, got %+v", rows)
	}
}

func TestLoadWormMine(t *testing.T) {
	path := writeTemp(t, "wormmine.csv",
		"gene_id,wbgene_id,go_description\n"+
			"act-1,WBGene00000063,actin filament\n"+
			",,\n"+
			"myo-3,WBGene00003515,myosin complex\n")

	genes, err := LoadWormMine(path)
	if err != nil {
		t.Fatalf("Expected no error, but got: %v", err)
	}
	if len(genes) != 2 {
		t.Fatalf("Expected blank rows skipped, got %d genes", len(genes))
	}
	if genes[1].Gene != "myo-3" || genes[1].GODescription != "myosin complex" {
		t.Errorf("genes[1] = %+v", genes[1])
	}
}
