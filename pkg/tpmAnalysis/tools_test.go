package tpmAnalysis

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp table: %v", err)
	}
	return path
}

func TestLoadExpressionTable(t *testing.T) {
	path := writeTemp(t, "Spermatheca bag distal.csv",
		"gene_ID,gene_short_name,scaled_TPM\n"+
			"WBGene1,act-1,512.5\n"+
			"WBGene2,myo-3,90\n")

	records, err := LoadExpressionTable(path, "Spermatheca bag distal")
	if err != nil {
		t.Fatalf("Expected no error, but got: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].GeneName != "act-1" || records[0].ScaledTPM != 512.5 {
		t.Errorf("records[0] = %+v", records[0])
	}
	// region column absent, filled from the argument
	if records[0].Region != "Spermatheca bag distal" {
		t.Errorf("region = %q", records[0].Region)
	}
}

func TestLoadExpressionTableAliases(t *testing.T) {
	// CenGen export headers load through the alias map
	path := writeTemp(t, "CenGen spermatheca.csv",
		"Gene name,Expression level\n"+
			"spe-9,420\n")

	records, err := LoadExpressionTable(path, "spermatheca")
	if err != nil {
		t.Fatalf("Expected no error, but got: %v", err)
	}
	if len(records) != 1 || records[0].GeneName != "spe-9" || records[0].ScaledTPM != 420 {
		t.Errorf("records = %+v", records)
	}
}

func TestLoadExpressionTableMalformedRow(t *testing.T) {
	path := writeTemp(t, "neck.csv",
		"gene_short_name,scaled_TPM\n"+
			"good-1,100\n"+
			"bad-1,not_a_number\n"+
			"bad-2,-5\n"+
			"good-2,200\n")

	records, err := LoadExpressionTable(path, "neck")
	if err != nil {
		t.Fatalf("Malformed rows must not fail the table: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected malformed rows to be skipped, got %d records", len(records))
	}
	if records[0].GeneName != "good-1" || records[1].GeneName != "good-2" {
		t.Errorf("records = %+v", records)
	}
}

func TestLoadExpressionTableMissingColumn(t *testing.T) {
	path := writeTemp(t, "broken.csv",
		"gene_short_name,some_other_column\n"+
			"act-1,1\n")

	_, err := LoadExpressionTable(path, "neck")
	if err == nil {
		t.Fatal("Expected an error for a missing required column, but got nil")
	}
	if !strings.Contains(err.Error(), "scaled_TPM") {
		t.Errorf("diagnostic should name the missing column: %v", err)
	}
}

func TestRegionName(t *testing.T) {
	cases := map[string]string{
		"Spermatheca bag distal.csv":    "Spermatheca bag distal",
		"CenGen spermatheca.csv.gz":     "CenGen spermatheca",
		"merged_wormseq_spermatheca.csv": "merged_wormseq_spermatheca",
	}
	for in, want := range cases {
		if got := RegionName(in); got != want {
			t.Errorf("RegionName(%q) = %q; want %q", in, got, want)
		}
	}
}
