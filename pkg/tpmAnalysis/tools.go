package tpmAnalysis

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	gzip "github.com/klauspost/pgzip"
	"github.com/liserjrqlxue/goUtil/fmtUtil"
	"github.com/liserjrqlxue/goUtil/osUtil"
	"github.com/liserjrqlxue/goUtil/simpleUtil"
)

// regexp
var (
	isGz  = regexp.MustCompile(`\.gz$`)
	isCsv = regexp.MustCompile(`\.csv(\.gz)?$`)
)

// ColumnAliases maps dataset-specific headers onto the canonical
// vocabulary, so CenGen exports and merged WormSeq tables load through
// the same reader.
var ColumnAliases = map[string]string{
	"Gene name":        "gene_short_name",
	"Expression level": "scaled_TPM",
	"max_scaled_TPM":   "scaled_TPM",
}

// expressionRow keeps scaled_TPM as text so a malformed value can be
// reported with its gene instead of failing the whole table.
type expressionRow struct {
	GeneID    string `csv:"gene_ID"`
	GeneName  string `csv:"gene_short_name"`
	Region    string `csv:"region"`
	ScaledTPM string `csv:"scaled_TPM"`
}

func readTable(path string) []byte {
	var in = osUtil.Open(path)
	defer simpleUtil.DeferClose(in)

	var r io.Reader = in
	if isGz.MatchString(path) {
		var gr = simpleUtil.HandleError(gzip.NewReader(in))
		defer simpleUtil.DeferClose(gr)
		r = gr
	}
	return simpleUtil.HandleError(io.ReadAll(r))
}

// canonicalHeader rewrites the header line through ColumnAliases and
// checks the required columns are present.
func canonicalHeader(path string, content []byte) ([]byte, error) {
	var head, tail, _ = bytes.Cut(content, []byte{'\n'})
	var cols = strings.Split(strings.TrimRight(string(head), "\r"), ",")
	for i, col := range cols {
		if canonical, ok := ColumnAliases[col]; ok {
			cols[i] = canonical
		}
	}

	var seen = make(map[string]bool)
	for _, col := range cols {
		seen[col] = true
	}
	for _, col := range []string{"gene_short_name", "scaled_TPM"} {
		if !seen[col] {
			return nil, fmt.Errorf("%s: missing required column [%s]", path, col)
		}
	}
	return append([]byte(strings.Join(cols, ",")+"\n"), tail...), nil
}

// LoadExpressionTable reads one scaled-TPM table, plain or gzipped.
// Rows with a non-numeric or negative TPM are rejected with a per-row
// diagnostic; a missing required column fails the whole table. The
// region argument fills the region field when the table has no region
// column.
func LoadExpressionTable(path, region string) ([]ExpressionRecord, error) {
	var content, err = canonicalHeader(path, readTable(path))
	if err != nil {
		return nil, err
	}

	var rows []*expressionRow
	if err := gocsv.Unmarshal(bytes.NewReader(content), &rows); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var records []ExpressionRecord
	for _, row := range rows {
		if row.Region == "" {
			row.Region = region
		}
		var tpm, err = strconv.ParseFloat(row.ScaledTPM, 64)
		if err != nil || tpm < 0 {
			slog.Warn(
				"malformed row rejected",
				"file", path,
				"gene", row.GeneName,
				"region", row.Region,
				"scaled_TPM", row.ScaledTPM,
			)
			continue
		}
		records = append(
			records,
			ExpressionRecord{
				GeneID:    row.GeneID,
				GeneName:  row.GeneName,
				Region:    row.Region,
				ScaledTPM: tpm,
			},
		)
	}
	return records, nil
}

// WriteCsv marshals records with gocsv, e.g. []ExpressionRecord,
// []RelativeRecord or []ComparisonRow.
func WriteCsv(path string, records interface{}) {
	var out = osUtil.Create(path)
	defer simpleUtil.DeferClose(out)
	simpleUtil.CheckErr(gocsv.Marshal(records, out))
}

// WriteGeneList writes one gene name per line, the flat format the
// enrichment gateway consumes.
func WriteGeneList(path string, genes []string) {
	var out = osUtil.Create(path)
	defer simpleUtil.DeferClose(out)
	for _, gene := range genes {
		fmtUtil.Fprintln(out, gene)
	}
}

// GeneNames collects the gene column of records, input order kept.
func GeneNames(records []ExpressionRecord) []string {
	var genes = make([]string, 0, len(records))
	for _, rec := range records {
		genes = append(genes, rec.GeneName)
	}
	return genes
}

// RegionName derives a region label from a table filename, e.g.
// "Spermatheca bag distal.csv.gz" -> "Spermatheca bag distal".
func RegionName(filename string) string {
	filename = isGz.ReplaceAllString(filename, "")
	return strings.TrimSuffix(filename, ".csv")
}
