package utils

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func xlsxBytes(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, r := range rows {
		for j, v := range r {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func serveBytes(t *testing.T, status int, content []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write(content)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoaderParsesFirstSheet(t *testing.T) {
	content := xlsxBytes(t, [][]interface{}{
		{"Name", "Amount", "Region"},
		{"Widget", 42, "EU"},
		{"Gadget", 7, "US"},
	})
	srv := serveBytes(t, http.StatusOK, content)

	ds, err := NewSpreadsheetLoader().Load(context.Background(), srv.URL+"/sheet.xlsx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Name", "Amount", "Region"}
	if len(ds.Columns) != len(want) {
		t.Fatalf("columns = %v, want %v", ds.Columns, want)
	}
	for i, c := range want {
		if ds.Columns[i] != c {
			t.Errorf("column %d = %q, want %q (header order must match the sheet)", i, ds.Columns[i], c)
		}
	}
	if len(ds.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(ds.Rows))
	}
	if ds.Rows[0]["Amount"] != "42" {
		t.Errorf("Amount = %q, want %q", ds.Rows[0]["Amount"], "42")
	}
}

func TestLoaderHeadersOnlySheet(t *testing.T) {
	content := xlsxBytes(t, [][]interface{}{{"Name", "Amount"}})
	srv := serveBytes(t, http.StatusOK, content)

	ds, err := NewSpreadsheetLoader().Load(context.Background(), srv.URL+"/empty.xlsx")
	if err != nil {
		t.Fatalf("a sheet with headers and no data rows is valid, got: %v", err)
	}
	if len(ds.Columns) != 2 || len(ds.Rows) != 0 {
		t.Fatalf("got %d columns / %d rows, want 2 / 0", len(ds.Columns), len(ds.Rows))
	}
}

func TestLoaderRemoteFailure(t *testing.T) {
	srv := serveBytes(t, http.StatusNotFound, nil)
	_, err := NewSpreadsheetLoader().Load(context.Background(), srv.URL+"/gone.xlsx")
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("got %v, want ErrDataUnavailable", err)
	}
}

func TestLoaderMalformedContent(t *testing.T) {
	srv := serveBytes(t, http.StatusOK, []byte("this is not a workbook"))
	_, err := NewSpreadsheetLoader().Load(context.Background(), srv.URL+"/bad.xlsx")
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("got %v, want ErrDataUnavailable", err)
	}
}

func TestParseRowsCSV(t *testing.T) {
	rows, err := ParseRows([]byte("a,b\n1,2\n3,4\n"), ".csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 || rows[1][1] != "2" {
		t.Fatalf("rows = %v", rows)
	}
}

func TestBuildDatasetNormalizesHeaders(t *testing.T) {
	ds := BuildDataset([][]string{
		{"Name", "", "Region"},
		{"Widget", "10"},
	})
	if ds.Columns[1] != "Col1" {
		t.Errorf("blank header = %q, want Col1", ds.Columns[1])
	}
	if ds.Rows[0]["Region"] != "" {
		t.Errorf("short row must pad missing cells with empty strings")
	}
}

func TestSummarizeDeterministic(t *testing.T) {
	ds := BuildDataset([][]string{
		{"Name", "Amount"},
		{"A", "1"},
		{"B", "2"},
		{"C", "3"},
	})
	first := SummarizeDataset(ds, 2)
	second := SummarizeDataset(ds, 2)
	if first != second {
		t.Fatal("summary must be deterministic for the same dataset")
	}
	if !strings.Contains(first, "Total rows: 3") {
		t.Errorf("summary %q missing total row count", first)
	}
	if !strings.Contains(first, "Name, Amount") {
		t.Errorf("summary %q missing ordered column list", first)
	}
	if strings.Contains(first, `"C"`) {
		t.Errorf("sample of 2 must not include the third row: %q", first)
	}
	if three := SummarizeDataset(ds, 3); !strings.Contains(three, `"C"`) {
		t.Errorf("sample of 3 must include the third row: %q", three)
	}
}

func TestSummarizeEmptyDataRows(t *testing.T) {
	ds := BuildDataset([][]string{{"Name", "Amount"}})
	got := SummarizeDataset(ds, 2)
	if got == NoDataSentinel {
		t.Fatal("headers-only sheet must produce a structured summary, not the sentinel")
	}
	if !strings.Contains(got, "Total rows: 0") {
		t.Errorf("summary %q must report zero rows", got)
	}
	if !strings.Contains(got, "[]") {
		t.Errorf("summary %q must carry an empty sample", got)
	}
}

func TestSummarizeNoDataAtAll(t *testing.T) {
	if got := SummarizeDataset(Dataset{}, 2); got != NoDataSentinel {
		t.Fatalf("got %q, want the no-data sentinel", got)
	}
}
