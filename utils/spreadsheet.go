package utils

import (
    "bytes"
    "context"
    "encoding/csv"
    "encoding/json"
    "fmt"
    "net/http"
    "net/url"
    "path"
    "strconv"
    "strings"
    "time"

    "github.com/xuri/excelize/v2"
)

// Dataset is the in-memory form of one uploaded spreadsheet: the first
// worksheet only, first row taken as headers. Lifetime is a single request.
type Dataset struct {
    Columns []string
    Rows    []map[string]string
}

// NoDataSentinel is emitted instead of a structured summary when the sheet
// holds nothing at all, so the provider still receives a meaningful prompt.
const NoDataSentinel = "No data available in this file."

const fetchTimeout = 10 * time.Second

// SpreadsheetLoader fetches a stored file by its remote URL and decodes it.
type SpreadsheetLoader struct {
    client *http.Client
}

func NewSpreadsheetLoader() *SpreadsheetLoader {
    return &SpreadsheetLoader{client: &http.Client{Timeout: fetchTimeout}}
}

// Load retrieves the file bytes and parses the first sheet. Every failure mode
// (network, non-2xx, malformed content) wraps ErrDataUnavailable; callers do
// not retry.
func (l *SpreadsheetLoader) Load(ctx context.Context, fileURL string) (Dataset, error) {
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
    if err != nil {
        return Dataset{}, fmt.Errorf("%w: bad url: %v", ErrDataUnavailable, err)
    }
    resp, err := l.client.Do(req)
    if err != nil {
        return Dataset{}, fmt.Errorf("%w: fetch: %v", ErrDataUnavailable, err)
    }
    defer resp.Body.Close()
    if resp.StatusCode < 200 || resp.StatusCode > 299 {
        return Dataset{}, fmt.Errorf("%w: remote status %d", ErrDataUnavailable, resp.StatusCode)
    }
    var buf bytes.Buffer
    if _, err := buf.ReadFrom(resp.Body); err != nil {
        return Dataset{}, fmt.Errorf("%w: read body: %v", ErrDataUnavailable, err)
    }
    rows, err := ParseRows(buf.Bytes(), extFromURL(fileURL))
    if err != nil {
        return Dataset{}, fmt.Errorf("%w: parse: %v", ErrDataUnavailable, err)
    }
    return BuildDataset(rows), nil
}

func extFromURL(raw string) string {
    u, err := url.Parse(raw)
    if err != nil {
        return ".xlsx"
    }
    if ext := strings.ToLower(path.Ext(u.Path)); ext != "" {
        return ext
    }
    return ".xlsx"
}

// ParseRows decodes raw file content into a row grid. CSV goes through
// encoding/csv with variable column counts; anything else is treated as a
// workbook and only the first sheet is read.
func ParseRows(content []byte, ext string) ([][]string, error) {
    if ext == ".csv" {
        r := csv.NewReader(bytes.NewReader(content))
        r.FieldsPerRecord = -1
        return r.ReadAll()
    }
    f, err := excelize.OpenReader(bytes.NewReader(content))
    if err != nil {
        return nil, err
    }
    defer f.Close()
    sheets := f.GetSheetList()
    if len(sheets) == 0 {
        return [][]string{}, nil
    }
    rs, err := f.Rows(sheets[0])
    if err != nil {
        return nil, err
    }
    rows := [][]string{}
    for rs.Next() {
        r, err := rs.Columns()
        if err != nil {
            return nil, err
        }
        rows = append(rows, r)
    }
    return rows, nil
}

// BuildDataset takes the first row as headers (blank header cells become
// ColN, preserving sheet order) and maps every following row onto them.
// A sheet with headers but no data rows is a valid, empty dataset.
func BuildDataset(rows [][]string) Dataset {
    if len(rows) == 0 {
        return Dataset{}
    }
    headers := make([]string, len(rows[0]))
    for i, v := range rows[0] {
        t := strings.TrimSpace(v)
        if t == "" {
            t = "Col" + strconv.Itoa(i)
        }
        headers[i] = t
    }
    out := make([]map[string]string, 0, len(rows)-1)
    for _, r := range rows[1:] {
        m := make(map[string]string, len(headers))
        for j, h := range headers {
            var v string
            if j < len(r) {
                v = strings.TrimSpace(r[j])
            }
            m[h] = v
        }
        out = append(out, m)
    }
    return Dataset{Columns: headers, Rows: out}
}

// SummarizeDataset renders the compact summary embedded in AI prompts: row
// count, the full ordered column list, and up to sampleSize leading rows.
// Output is deterministic for a given dataset.
func SummarizeDataset(d Dataset, sampleSize int) string {
    if len(d.Columns) == 0 && len(d.Rows) == 0 {
        return NoDataSentinel
    }
    n := sampleSize
    if n > len(d.Rows) {
        n = len(d.Rows)
    }
    sample, _ := json.Marshal(d.Rows[:n])
    var b strings.Builder
    b.WriteString("Total rows: ")
    b.WriteString(strconv.Itoa(len(d.Rows)))
    b.WriteString("\nColumns: ")
    b.WriteString(strings.Join(d.Columns, ", "))
    b.WriteString("\nSample rows: ")
    b.Write(sample)
    return b.String()
}
