package files

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/farxc/painel-seguros/internal/logger"
	"github.com/farxc/painel-seguros/internal/painel/types"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNoHeader marks a sheet without any non-blank row.
var ErrNoHeader = errors.New("sheet has no header row")

// ErrNotCSV marks a body that is an HTML page rather than CSV.
var ErrNotCSV = errors.New("content is an HTML page, not CSV")

// NamedFrame is one decoded tab.
type NamedFrame struct {
	Name  string
	Frame dataframe.DataFrame
}

// DecodeCSV parses a CSV export. A UTF-8 BOM is dropped if present; input
// that is not valid UTF-8 is read as Windows-1252.
func DecodeCSV(data []byte) (dataframe.DataFrame, error) {
	if looksLikeHTML(data) {
		return dataframe.DataFrame{}, ErrNotCSV
	}

	var decoder transform.Transformer = unicode.BOMOverride(unicode.UTF8.NewDecoder())
	if !utf8.Valid(data) {
		decoder = charmap.Windows1252.NewDecoder()
	}
	decoded := transform.NewReader(bytes.NewReader(data), decoder)

	reader := csv.NewReader(decoded)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("malformed CSV: %w", err)
	}

	return BuildFrame(records)
}

// DecodeWorkbook parses an xlsx export, falling back to legacy xls. Sheets
// without a header row are skipped; the remaining sheets keep workbook order.
func DecodeWorkbook(data []byte, appLogger *logger.Logger) ([]NamedFrame, error) {
	const component = "WorkbookDecoder"

	sheets, err := readXLSX(data)
	if err != nil {
		var errXLS error
		sheets, errXLS = readXLS(data)
		if errXLS != nil {
			return nil, fmt.Errorf("unsupported workbook format: %v", err)
		}
		appLogger.Debug(component, "Workbook decoded as legacy xls: sheets=%d", len(sheets))
	}

	frames := make([]NamedFrame, 0, len(sheets))
	for _, sheet := range sheets {
		df, err := BuildFrame(sheet.rows)
		if errors.Is(err, ErrNoHeader) {
			appLogger.Warn(component, "Skipping sheet without header: sheet=%s", sheet.name)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet.name, err)
		}
		frames = append(frames, NamedFrame{Name: sheet.name, Frame: df})
	}

	appLogger.Info(component, "Workbook decoded: sheets=%d usable=%d", len(sheets), len(frames))
	return frames, nil
}

func looksLikeHTML(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	head = bytes.TrimPrefix(head, []byte("\xef\xbb\xbf"))
	head = bytes.ToLower(bytes.TrimSpace(head))
	return bytes.HasPrefix(head, []byte("<!doctype html")) || bytes.HasPrefix(head, []byte("<html"))
}

type rawSheet struct {
	name string
	rows [][]string
}

func readXLSX(data []byte) ([]rawSheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var sheets []rawSheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}
		sheets = append(sheets, rawSheet{name: name, rows: rows})
	}
	return sheets, nil
}

func readXLS(data []byte) ([]rawSheet, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var sheets []rawSheet
	for _, sheet := range workbook.GetSheets() {
		var rows [][]string
		for _, row := range sheet.GetRows() {
			var values []string
			for _, cell := range row.GetCols() {
				values = append(values, cell.GetString())
			}
			rows = append(rows, values)
		}
		sheets = append(sheets, rawSheet{name: sheet.GetName(), rows: rows})
	}
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xls workbook has no sheets")
	}
	return sheets, nil
}

// BuildFrame turns raw rows into a string-typed dataframe. The first
// non-blank row is the header; its names are normalised (types.NormalizeColumn)
// and made unique. Blank rows are dropped, short rows padded and long rows
// truncated to the header width. Columns with a blank header and no data are
// dropped; blank headers over data are named "coluna N".
func BuildFrame(records [][]string) (dataframe.DataFrame, error) {
	start := 0
	for start < len(records) && isBlank(records[start]) {
		start++
	}
	if start == len(records) {
		return dataframe.DataFrame{}, ErrNoHeader
	}

	rawHeader := records[start]
	var body [][]string
	for _, row := range records[start+1:] {
		if !isBlank(row) {
			body = append(body, row)
		}
	}

	var keep []int
	var header []string
	seen := make(map[string]int)
	for idx, name := range rawHeader {
		name = types.NormalizeColumn(name)
		if name == "" {
			if columnIsBlank(body, idx) {
				continue
			}
			name = fmt.Sprintf("coluna %d", idx+1)
		}
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s (%d)", name, n)
		}
		keep = append(keep, idx)
		header = append(header, name)
	}
	if len(header) == 0 {
		return dataframe.DataFrame{}, ErrNoHeader
	}

	if len(body) == 0 {
		columns := make([]series.Series, len(header))
		for i, name := range header {
			columns[i] = series.New([]string{}, series.String, name)
		}
		df := dataframe.New(columns...)
		return df, df.Error()
	}

	out := make([][]string, 0, len(body)+1)
	out = append(out, header)
	for _, row := range body {
		values := make([]string, len(keep))
		for i, idx := range keep {
			if idx < len(row) {
				values[i] = row[idx]
			}
		}
		out = append(out, values)
	}

	df := dataframe.LoadRecords(out,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Error() != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to build dataframe: %w", df.Error())
	}
	return df, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func columnIsBlank(rows [][]string, idx int) bool {
	for _, row := range rows {
		if idx < len(row) && strings.TrimSpace(row[idx]) != "" {
			return false
		}
	}
	return true
}
