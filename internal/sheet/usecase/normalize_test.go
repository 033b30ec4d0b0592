package usecase

import (
	"errors"
	"reflect"
	"testing"

	"github.com/shandysiswandi/gosheet/internal/sheet/entity"
	"github.com/xuri/excelize/v2"
)

func TestNormalizeRows(t *testing.T) {
	rows := [][]string{
		{"month", "sales", "note"},
		{"1", "100", "ok"},
		{"2", "", "missing sales"},
		{"", "", ""},
		{"3"},
	}

	got, err := NormalizeRows(rows)
	if err != nil {
		t.Fatalf("NormalizeRows: %v", err)
	}

	want := entity.RecordSet{
		{{Column: "month", Value: "1"}, {Column: "sales", Value: "100"}, {Column: "note", Value: "ok"}},
		{{Column: "month", Value: "2"}, {Column: "note", Value: "missing sales"}},
		{{Column: "month", Value: "3"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected records:\n got %+v\nwant %+v", got, want)
	}
}

func TestNormalizeRowsHeaders(t *testing.T) {
	rows := [][]string{
		{" a ", "a", "", "b", "", "a"},
		{"1", "2", "3", "4", "5", "6", "7"},
	}

	got, err := NormalizeRows(rows)
	if err != nil {
		t.Fatalf("NormalizeRows: %v", err)
	}

	want := []string{"a", "a_1", "__EMPTY", "b", "__EMPTY_1", "a_2", "__EMPTY_2"}
	if cols := got[0].Columns(); !reflect.DeepEqual(cols, want) {
		t.Fatalf("unexpected columns: %#v", cols)
	}
}

func TestNormalizeRowsSkipsLeadingBlankRows(t *testing.T) {
	rows := [][]string{
		{},
		{"", " "},
		{"x", "y"},
		{"1", "2"},
	}

	got, err := NormalizeRows(rows)
	if err != nil {
		t.Fatalf("NormalizeRows: %v", err)
	}
	if len(got) != 1 || !reflect.DeepEqual(got[0].Columns(), []string{"x", "y"}) {
		t.Fatalf("unexpected records: %+v", got)
	}
}

func TestNormalizeRowsEmpty(t *testing.T) {
	tests := map[string][][]string{
		"no rows":     nil,
		"header only": {{"a", "b"}},
		"blank rows":  {{"a", "b"}, {"", " "}, {}},
		"only blank":  {{}, {"", ""}, {"a"}},
	}

	for name, rows := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NormalizeRows(rows)
			if !errors.Is(err, entity.ErrEmptyOrInvalidDocument) {
				t.Fatalf("expected ErrEmptyOrInvalidDocument, got %v", err)
			}
		})
	}
}

func TestDecodeDocumentCSV(t *testing.T) {
	data := []byte("a,b\n1,10\n2,20,extra\n")

	rows, err := decodeDocument("data.csv", data)
	if err != nil {
		t.Fatalf("decodeDocument: %v", err)
	}

	want := [][]string{{"a", "b"}, {"1", "10"}, {"2", "20", "extra"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("unexpected rows: %#v", rows)
	}
}

func TestDecodeDocumentTSV(t *testing.T) {
	rows, err := decodeDocument("data.tsv", []byte("a\tb\n1\t2\n"))
	if err != nil {
		t.Fatalf("decodeDocument: %v", err)
	}
	if len(rows) != 2 || rows[1][1] != "2" {
		t.Fatalf("unexpected rows: %#v", rows)
	}
}

func TestDecodeDocumentXLSX(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"month", "sales", "region"},
		{1, 100.5, "north"},
		{2, 80, "south"},
	})

	for _, name := range []string{"report.xlsx", "no-extension"} {
		t.Run(name, func(t *testing.T) {
			rows, err := decodeDocument(name, data)
			if err != nil {
				t.Fatalf("decodeDocument: %v", err)
			}

			want := [][]string{
				{"month", "sales", "region"},
				{"1", "100.5", "north"},
				{"2", "80", "south"},
			}
			if !reflect.DeepEqual(rows, want) {
				t.Fatalf("unexpected rows: %#v", rows)
			}
		})
	}
}

func TestDecodeDocumentXLSXHeaderBelowBlankRows(t *testing.T) {
	data := buildWorkbookAt(t, 3, [][]any{
		{"a", "b"},
		{1, 2},
	})

	rows, err := decodeDocument("offset.xlsx", data)
	if err != nil {
		t.Fatalf("decodeDocument: %v", err)
	}

	got, err := NormalizeRows(rows)
	if err != nil {
		t.Fatalf("NormalizeRows: %v", err)
	}

	want := entity.RecordSet{
		{{Column: "a", Value: "1"}, {Column: "b", Value: "2"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected records: %+v", got)
	}
}

func TestDecodeDocumentXLSXBooleans(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"flag", "n"},
		{true, 1},
		{false, 0},
	})

	rows, err := decodeDocument("flags.xlsx", data)
	if err != nil {
		t.Fatalf("decodeDocument: %v", err)
	}

	want := [][]string{{"flag", "n"}, {"TRUE", "1"}, {"FALSE", "0"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("unexpected rows: %#v", rows)
	}

	records, err := NormalizeRows(rows)
	if err != nil {
		t.Fatalf("NormalizeRows: %v", err)
	}
	report, err := AnalyzeTrends("file-1", records)
	if err != nil {
		t.Fatalf("AnalyzeTrends: %v", err)
	}
	if len(report.Columns) != 1 || report.Columns[0].Column != "n" {
		t.Fatalf("expected only the n column to be analysed, got %+v", report.Columns)
	}
}

func TestDecodeDocumentCSVByteOrderMark(t *testing.T) {
	rows, err := decodeDocument("excel-export.csv", []byte("\ufeffa,b\n1,2\n3,4\n"))
	if err != nil {
		t.Fatalf("decodeDocument: %v", err)
	}

	records, err := NormalizeRows(rows)
	if err != nil {
		t.Fatalf("NormalizeRows: %v", err)
	}
	if cols := BuildColumnCatalog(records); !reflect.DeepEqual(cols, []string{"a", "b"}) {
		t.Fatalf("unexpected columns: %q", cols)
	}

	points, err := ExtractPoints(records, AxisSelection{X: "a", Y: "b"}, PointScanLimit)
	if err != nil {
		t.Fatalf("ExtractPoints: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %+v", points)
	}
}

func TestDecodeDocumentInvalidXLSX(t *testing.T) {
	if _, err := decodeDocument("broken.xlsx", []byte("not a workbook")); err == nil {
		t.Fatal("expected error for invalid workbook")
	}
}

func buildWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	return buildWorkbookAt(t, 1, rows)
}

// buildWorkbookAt writes rows into the first sheet starting at column A of
// firstRow.
func buildWorkbookAt(t *testing.T, firstRow int, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, firstRow+i)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	return buf.Bytes()
}
