package usecase

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shandysiswandi/gosheet/internal/sheet/entity"
	"github.com/xuri/excelize/v2"
)

const emptyHeader = "__EMPTY"

var (
	zipMagic = []byte("PK\x03\x04")
	utf8BOM  = []byte("\xef\xbb\xbf")
)

// decodeDocument reads the first sheet of an uploaded document into raw rows.
// The format is taken from the file name and falls back to content sniffing.
func decodeDocument(name string, data []byte) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return decodeXLSX(data)
	case ".csv", ".tsv":
		return decodeCSV(data, strings.EqualFold(filepath.Ext(name), ".tsv"))
	}

	if bytes.HasPrefix(data, zipMagic) {
		return decodeXLSX(data)
	}
	return decodeCSV(data, false)
}

func decodeXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	if err := relabelBoolCells(f, sheets[0], rows); err != nil {
		return nil, err
	}

	return rows, nil
}

// relabelBoolCells replaces the raw 1/0 of boolean cells with TRUE/FALSE so
// they read the same as booleans in delimited text and never count as numbers.
func relabelBoolCells(f *excelize.File, sheet string, rows [][]string) error {
	for r, row := range rows {
		for c, raw := range row {
			if raw != "1" && raw != "0" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			typ, err := f.GetCellType(sheet, cell)
			if err != nil {
				return fmt.Errorf("cell type %s: %w", cell, err)
			}
			if typ != excelize.CellTypeBool {
				continue
			}
			row[c] = "FALSE"
			if raw == "1" {
				row[c] = "TRUE"
			}
		}
	}
	return nil
}

func decodeCSV(data []byte, tab bool) ([][]string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	if tab {
		reader.Comma = '\t'
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, record)
	}

	return rows, nil
}

// NormalizeRows turns raw sheet rows into records keyed by the first row that
// has a populated cell.
//
// Empty cells are left out of the record, rows without any populated cell are
// skipped, and header names are made unique. A sheet without data rows yields
// ErrEmptyOrInvalidDocument.
func NormalizeRows(rows [][]string) (entity.RecordSet, error) {
	for len(rows) > 0 && blankRow(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) < 2 {
		return nil, entity.ErrEmptyOrInvalidDocument
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	headers := normalizeHeaders(rows[0], width)
	records := make(entity.RecordSet, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(entity.Record, 0, len(row))
		for i, raw := range row {
			if strings.TrimSpace(raw) == "" {
				continue
			}
			rec = append(rec, entity.Cell{Column: headers[i], Value: raw})
		}
		if len(rec) == 0 {
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, entity.ErrEmptyOrInvalidDocument
	}

	return records, nil
}

// normalizeHeaders trims header cells, names blank ones __EMPTY and suffixes
// duplicates with _1, _2, ... so every column name is unique.
func normalizeHeaders(row []string, width int) []string {
	headers := make([]string, width)
	used := make(map[string]bool, width)
	counts := make(map[string]int, width)
	for i := range headers {
		base := ""
		if i < len(row) {
			base = strings.TrimSpace(row[i])
		}
		if base == "" {
			base = emptyHeader
		}

		name := base
		for used[name] {
			counts[base]++
			name = base + "_" + strconv.Itoa(counts[base])
		}
		used[name] = true
		headers[i] = name
	}
	return headers
}

func blankRow(row []string) bool {
	for _, raw := range row {
		if strings.TrimSpace(raw) != "" {
			return false
		}
	}
	return true
}
