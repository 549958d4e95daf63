package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"
)

// sniffLines is how many leading lines DetectCSVDelimiter inspects.
const sniffLines = 20

var delimiterNames = map[rune]string{',': "comma", ';': "semicolon", '\t': "tab", '|': "pipe"}

// DetectCSVDelimiter guesses the delimiter from the first lines of data.
// A candidate must split the first line into at least two fields; among
// those the one giving the most fields on consistently sized lines wins,
// comma on ties.
func DetectCSVDelimiter(data []byte) rune {
	var sample bytes.Buffer
	sc := bufio.NewScanner(bytes.NewReader(data))
	for n := 0; n < sniffLines && sc.Scan(); {
		if len(bytes.TrimSpace(sc.Bytes())) == 0 {
			continue
		}
		sample.Write(sc.Bytes())
		sample.WriteByte('\n')
		n++
	}

	best, bestScore := ',', 0
	for _, delim := range []rune{',', ';', '\t', '|'} {
		records, err := readCSV(bytes.NewReader(sample.Bytes()), delim)
		if err != nil || len(records) == 0 || len(records[0]) < 2 {
			continue
		}
		width := len(records[0])
		consistent := 0
		for _, r := range records {
			if len(r) == width {
				consistent++
			}
		}
		if score := consistent*10 + width; score > bestScore {
			best, bestScore = delim, score
		}
	}
	return best
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

// ImportCSV imports sprites from a delimited text file, detecting the
// delimiter first.
func ImportCSV(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ImportResult{Errors: []string{"File is empty"}}
	}

	var result ImportResult
	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimiterNames[delimiter]))
	}
	result.merge(ImportCSVFromReader(bytes.NewReader(data), delimiter))
	return result
}

// ImportCSVFromReader imports sprites from CSV data with a known delimiter.
func ImportCSVFromReader(r io.Reader, delimiter rune) ImportResult {
	records, err := readCSV(r, delimiter)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	if len(records) == 0 {
		return ImportResult{Errors: []string{"File is empty"}}
	}
	return importRows(records, "Line")
}

// ImportExcel imports sprites from every non-empty sheet of an .xlsx file.
// Each sheet carries its own header. With more than one sheet, messages
// name the sheet as well as the row.
func ImportExcel(path string) ImportResult {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open Excel file: %v", err)}}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ImportResult{Errors: []string{"Excel file has no sheets"}}
	}

	var result ImportResult
	imported := 0
	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Cannot read sheet %q: %v", sheet, err))
			continue
		}
		if len(rows) == 0 {
			continue
		}
		prefix := "Row"
		if len(sheets) > 1 {
			prefix = sheet + " row"
		}
		result.merge(importRows(rows, prefix))
		imported++
	}
	if imported == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
	}
	return result
}
