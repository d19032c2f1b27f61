package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"teklio/internal/domain"
)

// Hard caps on how much of a workbook reaches the language model. Proposal
// workbooks are small; anything past these bounds is boilerplate that only
// burns tokens.
const (
	maxSheets       = 3
	maxRowsPerSheet = 100
)

// ExtractWorkbook flattens a spreadsheet into a pipe-delimited text block:
// one separator line per sheet, then one "Row N: | a | b |" line per
// non-empty row. The output is deterministic for a given workbook.
func ExtractWorkbook(r io.Reader) (string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrWorkbookRead, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) > maxSheets {
		sheets = sheets[:maxSheets]
	}

	var b strings.Builder
	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("%w: sheet %q: %v", domain.ErrWorkbookRead, sheet, err)
		}
		if len(rows) > maxRowsPerSheet {
			rows = rows[:maxRowsPerSheet]
		}

		fmt.Fprintf(&b, "=== Sayfa: %s ===\n", sheet)
		for i, row := range rows {
			if rowEmpty(row) {
				continue
			}
			fmt.Fprintf(&b, "Row %d: | %s |\n", i+1, strings.Join(trimCells(row), " | "))
		}
	}
	return b.String(), nil
}

func rowEmpty(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func trimCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimSpace(c)
	}
	return out
}
