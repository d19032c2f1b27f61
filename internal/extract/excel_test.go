package extract_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"teklio/internal/domain"
	"teklio/internal/extract"
)

func workbookBytes(t *testing.T, build func(f *excelize.File)) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	build(f)
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestExtractWorkbook_PipeDelimitedRows(t *testing.T) {
	data := workbookBytes(t, func(f *excelize.File) {
		require.NoError(t, f.SetCellValue("Sheet1", "A1", "Firma"))
		require.NoError(t, f.SetCellValue("Sheet1", "B1", "Akme Elektrik"))
		// Row 2 left empty on purpose.
		require.NoError(t, f.SetCellValue("Sheet1", "A3", "LED Panel"))
		require.NoError(t, f.SetCellValue("Sheet1", "B3", 5))
	})

	out, err := extract.ExtractWorkbook(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Contains(t, out, "=== Sayfa: Sheet1 ===")
	assert.Contains(t, out, "Row 1: | Firma | Akme Elektrik |")
	assert.Contains(t, out, "Row 3: | LED Panel | 5 |")
	assert.NotContains(t, out, "Row 2:")
}

func TestExtractWorkbook_SheetCap(t *testing.T) {
	data := workbookBytes(t, func(f *excelize.File) {
		for i := 2; i <= 5; i++ {
			_, err := f.NewSheet(fmt.Sprintf("Sayfa%d", i))
			require.NoError(t, err)
		}
		require.NoError(t, f.SetCellValue("Sheet1", "A1", "x"))
	})

	out, err := extract.ExtractWorkbook(bytes.NewReader(data))
	require.NoError(t, err)

	// Only the first 3 sheets survive.
	assert.Equal(t, 3, strings.Count(out, "=== Sayfa:"))
	assert.NotContains(t, out, "Sayfa4")
	assert.NotContains(t, out, "Sayfa5")
}

func TestExtractWorkbook_RowCap(t *testing.T) {
	data := workbookBytes(t, func(f *excelize.File) {
		for i := 1; i <= 120; i++ {
			require.NoError(t, f.SetCellValue("Sheet1", fmt.Sprintf("A%d", i), fmt.Sprintf("satır %d", i)))
		}
	})

	out, err := extract.ExtractWorkbook(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Contains(t, out, "Row 100:")
	assert.NotContains(t, out, "Row 101:")
}

func TestExtractWorkbook_Deterministic(t *testing.T) {
	data := workbookBytes(t, func(f *excelize.File) {
		require.NoError(t, f.SetCellValue("Sheet1", "A1", "a"))
		require.NoError(t, f.SetCellValue("Sheet1", "B1", "b"))
	})

	a, err := extract.ExtractWorkbook(bytes.NewReader(data))
	require.NoError(t, err)
	b, err := extract.ExtractWorkbook(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestExtractWorkbook_MalformedInput(t *testing.T) {
	_, err := extract.ExtractWorkbook(bytes.NewReader([]byte("not a workbook")))
	assert.ErrorIs(t, err, domain.ErrWorkbookRead)
}
