package xlsx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Atlashz/hextract/internal/hex"
)

func writeWorkbook(t *testing.T, build func(f *excelize.File)) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	build(f)
	path := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadFileSingleSheet(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		sheet := "Sheet1"
		f.SetCellValue(sheet, "A1", "HX Tag")
		f.SetCellValue(sheet, "B1", "Duty (kW)")
		f.SetCellValue(sheet, "C1", "Area m2")
		f.SetCellValue(sheet, "A2", "E-101")
		f.SetCellValue(sheet, "B2", 500)
		f.SetCellValue(sheet, "C2", 120.5)
		f.SetCellValue(sheet, "A3", "E-102")
		f.SetCellValue(sheet, "B3", "approx 1.8e6 kJ/h")
	})

	tables, err := ReadFile(path, Options{})
	require.NoError(t, err)
	require.Len(t, tables, 1)

	tbl := tables[0]
	assert.Equal(t, "Sheet1", tbl.Name)
	assert.Equal(t, []string{"HX Tag", "Duty (kW)", "Area m2"}, tbl.HeaderTexts())
	require.Len(t, tbl.Rows, 2)

	assert.Equal(t, hex.Text("E-101"), tbl.Cell(0, 0))
	assert.Equal(t, hex.Number(500), tbl.Cell(0, 1))
	assert.Equal(t, hex.Number(120.5), tbl.Cell(0, 2))

	// Annotated values stay text; trailing gap is padded to header width.
	assert.Equal(t, hex.Text("approx 1.8e6 kJ/h"), tbl.Cell(1, 1))
	assert.Equal(t, hex.Missing(), tbl.Cell(1, 2))
}

func TestReadFileHeaderBelowBlankRows(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		sheet := "Sheet1"
		// Rows 1-2 left blank; header starts at row 3.
		f.SetCellValue(sheet, "A3", "Name")
		f.SetCellValue(sheet, "B3", "Duty")
		f.SetCellValue(sheet, "A4", "E-201")
		f.SetCellValue(sheet, "B4", 42)
	})

	tables, err := ReadFile(path, Options{})
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, []string{"Name", "Duty"}, tables[0].HeaderTexts())
	require.Len(t, tables[0].Rows, 1)
	assert.Equal(t, hex.Text("E-201"), tables[0].Cell(0, 0))
}

func TestReadFileSheetFilterAndOrder(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "Summary")
		for _, sheet := range []string{"Exchangers", "Streams"} {
			_, err := f.NewSheet(sheet)
			require.NoError(t, err)
			f.SetCellValue(sheet, "A1", "Name")
			f.SetCellValue(sheet, "A2", sheet+"-row")
		}
	})

	tables, err := ReadFile(path, Options{Sheets: []string{"exchangers", " Streams "}})
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "Exchangers", tables[0].Name)
	assert.Equal(t, "Streams", tables[1].Name)
}

func TestReadFileMaxRows(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		sheet := "Sheet1"
		f.SetCellValue(sheet, "A1", "Name")
		rows := [][]interface{}{{"E-1"}, {"E-2"}, {"E-3"}}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			require.NoError(t, err)
			f.SetCellValue(sheet, cell, row[0])
		}
	})

	tables, err := ReadFile(path, Options{MaxRows: 2})
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Len(t, tables[0].Rows, 2)
}

func TestReadFileSkipsEmptySheets(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "Name")
		f.SetCellValue("Sheet1", "A2", "E-1")
		_, err := f.NewSheet("Empty")
		require.NoError(t, err)
	})

	tables, err := ReadFile(path, Options{})
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "Sheet1", tables[0].Name)
}

func TestRead(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "Name")
		f.SetCellValue("Sheet1", "A2", "E-1")
	})
	fh, err := os.Open(path)
	require.NoError(t, err)
	defer fh.Close()

	tables, err := Read(fh, Options{})
	require.NoError(t, err)
	require.Len(t, tables, 1)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.xlsx"), Options{})
	assert.Error(t, err)
}
