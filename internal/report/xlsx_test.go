package report_test

import (
	"bytes"
	"testing"
	"time"

	"choconati/internal/core"
	"choconati/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteValuation_Seed(t *testing.T) {
	ings := core.SeedIngredients()
	var buf bytes.Buffer
	err := report.WriteValuation(&buf, report.Valuation{
		Ingredients: ings,
		Recipes:     core.SeedRecipes(),
		TopN:        3,
		GeneratedAt: time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{report.SheetSummary, report.SheetIngredients, report.SheetRecipes}, f.GetSheetList())

	generated, err := f.GetCellValue(report.SheetSummary, "B1")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-14T12:00:00Z", generated)

	rows, err := f.GetRows(report.SheetIngredients)
	require.NoError(t, err)
	require.Len(t, rows, len(ings)+1)
	assert.Equal(t, "stock_value", rows[0][8])
	assert.Equal(t, "6", rows[6][0])
	assert.Equal(t, "Nutella", rows[6][1])
	assert.Equal(t, "90", rows[6][8])

	top, err := f.GetCellValue(report.SheetSummary, "C7")
	require.NoError(t, err)
	assert.Equal(t, "Nutella", top)

	recipes, err := f.GetRows(report.SheetRecipes)
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, "Brigadeiro Gourmet", recipes[1][1])
	assert.Equal(t, "53.47", recipes[1][6])
	assert.Equal(t, "0", recipes[1][8])
}

func TestWriteValuation_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteValuation(&buf, report.Valuation{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(report.SheetIngredients)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")

	total, err := f.GetCellValue(report.SheetSummary, "B2")
	require.NoError(t, err)
	assert.Equal(t, "0", total)
}
