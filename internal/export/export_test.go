package export

import (
	"bytes"
	"testing"
	"time"

	"hydro-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWorkbook(t *testing.T) {
	at := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	rec := models.NewUserRecord(1)
	rec.Profile = models.UserProfile{Weight: 70, Height: 175, Age: 30, ActivityMinutes: 60, City: "Moscow"}
	rec.Goals = &models.Goals{WaterML: 3600, CalorieKcal: 2043.75}
	rec.AppendWater(at.Add(time.Hour), 300)
	rec.AppendWater(at, 200)
	rec.AppendFood(at, 133.5)

	data, err := Workbook(rec, time.UTC)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("PK")))

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetWater, SheetFood}, f.GetSheetList())

	rows, err := f.GetRows(SheetWater)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"10.01.2025 09:00", "200", "200"}, rows[1])
	assert.Equal(t, []string{"10.01.2025 10:00", "300", "500"}, rows[2])

	city, err := f.GetCellValue(SheetSummary, "B6")
	require.NoError(t, err)
	assert.Equal(t, "Moscow", city)

	foodRows, err := f.GetRows(SheetFood)
	require.NoError(t, err)
	assert.Len(t, foodRows, 2)
}

func TestFormatSheets(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	require.NoError(t, err)

	require.NoError(t, formatSheets(f, style, "Sheet1"))
	got, err := f.GetCellStyle("Sheet1", "B1")
	require.NoError(t, err)
	assert.Equal(t, style, got)

	width, err := f.GetColWidth("Sheet1", "C")
	require.NoError(t, err)
	assert.Equal(t, 22.0, width)

	// Несуществующий лист
	assert.Error(t, formatSheets(f, style, "Sheet1", "Нет такого"))
}
