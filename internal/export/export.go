// Package export выгружает журналы пользователя в Excel.
package export

import (
	"fmt"
	"sort"
	"time"

	"hydro-bot/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary = "Итоги"
	SheetWater   = "Вода"
	SheetFood    = "Еда"

	timeLayout = "02.01.2006 15:04"
)

// Workbook строит xlsx с итогами, журналом воды и журналом еды.
func Workbook(rec *models.UserRecord, loc *time.Location) ([]byte, error) {
	if loc == nil {
		loc = time.UTC
	}

	f := excelize.NewFile()
	defer f.Close()

	// Лист по умолчанию переименовываем в итоговый
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("error renaming sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetWater); err != nil {
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetFood); err != nil {
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("error creating style: %w", err)
	}

	summary := [][]interface{}{
		{"Показатель", "Значение"},
		{"Вес, кг", rec.Profile.Weight},
		{"Рост, см", rec.Profile.Height},
		{"Возраст", rec.Profile.Age},
		{"Активность, мин", rec.Profile.ActivityMinutes},
		{"Город", rec.Profile.City},
	}
	if rec.Goals != nil {
		summary = append(summary,
			[]interface{}{"Норма воды, мл", rec.Goals.WaterML},
			[]interface{}{"Норма калорий, ккал", rec.Goals.CalorieKcal},
		)
	}
	summary = append(summary,
		[]interface{}{"Выпито, мл", rec.LoggedWater},
		[]interface{}{"Потреблено, ккал", rec.LoggedCalories},
		[]interface{}{"Сожжено, ккал", rec.BurnedCalories},
	)
	if err := writeRows(f, SheetSummary, summary); err != nil {
		return nil, err
	}

	water := append([]models.WaterLogEntry(nil), rec.WaterLogs...)
	sort.SliceStable(water, func(i, j int) bool { return water[i].Timestamp.Before(water[j].Timestamp) })
	waterRows := [][]interface{}{{"Время", "Количество, мл", "Накопительно, мл"}}
	total := 0
	for _, e := range water {
		total += e.AmountML
		waterRows = append(waterRows, []interface{}{e.Timestamp.In(loc).Format(timeLayout), e.AmountML, total})
	}
	if err := writeRows(f, SheetWater, waterRows); err != nil {
		return nil, err
	}

	food := append([]models.FoodLogEntry(nil), rec.FoodLogs...)
	sort.SliceStable(food, func(i, j int) bool { return food[i].Timestamp.Before(food[j].Timestamp) })
	foodRows := [][]interface{}{{"Время", "Калории, ккал", "Накопительно, ккал"}}
	var kcal float64
	for _, e := range food {
		kcal += e.Calories
		foodRows = append(foodRows, []interface{}{e.Timestamp.In(loc).Format(timeLayout), e.Calories, kcal})
	}
	if err := writeRows(f, SheetFood, foodRows); err != nil {
		return nil, err
	}

	if err := formatSheets(f, headerStyle, SheetSummary, SheetWater, SheetFood); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// formatSheets выделяет заголовок и расширяет колонки A-C.
func formatSheets(f *excelize.File, headerStyle int, sheets ...string) error {
	for _, sheet := range sheets {
		if err := f.SetCellStyle(sheet, "A1", "C1", headerStyle); err != nil {
			return fmt.Errorf("error styling %s header: %w", sheet, err)
		}
		if err := f.SetColWidth(sheet, "A", "C", 22); err != nil {
			return fmt.Errorf("error sizing %s columns: %w", sheet, err)
		}
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("error writing %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
