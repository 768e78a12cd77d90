// Package chart рисует накопительные графики воды и калорий в PNG.
package chart

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"hydro-bot/internal/tracker"

	gochart "github.com/wcharczuk/go-chart/v2"
)

const (
	width  = 1024
	height = 640
)

// RenderProgress рисует ряды series. Каждая линия начинается с нуля
// в начале окна, поэтому одиночная запись тоже видна.
func RenderProgress(title string, series *tracker.Series, loc *time.Location) ([]byte, error) {
	if series == nil || series.Empty() {
		return nil, fmt.Errorf("no data to render")
	}
	if loc == nil {
		loc = time.UTC
	}

	start := series.Start
	end := start.Add(time.Hour)
	maxValue := 0.0

	lines := []struct {
		name   string
		points []tracker.Point
		style  gochart.Style
	}{
		{"Вода (мл)", series.Water, gochart.Style{StrokeColor: gochart.ColorBlue, StrokeWidth: 2, DotColor: gochart.ColorBlue, DotWidth: 3}},
		{"Калории (ккал)", series.Food, gochart.Style{StrokeColor: gochart.ColorRed, StrokeWidth: 2, DotColor: gochart.ColorRed, DotWidth: 3}},
	}

	var plotted []gochart.Series
	for _, line := range lines {
		if len(line.points) == 0 {
			continue
		}
		xs := make([]time.Time, 0, len(line.points)+1)
		ys := make([]float64, 0, len(line.points)+1)
		xs = append(xs, start)
		ys = append(ys, 0)
		for _, p := range line.points {
			xs = append(xs, p.Time)
			ys = append(ys, p.Value)
			if p.Time.After(end) {
				end = p.Time
			}
			maxValue = math.Max(maxValue, p.Value)
		}
		plotted = append(plotted, gochart.TimeSeries{
			Name:    line.name,
			XValues: xs,
			YValues: ys,
			Style:   line.style,
		})
	}

	layout := "15:04"
	if series.Date == "" {
		layout = "02.01 15:04"
	}
	if maxValue <= 0 {
		maxValue = 1
	}

	graph := gochart.Chart{
		Title:  title,
		Width:  width,
		Height: height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: gochart.XAxis{
			Name: "Время",
			Range: &gochart.ContinuousRange{
				Min: timeToFloat(start),
				Max: timeToFloat(end),
			},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return time.Unix(0, int64(f)).In(loc).Format(layout)
				}
				return ""
			},
		},
		YAxis: gochart.YAxis{
			Name: "мл / ккал",
			Range: &gochart.ContinuousRange{
				Min: 0,
				Max: maxValue * 1.1,
			},
		},
		Series: plotted,
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.Bytes(), nil
}

func timeToFloat(t time.Time) float64 {
	return float64(t.UnixNano())
}
