package workouts

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Workout - коэффициенты одного вида тренировки
type Workout struct {
	Name               string  `yaml:"name"`
	Emoji              string  `yaml:"emoji"`
	CaloriesPerMinute  float64 `yaml:"calories_per_minute"`
	WaterBonusPer30Min int     `yaml:"water_bonus_per_30min"`
}

// Table хранит виды тренировок в порядке объявления.
type Table struct {
	items []Workout
	index map[string]int
}

// Default - встроенная таблица тренировок
func Default() *Table {
	t, _ := NewTable([]Workout{
		{Name: "бег", Emoji: "🏃‍♂️", CaloriesPerMinute: 10, WaterBonusPer30Min: 200},
		{Name: "ходьба", Emoji: "🚶‍♂️", CaloriesPerMinute: 4, WaterBonusPer30Min: 100},
		{Name: "велосипед", Emoji: "🚴‍♂️", CaloriesPerMinute: 8, WaterBonusPer30Min: 200},
		{Name: "плавание", Emoji: "🏊‍♂️", CaloriesPerMinute: 9, WaterBonusPer30Min: 200},
		{Name: "йога", Emoji: "🧘‍♂️", CaloriesPerMinute: 3, WaterBonusPer30Min: 100},
	})
	return t
}

func NewTable(items []Workout) (*Table, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("workout table is empty")
	}
	t := &Table{index: make(map[string]int, len(items))}
	for _, w := range items {
		w.Name = strings.ToLower(strings.TrimSpace(w.Name))
		if w.Name == "" {
			return nil, fmt.Errorf("workout without name")
		}
		if w.CaloriesPerMinute < 0 || w.WaterBonusPer30Min < 0 {
			return nil, fmt.Errorf("workout %q has negative coefficients", w.Name)
		}
		if _, dup := t.index[w.Name]; dup {
			return nil, fmt.Errorf("duplicate workout %q", w.Name)
		}
		t.index[w.Name] = len(t.items)
		t.items = append(t.items, w)
	}
	return t, nil
}

// Load читает таблицу из YAML файла вида `workouts: [...]`.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workouts file: %w", err)
	}

	var file struct {
		Workouts []Workout `yaml:"workouts"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse workouts file: %w", err)
	}

	return NewTable(file.Workouts)
}

// Lookup ищет тренировку без учёта регистра.
func (t *Table) Lookup(name string) (Workout, bool) {
	i, ok := t.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Workout{}, false
	}
	return t.items[i], true
}

func (t *Table) Names() []string {
	names := make([]string, len(t.items))
	for i, w := range t.items {
		names[i] = w.Name
	}
	return names
}
