package workouts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable(t *testing.T) {
	table := Default()
	assert.Equal(t, []string{"бег", "ходьба", "велосипед", "плавание", "йога"}, table.Names())

	run, ok := table.Lookup("БЕГ")
	require.True(t, ok)
	assert.Equal(t, 10.0, run.CaloriesPerMinute)
	assert.Equal(t, 200, run.WaterBonusPer30Min)

	_, ok = table.Lookup("кёрлинг")
	assert.False(t, ok)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workouts.yaml")
	content := `workouts:
  - name: Rowing
    emoji: "🚣"
    calories_per_minute: 7.5
    water_bonus_per_30min: 150
  - name: boxing
    calories_per_minute: 11
    water_bonus_per_30min: 250
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"rowing", "boxing"}, table.Names())

	w, ok := table.Lookup("ROWING")
	require.True(t, ok)
	assert.Equal(t, 7.5, w.CaloriesPerMinute)
	assert.Equal(t, "🚣", w.Emoji)
}

func TestNewTableRejectsBadInput(t *testing.T) {
	_, err := NewTable(nil)
	assert.Error(t, err)

	_, err = NewTable([]Workout{{Name: "run"}, {Name: "RUN"}})
	assert.Error(t, err)

	_, err = NewTable([]Workout{{Name: "run", CaloriesPerMinute: -1}})
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
