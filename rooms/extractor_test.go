package rooms

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitRooms(t *testing.T) {
	tests := []struct {
		name     string
		cell     string
		expected []string
	}{
		{name: "одна аудитория", cell: "А501", expected: []string{"А501"}},
		{name: "несколько через запятую", cell: "А501, У708", expected: []string{"А501", "У708"}},
		{name: "разделитель слэш", cell: "К506/Г201", expected: []string{"К506", "Г201"}},
		{name: "дистанционное обучение", cell: "ЭОиДОТ", expected: []string{"ЭОиДОТ"}},
		{name: "мусор отбрасывается", cell: "Иванов И.И., А501", expected: []string{"А501"}},
		{name: "пустая ячейка", cell: "", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitRooms(tt.cell))
		})
	}
}

func TestFindAuditoriumColumns(t *testing.T) {
	headers := []string{"ФИО", "Дисциплина", "Аудитория/место", "Группа"}
	assert.Equal(t, []int{2}, FindAuditoriumColumns(headers))

	assert.Nil(t, FindAuditoriumColumns([]string{"ФИО", "Дисциплина"}))
}

func TestExtractFromRows(t *testing.T) {
	records := [][]string{
		{"ФИО", "Дисциплина", "Аудитория"},
		{"Иванов И.И.", "Физика", "А501"},
		{"Петров П.П.", "Химия", "А501, У708"},
		{"Сидоров С.С.", "Физкультура", "бассейн"},
	}

	rooms := ExtractFromRows(records)
	assert.Equal(t, []string{"А501", "У708", "бассейн"}, rooms)
}

func TestExtractFromRowsBestColumnFallback(t *testing.T) {
	// Заголовки без ключевых слов: выбирается колонка,
	// где больше всего значений похоже на аудитории
	records := [][]string{
		{"Колонка1", "Колонка2"},
		{"Физика", "А501"},
		{"Химия", "У708"},
		{"Биология", "К506"},
	}

	rooms := ExtractFromRows(records)
	assert.Equal(t, []string{"А501", "К506", "У708"}, rooms)
}

func TestSaveAndLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aud.json")
	require.NoError(t, SaveRegistry(path, []string{"А501", "У708"}))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())
	assert.True(t, reg.Contains("а501"))
}

func TestLoadRegistryMissingFile(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "нет-такого.json"))
	assert.Error(t, err)
}
