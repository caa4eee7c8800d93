package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pdfSampleContent = `Расписание занятий
Институт Политехнический
2 Курс
Специальность 09.03.01 Информатика и вычислительная техника Группа
607-21, 607-22 Группа
ТО 01.09.2025-31.12.2025
ПН 1 Математический анализ А501 Иванов И.И.
2 Физика А502
ВТ 1-2 Программирование У708
`

func TestParseScheduleMetadata(t *testing.T) {
	meta := parseScheduleMetadata(pdfSampleContent)

	assert.Equal(t, "Политехнический", meta.Institute)
	assert.Equal(t, "2", meta.Course)
	assert.Equal(t, "09.03.01 Информатика и вычислительная техника", meta.Specialty)
	assert.Equal(t, []string{"607-21", "607-22"}, meta.Groups)
	assert.Equal(t, "01.09.2025-31.12.2025", meta.Period)
}

func TestWalkScheduleLines(t *testing.T) {
	meta := parseScheduleMetadata(pdfSampleContent)
	entries := walkScheduleLines(pdfSampleContent, meta)

	// 1 пара ПН и 2 пара ПН на две группы, пары 1-2 ВТ на две группы
	require.Len(t, entries, 8)

	assert.Equal(t, "понедельник", entries[0].DayOfWeek)
	assert.Equal(t, 1, entries[0].PairNumber)
	assert.Equal(t, "607-21", entries[0].Group)
	assert.Equal(t, "Математический анализ А501 Иванов И.И.", entries[0].SubjectName)
	assert.Equal(t, "Политехнический", entries[0].Institute)
	assert.Equal(t, "2", entries[0].Course)
	assert.Equal(t, "01.09.2025-31.12.2025", entries[0].PeriodDates)

	assert.Equal(t, "607-22", entries[1].Group)

	assert.Equal(t, 2, entries[2].PairNumber)
	assert.Equal(t, "Физика А502", entries[2].SubjectName)

	assert.Equal(t, "вторник", entries[4].DayOfWeek)
	assert.Equal(t, 1, entries[4].PairNumber)
	assert.Equal(t, "Программирование У708", entries[4].SubjectName)
	assert.Equal(t, 2, entries[6].PairNumber)
}

func TestWalkScheduleLinesCellAccumulation(t *testing.T) {
	content := `123-45 Группа
СР 3 Теория вероятностей
и математическая статистика А540
`
	meta := parseScheduleMetadata(content)
	entries := walkScheduleLines(content, meta)

	require.Len(t, entries, 1)
	assert.Equal(t, "среда", entries[0].DayOfWeek)
	assert.Equal(t, 3, entries[0].PairNumber)
	assert.Equal(t, "Теория вероятностей и математическая статистика А540", entries[0].SubjectName)
	assert.Equal(t, "123-45", entries[0].Group)
}

func TestWalkScheduleLinesWithoutGroups(t *testing.T) {
	content := "ПТ 5 Физическая культура бассейн\n"
	entries := walkScheduleLines(content, scheduleMetadata{})

	require.Len(t, entries, 1)
	assert.Equal(t, "пятница", entries[0].DayOfWeek)
	assert.Equal(t, "", entries[0].Group)
}

func TestParsePairNumbers(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected []int
	}{
		{name: "одна пара", token: "1", expected: []int{1}},
		{name: "диапазон", token: "1-2", expected: []int{1, 2}},
		{name: "широкий диапазон", token: "3-5", expected: []int{3, 4, 5}},
		{name: "обратный диапазон", token: "3-2", expected: []int{3}},
		{name: "не номер пары", token: "601-31", expected: nil},
		{name: "текст", token: "Физика", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parsePairNumbers(tt.token))
		})
	}
}
