package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xuri/excelize/v2"
)

func testEntries() []ScheduleEntry {
	return []ScheduleEntry{
		{
			Fio:         "Галкин Владимир Алексеевич",
			PairNumber:  1,
			DayOfWeek:   "понедельник",
			Group:       "601-31",
			Audience:    "А501",
			Department:  "Кафедра математики",
			Week:        "обе недели",
			SubjectName: "Математический анализ",
		},
		{
			Fio:          "Иванов И.И.",
			PairNumber:   2,
			DayOfWeek:    "вторник",
			Group:        "607-21",
			Audience:     "ЭОиДОТ",
			Week:         "числитель",
			Subgroup:     "1",
			NumSubgroups: 2,
			IsExternal:   true,
			IsRemote:     true,
			SubjectName:  "Иностранный язык",
		},
	}
}

func TestSaveEntriesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timetable_processed.csv")
	require.NoError(t, SaveEntriesCSV(testEntries(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))

	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})))
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, entryCSVHeader, rows[0])
	assert.Equal(t, "Галкин Владимир Алексеевич", rows[1][0])
	assert.Equal(t, "False", rows[1][9])
	assert.Equal(t, "True", rows[2][9])
	assert.Equal(t, "True", rows[2][10])
	assert.Equal(t, "Иностранный язык", rows[2][11])
}

func TestSaveEntriesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timetable_processed.json")
	require.NoError(t, SaveEntriesJSON(testEntries(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded []ScheduleEntry
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, testEntries(), loaded)
}

func TestSaveEntriesExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timetable_processed.xlsx")
	require.NoError(t, SaveEntriesExcel(testEntries(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	const sheet = "Расписание"
	assert.Equal(t, []string{sheet}, f.GetSheetList())

	header, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "ФИО", header)

	fio, err := f.GetCellValue(sheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Галкин Владимир Алексеевич", fio)

	external, err := f.GetCellValue(sheet, "J3")
	require.NoError(t, err)
	assert.Equal(t, "Да", external)

	remote, err := f.GetCellValue(sheet, "K2")
	require.NoError(t, err)
	assert.Equal(t, "Нет", remote)
}

func TestSaveMissingTeachers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing_teachers.csv")
	require.NoError(t, SaveMissingTeachers([]string{"Сидоров С.С."}, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
	assert.Contains(t, string(data), "short_fio")
	assert.Contains(t, string(data), "Сидоров С.С.")
}

func TestSaveMissingTeachersEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing_teachers.csv")
	require.NoError(t, SaveMissingTeachers(nil, path))
	assert.False(t, fileExists(path))
}
