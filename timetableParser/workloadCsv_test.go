package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/text/encoding/charmap"

	"github.com/tedmon1998/TimetableParser/discipline"
)

// workloadRow строка занятости из 17 столбцов: ФИО, кафедра, пара,
// шесть пар столбцов день/аудитория и пометка внешнего совместителя.
func workloadRow(fio, department, pair string, dayCells map[int]string, external string) []string {
	row := make([]string, 17)
	row[0] = fio
	row[1] = department
	row[2] = pair
	for col, value := range dayCells {
		row[col] = value
	}
	row[16] = external
	return row
}

func writeWorkloadCSV(t *testing.T, rows [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "занятость.csv")

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	writer := csv.NewWriter(f)
	header := make([]string, 17)
	header[0] = "ФИО"
	require.NoError(t, writer.Write(header))
	require.NoError(t, writer.WriteAll(rows))
	return path
}

func TestParseWorkloadCSV(t *testing.T) {
	path := writeWorkloadCSV(t, [][]string{
		workloadRow("Иванов И.И.", "Кафедра физики", "1",
			map[int]string{3: "601-31", 4: "А501"}, ""),
		workloadRow("Иванов И.И.", "Кафедра физики", "2",
			map[int]string{5: "605-41/", 6: "А502"}, ""),
		workloadRow("вакансия", "Кафедра физики", "1",
			map[int]string{3: "601-31", 4: "А501"}, ""),
	})

	entries, missing, err := ParseWorkloadCSV(path, nil)
	require.NoError(t, err)
	assert.Empty(t, missing)
	require.Len(t, entries, 2)

	assert.Equal(t, "Иванов И.И.", entries[0].Fio)
	assert.Equal(t, "Кафедра физики", entries[0].Department)
	assert.Equal(t, 1, entries[0].PairNumber)
	assert.Equal(t, "понедельник", entries[0].DayOfWeek)
	assert.Equal(t, "601-31", entries[0].Group)
	assert.Equal(t, "А501", entries[0].Audience)
	assert.Equal(t, discipline.WeekBoth, entries[0].Week)
	assert.False(t, entries[0].IsExternal)
	assert.False(t, entries[0].IsRemote)

	assert.Equal(t, "вторник", entries[1].DayOfWeek)
	assert.Equal(t, "605-41", entries[1].Group)
	assert.Equal(t, discipline.WeekNumerator, entries[1].Week)
}

func TestParseWorkloadCSVExternalMark(t *testing.T) {
	// Пометка стоит только в одной строке, но относится ко всем
	// строкам преподавателя
	path := writeWorkloadCSV(t, [][]string{
		workloadRow("Петров П.П.", "Кафедра химии", "1",
			map[int]string{3: "602-11", 4: "А540"}, "внешний совместитель"),
		workloadRow("Петров П.П.", "Кафедра химии", "2",
			map[int]string{5: "602-11", 6: "А540"}, ""),
		workloadRow("Иванов И.И.", "Кафедра химии", "1",
			map[int]string{3: "602-12", 4: "А539"}, ""),
	})

	entries, _, err := ParseWorkloadCSV(path, nil)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.True(t, entries[0].IsExternal)
	assert.True(t, entries[1].IsExternal)
	assert.False(t, entries[2].IsExternal)
}

func TestParseWorkloadCSVRemoteAudience(t *testing.T) {
	path := writeWorkloadCSV(t, [][]string{
		workloadRow("Иванов И.И.", "Кафедра информатики", "3",
			map[int]string{7: "607-21аб", 8: "ЭОиДОТ"}, ""),
	})

	entries, _, err := ParseWorkloadCSV(path, nil)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	for _, entry := range entries {
		assert.True(t, entry.IsRemote)
		assert.Equal(t, "среда", entry.DayOfWeek)
		assert.Equal(t, "607-21", entry.Group)
		assert.Equal(t, 2, entry.NumSubgroups)
	}
	assert.Equal(t, "а", entries[0].Subgroup)
	assert.Equal(t, "б", entries[1].Subgroup)
}

func TestParseWorkloadCSVMissingTeachers(t *testing.T) {
	path := writeWorkloadCSV(t, [][]string{
		workloadRow("Галкин В.А.", "Кафедра математики", "1",
			map[int]string{3: "601-31", 4: "А501"}, ""),
		workloadRow("Сидоров С.С.", "Кафедра математики", "1",
			map[int]string{5: "601-31", 6: "А501"}, ""),
	})

	names := map[string]string{"Галкин В.А.": "Галкин Владимир Алексеевич"}
	entries, missing, err := ParseWorkloadCSV(path, names)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Галкин Владимир Алексеевич", entries[0].Fio)
	assert.Equal(t, "Сидоров С.С.", entries[1].Fio)
	assert.Equal(t, []string{"Сидоров С.С."}, missing)
}

func TestReadCSVRowsWindows1251(t *testing.T) {
	encoded, err := charmap.Windows1251.NewEncoder().Bytes([]byte("ФИО,Кафедра\nИванов И.И.,Кафедра физики\n"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "cp1251.csv")
	require.NoError(t, os.WriteFile(path, encoded, 0644))

	rows, err := readCSVRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"ФИО", "Кафедра"}, rows[0])
	assert.Equal(t, []string{"Иванов И.И.", "Кафедра физики"}, rows[1])
}

func TestReadCSVRowsBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bom.csv")
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("ФИО,Кафедра\n")...)
	require.NoError(t, os.WriteFile(path, content, 0644))

	rows, err := readCSVRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, strings.HasPrefix(rows[0][0], "\uFEFF"))
	assert.Equal(t, "ФИО", rows[0][0])
}
