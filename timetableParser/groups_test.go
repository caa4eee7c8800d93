package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tedmon1998/TimetableParser/discipline"
)

func TestParseGroupString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []GroupRef
	}{
		{name: "пустая строка", input: "", expected: nil},
		{
			name:     "одна группа на обе недели",
			input:    "601-31",
			expected: []GroupRef{{Group: "601-31", Week: discipline.WeekBoth}},
		},
		{
			name:     "хвостовой слэш задает числитель",
			input:    "605-41/",
			expected: []GroupRef{{Group: "605-41", Week: discipline.WeekNumerator}},
		},
		{
			name:     "ведущий слэш задает знаменатель",
			input:    "/601-51м",
			expected: []GroupRef{{Group: "601-51м", Week: discipline.WeekDenominator}},
		},
		{
			name:  "буквы подгрупп в конце номера",
			input: "601-51аб",
			expected: []GroupRef{
				{Group: "601-51", Week: discipline.WeekBoth, Subgroup: "а"},
				{Group: "601-51", Week: discipline.WeekBoth, Subgroup: "б"},
			},
		},
		{
			name:  "две группы через запятую по числителю",
			input: "607-51,607-52/",
			expected: []GroupRef{
				{Group: "607-51", Week: discipline.WeekNumerator},
				{Group: "607-52", Week: discipline.WeekNumerator},
			},
		},
		{
			name:  "слэш внутри части разделяет группы",
			input: "607-51/607-52",
			expected: []GroupRef{
				{Group: "607-51", Week: discipline.WeekBoth},
				{Group: "607-52", Week: discipline.WeekBoth},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseGroupString(tt.input))
		})
	}
}

func TestCountSubgroups(t *testing.T) {
	refs := []GroupRef{
		{Group: "601-51", Subgroup: "а"},
		{Group: "601-51", Subgroup: "б"},
		{Group: "601-52", Subgroup: "а"},
		{Group: "601-53"},
	}
	assert.Equal(t, 2, CountSubgroups(refs))
	assert.Equal(t, 0, CountSubgroups(nil))
}

func TestNormalizeShortFIO(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "уже нормальная форма", input: "Галкин В.А.", expected: "Галкин В.А."},
		{name: "пробел между инициалами", input: "Галкин В. А.", expected: "Галкин В.А."},
		{name: "лишние пробелы", input: "  Галкин   В.А.  ", expected: "Галкин В.А."},
		{name: "инициал без точки", input: "Галкин В А.", expected: "Галкин В.А."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeShortFIO(tt.input))
		})
	}
}

func TestLoadTeacherNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teacher_all.json")
	content := `[{"fio":"Галкин Владимир Алексеевич"},{"fio":"Иванова Мария Петровна"},{"fio":"Безотчества"}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	names, err := LoadTeacherNames(path)
	require.NoError(t, err)

	// Три варианта написания на каждого преподавателя, записи без
	// отчества пропускаются
	assert.Len(t, names, 4)
	assert.Equal(t, "Галкин Владимир Алексеевич", names["Галкин В.А."])
	assert.Equal(t, "Иванова Мария Петровна", names["Иванова М.П."])

	full, ok := resolveTeacher("Галкин В. А.", names)
	assert.True(t, ok)
	assert.Equal(t, "Галкин Владимир Алексеевич", full)

	full, ok = resolveTeacher("Галкин В.А", names)
	assert.True(t, ok)
	assert.Equal(t, "Галкин Владимир Алексеевич", full)

	short, ok := resolveTeacher("Сидоров С.С.", names)
	assert.False(t, ok)
	assert.Equal(t, "Сидоров С.С.", short)
}

func TestLoadTeacherNamesMissingFile(t *testing.T) {
	_, err := LoadTeacherNames(filepath.Join(t.TempDir(), "нет.json"))
	assert.Error(t, err)
}
