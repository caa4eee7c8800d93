package discipline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tedmon1998/TimetableParser/rooms"
)

func testDecomposer() *Decomposer {
	return NewDecomposer(rooms.NewRegistry([]string{"А501", "А502", "А539", "А540", "У708", "СОКБ", "бассейн"}))
}

func TestClassify(t *testing.T) {
	d := testDecomposer()

	tests := []struct {
		name     string
		cell     string
		teacher  string
		expected Shape
	}{
		{name: "пустая ячейка", cell: "", expected: ShapeEmpty},
		{name: "только пробелы", cell: "   ", expected: ShapeEmpty},
		{
			name:     "подгруппы с несколькими преподавателями",
			cell:     "Практика п/г 1, А501 п/г 2, А502",
			teacher:  "Иванов И.И.;Петров П.П.",
			expected: ShapeSubgroupTeachers,
		},
		{
			name:     "подгруппы при одном преподавателе не выделяются",
			cell:     "Практика п/г 1, А501",
			teacher:  "Иванов И.И.",
			expected: ShapeMultiDiscipline,
		},
		{
			name:     "разделение по неделям",
			cell:     "Физика А501 // Химия А502",
			expected: ShapeWeekSplit,
		},
		{
			name:     "подгруппы и преподаватели важнее недель",
			cell:     "Практика п/г 1, А501 // п/г 2, А502",
			teacher:  "Иванов И.И.;Петров П.П.",
			expected: ShapeSubgroupTeachers,
		},
		{name: "обычная ячейка", cell: "Физика А501", expected: ShapeMultiDiscipline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, d.Classify(tt.cell, tt.teacher))
		})
	}
}

func TestDecomposeWeekSplit(t *testing.T) {
	d := testDecomposer()

	records := d.Decompose("Физика А501 // Химия А502", "")
	require.Len(t, records, 2)

	assert.Equal(t, "Физика", records[0].SubjectName)
	assert.Equal(t, "А501", records[0].Audience)
	assert.Equal(t, WeekNumerator, records[0].WeekType)

	assert.Equal(t, "Химия", records[1].SubjectName)
	assert.Equal(t, "А502", records[1].Audience)
	assert.Equal(t, WeekDenominator, records[1].WeekType)
}

func TestDecomposeWeekSplitTeachers(t *testing.T) {
	d := testDecomposer()

	records := d.Decompose("Физика А501 // Химия А502", "Иванов И.И. / Петров П.П.")
	require.Len(t, records, 2)
	assert.Equal(t, "Иванов И.И.", records[0].Teacher)
	assert.Equal(t, "Петров П.П.", records[1].Teacher)
}

func TestDecomposeSubgroupFanOut(t *testing.T) {
	d := testDecomposer()

	records := d.Decompose("Практика п/г 1, А501 п/г 2, А502", "Иванов И.И.;Петров П.П.")
	require.Len(t, records, 2)

	assert.Equal(t, 1, records[0].Subgroup)
	assert.Equal(t, "Иванов И.И.", records[0].Teacher)
	assert.Equal(t, "А501", records[0].Audience)
	assert.Equal(t, TypePractice, records[0].LectureType)

	assert.Equal(t, 2, records[1].Subgroup)
	assert.Equal(t, "Петров П.П.", records[1].Teacher)
	assert.Equal(t, "А502", records[1].Audience)
}

func TestDecomposeSubgroupLastTeacherFallback(t *testing.T) {
	// Преподавателей меньше, чем подгрупп: последний достается оставшимся
	d := testDecomposer()

	records := d.Decompose("Практика п/г 1, А501 п/г 2, А502 п/г 3, У708", "Иванов И.И.;Петров П.П.")
	require.Len(t, records, 3)
	assert.Equal(t, "Иванов И.И.", records[0].Teacher)
	assert.Equal(t, "Петров П.П.", records[1].Teacher)
	assert.Equal(t, "Петров П.П.", records[2].Teacher)
	assert.Equal(t, "У708", records[2].Audience)
}

func TestDecomposeSubgroupSharedRoom(t *testing.T) {
	// Нет аудитории рядом с маркером: берется первая найденная в ячейке
	d := testDecomposer()

	records := d.Decompose("Практика А501 п/г 1 п/г 2", "Иванов И.И.;Петров П.П.")
	require.Len(t, records, 2)
	assert.Equal(t, "А501", records[0].Audience)
	assert.Equal(t, "А501", records[1].Audience)
}

func TestDecomposeMultiDiscipline(t *testing.T) {
	d := testDecomposer()

	records := d.Decompose("Гистология А539 Физиология А540", "Иванов И.И.")
	require.Len(t, records, 2)

	assert.Equal(t, "Гистология", records[0].SubjectName)
	assert.Equal(t, "А539", records[0].Audience)
	assert.Equal(t, "Иванов И.И.", records[0].Teacher)
	assert.Equal(t, WeekBoth, records[0].WeekType)

	assert.Equal(t, "Физиология", records[1].SubjectName)
	assert.Equal(t, "А540", records[1].Audience)
}

func TestDecomposeDifferentTeachersWithoutWeekSplit(t *testing.T) {
	// Преподаватели разные, а разделения по неделям в ячейке нет:
	// преподаватель и неделя не проставляются
	d := testDecomposer()

	records := d.Decompose("Практика п/г 1 А501", "Иванов И.И. / Петров П.П.")
	require.Len(t, records, 1)
	assert.Empty(t, records[0].Teacher)
	assert.Empty(t, records[0].WeekType)
}

func TestDecomposeNoRoomFallback(t *testing.T) {
	d := testDecomposer()

	records := d.Decompose("Консультация", "")
	require.Len(t, records, 1)
	assert.Equal(t, "", records[0].Audience)
	assert.Equal(t, "Консультация", records[0].SubjectName)
}

func TestDecomposeTotality(t *testing.T) {
	d := testDecomposer()

	tests := []struct {
		name    string
		cell    string
		teacher string
		empty   bool
	}{
		{name: "пустая ячейка", cell: "", empty: true},
		{name: "пробельная ячейка", cell: "  \t ", empty: true},
		{name: "мусорная пунктуация", cell: "// / ,,"},
		{name: "обычный текст", cell: "Физика"},
		{name: "только аудитория", cell: "А501"},
		{name: "подгруппы без преподавателей", cell: "п/г 1 п/г 2"},
		{name: "текст с преподавателем", cell: "Химия", teacher: "Иванов И.И."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := d.Decompose(tt.cell, tt.teacher)
			if tt.empty {
				assert.Empty(t, records)
			} else {
				assert.NotEmpty(t, records)
			}
		})
	}
}

func TestDecomposeSubjectNamesContainNoRooms(t *testing.T) {
	d := testDecomposer()
	reg := d.Classifier().Registry()

	cells := []string{
		"Физика А501 // Химия А502",
		"Практика п/г 1, А501 п/г 2, А502",
		"Гистология А539 Физиология А540",
		"Физкультура бассейн",
		"Мед. генетика СОКБ",
	}

	for _, cell := range cells {
		for _, record := range d.Decompose(cell, "") {
			cls := rooms.NewClassifier(reg)
			assert.Empty(t, cls.FindRooms(record.SubjectName),
				"в названии %q осталась аудитория (ячейка %q)", record.SubjectName, cell)
			assert.NotContains(t, record.SubjectName, "п/г")
			assert.NotContains(t, record.SubjectName, "подгруппа")
		}
	}
}

func TestDecomposeWithoutRegistry(t *testing.T) {
	// Реестр не загрузился: работают структурные паттерны
	d := NewDecomposer(nil)

	records := d.Decompose("Физика А501 // Химия А502", "")
	require.Len(t, records, 2)
	assert.Equal(t, "А501", records[0].Audience)
	assert.Equal(t, "А502", records[1].Audience)
}

func TestExtractLectureType(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{name: "пометка лекции", text: "Физика (лек) А501", expected: TypeLecture},
		{name: "слово лекция", text: "Обзорная лекция", expected: TypeLecture},
		{name: "пометка практики", text: "Химия (пр)", expected: TypePractice},
		{name: "подгруппы означают практику", text: "п/г 1, А501", expected: TypePractice},
		{name: "без маркеров", text: "Физика А501", expected: ""},
		{name: "пустой текст", text: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractLectureType(tt.text))
		})
	}
}
