package discipline

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tedmon1998/TimetableParser/rooms"
)

// Shape форма ячейки дисциплины, определяющая ветку разбора.
type Shape int

const (
	// ShapeEmpty пустая или пробельная ячейка
	ShapeEmpty Shape = iota
	// ShapeSubgroupTeachers несколько преподавателей через ";" и подгруппы в тексте
	ShapeSubgroupTeachers
	// ShapeWeekSplit разделение по числителю/знаменателю через "//"
	ShapeWeekSplit
	// ShapeMultiDiscipline одна или несколько дисциплин без разделения по неделям
	ShapeMultiDiscipline
)

func (s Shape) String() string {
	switch s {
	case ShapeEmpty:
		return "пустая ячейка"
	case ShapeSubgroupTeachers:
		return "подгруппы с преподавателями"
	case ShapeWeekSplit:
		return "числитель/знаменатель"
	default:
		return "дисциплины"
	}
}

const roomAlternation = `[А-ЯЁ][А-ЯЁ]?\d{2,4}|СОКБ|СОКЦОМиД|ЭОиДОТ|ЭБЦ|ЦАС|УЦ|бассейн|зал\s+2|зал\s+гимн`

// Decomposer разбирает сырой текст ячейки дисциплины на нормализованные
// записи. Реестр аудиторий загружается один раз и дальше только читается,
// поэтому один экземпляр можно использовать для всех ячеек.
type Decomposer struct {
	reg     *rooms.Registry
	cls     *rooms.Classifier
	cleaner *Cleaner
}

// NewDecomposer создает разборщик поверх реестра аудиторий.
// Реестр может быть nil или пустым: тогда аудитории ищутся только
// по структурным паттернам.
func NewDecomposer(reg *rooms.Registry) *Decomposer {
	cls := rooms.NewClassifier(reg)
	return &Decomposer{
		reg:     cls.Registry(),
		cls:     cls,
		cleaner: NewCleaner(cls),
	}
}

// Cleaner возвращает очиститель названий, настроенный на тот же реестр.
func (d *Decomposer) Cleaner() *Cleaner {
	return d.cleaner
}

// Classifier возвращает классификатор аудиторий разборщика.
func (d *Decomposer) Classifier() *rooms.Classifier {
	return d.cls
}

// Classify определяет форму ячейки. Чистая функция: решение о том,
// какая ветка применима, отделено от самого разбора.
func (d *Decomposer) Classify(cellText, teacherText string) Shape {
	text := strings.TrimSpace(cellText)
	if text == "" {
		return ShapeEmpty
	}
	if len(SplitTeachersBySubgroup(teacherText)) > 1 && len(ExtractSubgroups(text)) > 0 {
		return ShapeSubgroupTeachers
	}
	if strings.Contains(text, "//") {
		return ShapeWeekSplit
	}
	return ShapeMultiDiscipline
}

// Decompose разбирает ячейку на упорядоченный список записей.
// Для пустого текста возвращает пустой список, для любого другого
// хотя бы одну запись: если ни одна ветка не нашла аудиторию,
// срабатывает запасная ветка с пустой аудиторией.
func (d *Decomposer) Decompose(cellText, teacherText string) []Record {
	text := strings.TrimSpace(cellText)

	var records []Record
	switch d.Classify(text, teacherText) {
	case ShapeEmpty:
		return nil
	case ShapeSubgroupTeachers:
		records = d.decomposeSubgroups(text, teacherText)
	case ShapeWeekSplit:
		records = d.decomposeWeeks(text, teacherText)
	case ShapeMultiDiscipline:
		records = d.decomposeDisciplines(text, teacherText)
	}

	if len(records) == 0 {
		records = d.fallback(text, teacherText)
	}
	return records
}

// decomposeSubgroups создает по записи на каждую подгруппу,
// сопоставляя преподавателей позиционно. Если преподавателей меньше,
// чем подгрупп, последний достается оставшимся.
func (d *Decomposer) decomposeSubgroups(text, teacherText string) []Record {
	subgroups := ExtractSubgroups(text)
	teachers := SplitTeachersBySubgroup(teacherText)

	lectureType := ExtractLectureType(text)
	if lectureType == "" {
		// Разделение по подгруппам встречается только у практик
		lectureType = TypePractice
	}
	subjectName := d.cleaner.Clean(text)

	var fallbackRooms []string
	records := make([]Record, 0, len(subgroups))
	for i, subgroup := range subgroups {
		teacher := teachers[len(teachers)-1]
		if i < len(teachers) {
			teacher = teachers[i]
		}

		audience := d.audienceForSubgroup(text, subgroup)
		if audience == "" {
			if fallbackRooms == nil {
				fallbackRooms = d.cls.FindRooms(text)
			}
			if len(fallbackRooms) > 0 {
				audience = fallbackRooms[0]
			}
		}

		records = append(records, Record{
			Audience:    audience,
			SubjectName: subjectName,
			LectureType: lectureType,
			Teacher:     teacher,
			WeekType:    WeekBoth,
			Subgroup:    subgroup,
		})
	}
	return records
}

// decomposeWeeks разбирает ячейку с "//": по записи на каждую
// уникальную аудиторию числителя и знаменателя.
func (d *Decomposer) decomposeWeeks(text, teacherText string) []Record {
	numeratorText, denominatorText, _ := SplitWeeks(text)
	numeratorTeacher, denominatorTeacher := SplitTeachers(teacherText)
	lectureType := ExtractLectureType(text)

	var records []Record
	for _, audience := range d.cls.FindRooms(numeratorText) {
		records = append(records, Record{
			Audience:    audience,
			SubjectName: d.cleaner.Clean(numeratorText),
			LectureType: lectureType,
			Teacher:     numeratorTeacher,
			WeekType:    WeekNumerator,
		})
	}
	for _, audience := range d.cls.FindRooms(denominatorText) {
		records = append(records, Record{
			Audience:    audience,
			SubjectName: d.cleaner.Clean(denominatorText),
			LectureType: lectureType,
			Teacher:     denominatorTeacher,
			WeekType:    WeekDenominator,
		})
	}
	return records
}

// decomposeDisciplines разбивает ячейку на дисциплины и создает
// по записи на каждую уникальную аудиторию каждой дисциплины.
// Преподаватель проставляется, только когда он один на обе недели.
func (d *Decomposer) decomposeDisciplines(text, teacherText string) []Record {
	numeratorTeacher, denominatorTeacher := SplitTeachers(teacherText)
	lectureType := ExtractLectureType(text)

	var records []Record
	for _, segment := range d.splitDisciplines(text) {
		for _, audience := range d.cls.FindRooms(segment) {
			record := Record{
				Audience:    audience,
				SubjectName: d.cleaner.Clean(segment),
				LectureType: lectureType,
			}
			if numeratorTeacher != "" && numeratorTeacher == denominatorTeacher {
				record.Teacher = numeratorTeacher
				record.WeekType = WeekBoth
			}
			records = append(records, record)
		}
	}
	return records
}

// fallback единственная запись без аудитории, когда ни одна ветка
// ничего не нашла.
func (d *Decomposer) fallback(text, teacherText string) []Record {
	numeratorTeacher, denominatorTeacher := SplitTeachers(teacherText)
	record := Record{
		SubjectName: d.cleaner.Clean(text),
		LectureType: ExtractLectureType(text),
	}
	if numeratorTeacher != "" && numeratorTeacher == denominatorTeacher {
		record.Teacher = numeratorTeacher
		record.WeekType = WeekBoth
	}
	return []Record{record}
}

// splitDisciplines разбивает текст на несколько дисциплин.
// Граница: аудитория, за которой через пробел идет заглавная буква
// (начало нового предмета) или "//".
func (d *Decomposer) splitDisciplines(text string) []string {
	var cuts []int
	for _, m := range d.cls.FindMatches(text) {
		rest := text[m.End:]
		trimmed := strings.TrimLeft(rest, " \t")
		if len(trimmed) == len(rest) {
			continue // нужен хотя бы один пробел после аудитории
		}
		if strings.HasPrefix(trimmed, "//") || startsWithUpperCyrillic(trimmed) {
			cuts = append(cuts, m.End)
		}
	}
	if len(cuts) == 0 {
		return []string{text}
	}

	var segments []string
	last := 0
	for _, cut := range cuts {
		if part := strings.TrimSpace(text[last:cut]); part != "" {
			segments = append(segments, part)
		}
		last = cut
	}
	if part := strings.TrimSpace(text[last:]); part != "" {
		segments = append(segments, part)
	}
	if len(segments) <= 1 {
		return []string{text}
	}
	return segments
}

// audienceForSubgroup ищет аудиторию рядом с маркером конкретной
// подгруппы: "п/г 2, А502". При непустом реестре кандидат обязан
// состоять в нем.
func (d *Decomposer) audienceForSubgroup(text string, subgroup int) string {
	for _, marker := range []string{`п/г`, `подгруппа`} {
		pattern := regexp.MustCompile(fmt.Sprintf(`(?i)%s\s*%d[,\s]+(%s)`, marker, subgroup, roomAlternation))
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		candidate := match[1]
		if d.reg.Len() == 0 {
			return candidate
		}
		if canonical, ok := d.reg.Canonical(candidate); ok {
			return canonical
		}
	}
	return ""
}

// ExtractLectureType определяет тип занятия по тексту ячейки.
// Подгруппы означают практику: лекции по подгруппам не делятся.
func ExtractLectureType(text string) string {
	if text == "" {
		return ""
	}
	lower := strings.ToLower(text)
	if strings.Contains(lower, "п/г") || strings.Contains(lower, "подгруппа") {
		return TypePractice
	}
	if strings.Contains(lower, "(лек)") || strings.Contains(lower, "лек") {
		return TypeLecture
	}
	if strings.Contains(lower, "(пр)") || strings.Contains(lower, "практика") {
		return TypePractice
	}
	return ""
}

func startsWithUpperCyrillic(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return (r >= 'А' && r <= 'Я') || r == 'Ё'
}
