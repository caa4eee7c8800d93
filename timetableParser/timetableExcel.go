package main

import (
	"log"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Границы одной таблицы расписания на листе. На листе их может быть
// несколько: по таблице на каждую колонку "дисциплина".
type excelTable struct {
	startCol      int
	endCol        int
	disciplineCol int
	teacherCol    int
	pairCol       int
	dayCol        int
}

// Метаданные блока расписания на листе Excel
type excelMetadata struct {
	Group     string
	Institute string
	Course    string
	Direction string
}

var (
	groupNumberPattern = regexp.MustCompile(`^\d{3}-\d{2}`)
	directionPattern   = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{2}`)
	sheetCoursePattern = regexp.MustCompile(`(?i)(\d+)\s*курс`)
	instituteKeywords  = []string{"политехнический", "медицинский", "гуманитарный", "экономический", "естественнонаучный"}
)

// ParseTimetableExcel разбирает Excel с сеткой расписания: каждый лист -
// отдельный курс, на листе может быть несколько таблиц. Ячейки дисциплин
// остаются сырыми.
func ParseTimetableExcel(path string, teacherNames map[string]string) ([]ScheduleEntry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []ScheduleEntry
	for _, sheet := range f.GetSheetList() {
		course := ""
		if m := sheetCoursePattern.FindStringSubmatch(sheet); m != nil {
			course = m[1]
		}
		sheetEntries, err := parseTimetableSheet(f, sheet, teacherNames, course)
		if err != nil {
			log.Printf("Лист %q пропущен: %v", sheet, err)
			continue
		}
		entries = append(entries, sheetEntries...)
	}
	return entries, nil
}

func parseTimetableSheet(f *excelize.File, sheet string, teacherNames map[string]string, courseFromSheet string) ([]ScheduleEntry, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	headerRow := findHeaderRow(rows)
	if headerRow == 0 {
		return nil, nil
	}

	tables := findScheduleTables(rows[headerRow-1])
	if len(tables) == 0 {
		return nil, nil
	}

	merged, err := mergedCellValues(f, sheet)
	if err != nil {
		return nil, err
	}

	meta := extractSheetMetadata(rows, headerRow)
	if meta.Course == "" {
		meta.Course = courseFromSheet
	}

	var entries []ScheduleEntry
	for _, table := range tables {
		// День недели тянется через объединенные ячейки, поэтому
		// переносится со строки на строку в пределах таблицы
		currentDay := ""

		for rowIdx := headerRow + 1; rowIdx <= len(rows); rowIdx++ {
			day := parseDayOfWeek(cellAt(rows, merged, rowIdx, table.dayCol))
			if day == "" {
				day = parseDayOfWeek(cellAt(rows, merged, rowIdx, 1))
			}
			if day != "" {
				currentDay = day
			}
			if currentDay == "" {
				continue
			}

			pairs := parsePairNumbers(cellAt(rows, merged, rowIdx, table.pairCol))
			if len(pairs) == 0 {
				pairs = parsePairNumbers(cellAt(rows, merged, rowIdx, table.startCol+1))
			}
			if len(pairs) == 0 {
				continue
			}

			// Сырой текст дисциплины: все ячейки от колонки
			// "дисциплина" до колонки "преподаватель"
			end := table.endCol
			if table.teacherCol > table.disciplineCol {
				end = table.teacherCol
			}
			var parts []string
			for col := table.disciplineCol; col < end; col++ {
				if text := strings.TrimSpace(cellAt(rows, merged, rowIdx, col)); text != "" {
					parts = append(parts, text)
				}
			}
			raw := strings.TrimSpace(strings.Join(parts, " "))
			if raw == "" {
				continue
			}

			teacher := ""
			if table.teacherCol > 0 {
				if short := strings.TrimSpace(cellAt(rows, merged, rowIdx, table.teacherCol)); short != "" {
					teacher, _ = resolveTeacher(short, teacherNames)
				}
			}

			for _, pair := range pairs {
				entries = append(entries, ScheduleEntry{
					Fio:         teacher,
					PairNumber:  pair,
					DayOfWeek:   currentDay,
					Group:       meta.Group,
					SubjectName: raw,
					Institute:   meta.Institute,
					Course:      meta.Course,
					Specialty:   meta.Direction,
				})
			}
		}
	}
	return entries, nil
}

// findHeaderRow ищет строку заголовков среди первых двадцати:
// в ней встречаются и "дисциплина", и "преподаватель".
func findHeaderRow(rows [][]string) int {
	limit := len(rows)
	if limit > 20 {
		limit = 20
	}
	for i := 0; i < limit; i++ {
		hasDiscipline, hasTeacher := false, false
		for _, cell := range rows[i] {
			lower := strings.ToLower(cell)
			if strings.Contains(lower, "дисциплина") || strings.Contains(lower, "дисц") {
				hasDiscipline = true
			}
			if strings.Contains(lower, "преподаватель") || strings.Contains(lower, "препод") {
				hasTeacher = true
			}
		}
		if hasDiscipline && hasTeacher {
			return i + 1
		}
	}
	return 0
}

// findScheduleTables строит таблицы по колонкам "дисциплина" в строке
// заголовков. Колонка "д/н" общая: она может стоять левее начала таблицы.
func findScheduleTables(header []string) []excelTable {
	var disciplineCols, teacherCols, pairCols []int
	dayCol := 0

	for i, cell := range header {
		col := i + 1
		lower := strings.ToLower(cell)
		if strings.Contains(lower, "дисциплина") {
			disciplineCols = append(disciplineCols, col)
		}
		if strings.Contains(lower, "преподаватель") {
			teacherCols = append(teacherCols, col)
		}
		if strings.Contains(lower, "пара") {
			pairCols = append(pairCols, col)
		}
		if dayCol == 0 && (strings.Contains(lower, "д/н") ||
			(strings.Contains(lower, "день") && strings.Contains(lower, "недели"))) {
			dayCol = col
		}
	}
	if len(disciplineCols) == 0 {
		return nil
	}

	var tables []excelTable
	for idx, discCol := range disciplineCols {
		startCol := 1
		if idx > 0 {
			startCol = disciplineCols[idx-1] + 1
		}

		endCol := len(header) + 1
		if idx+1 < len(disciplineCols) {
			endCol = disciplineCols[idx+1]
		}

		teacherCol := 0
		for _, col := range teacherCols {
			if col > discCol && col < endCol {
				teacherCol = col
				break
			}
		}
		pairCol := 0
		for _, col := range pairCols {
			if col >= startCol && col < endCol {
				pairCol = col
				break
			}
		}

		tables = append(tables, excelTable{
			startCol:      startCol,
			endCol:        endCol,
			disciplineCol: discCol,
			teacherCol:    teacherCol,
			pairCol:       pairCol,
			dayCol:        dayCol,
		})
	}
	return tables
}

// extractSheetMetadata собирает группу, институт, курс и направление из
// строк над заголовком таблицы.
func extractSheetMetadata(rows [][]string, headerRow int) excelMetadata {
	var meta excelMetadata

	for i := 0; i < headerRow-1 && i < len(rows); i++ {
		row := rows[i]
		for j, cell := range row {
			value := strings.TrimSpace(cell)
			if value == "" {
				continue
			}
			lower := strings.ToLower(value)

			if meta.Group == "" && groupNumberPattern.MatchString(value) {
				meta.Group = value
			}
			if meta.Direction == "" && directionPattern.MatchString(value) {
				meta.Direction = value
			}
			if meta.Institute == "" {
				for _, keyword := range instituteKeywords {
					if strings.Contains(lower, keyword) {
						meta.Institute = value
						break
					}
				}
				// Значение часто стоит в ячейке за меткой "институт"
				if meta.Institute == "" && strings.Contains(lower, "институт") && j+1 < len(row) {
					if next := strings.TrimSpace(row[j+1]); next != "" {
						meta.Institute = next
					}
				}
			}
			if meta.Course == "" && strings.Contains(lower, "курс") && j+1 < len(row) {
				next := strings.TrimSpace(row[j+1])
				if len(next) == 1 && next[0] >= '1' && next[0] <= '6' {
					meta.Course = next
				}
			}
		}
	}
	return meta
}

// mergedCellValues значение объединенного диапазона для каждой его
// ячейки: GetRows кладет значение только в левую верхнюю.
func mergedCellValues(f *excelize.File, sheet string) (map[[2]int]string, error) {
	ranges, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, err
	}

	values := make(map[[2]int]string)
	for _, mergeCell := range ranges {
		value := mergeCell.GetCellValue()
		if value == "" {
			continue
		}
		startCol, startRow, err := excelize.CellNameToCoordinates(mergeCell.GetStartAxis())
		if err != nil {
			continue
		}
		endCol, endRow, err := excelize.CellNameToCoordinates(mergeCell.GetEndAxis())
		if err != nil {
			continue
		}
		for row := startRow; row <= endRow; row++ {
			for col := startCol; col <= endCol; col++ {
				values[[2]int{row, col}] = value
			}
		}
	}
	return values, nil
}

// cellAt значение ячейки с учетом объединенных диапазонов; row и col
// нумеруются с единицы.
func cellAt(rows [][]string, merged map[[2]int]string, row, col int) string {
	if row < 1 || col < 1 {
		return ""
	}
	if row <= len(rows) && col <= len(rows[row-1]) {
		if value := rows[row-1][col-1]; value != "" {
			return value
		}
	}
	return merged[[2]int{row, col}]
}

// parseDayOfWeek распознает день недели в полном, коротком и числовом
// написании.
func parseDayOfWeek(value string) string {
	day := strings.ToLower(strings.TrimSpace(value))
	day = strings.TrimRight(day, ". ")
	if day == "" {
		return ""
	}

	full := []string{"понедельник", "вторник", "среда", "четверг", "пятница", "суббота", "воскресенье"}
	for _, name := range full {
		if strings.HasPrefix(day, name) {
			return name
		}
	}
	short := map[string]string{
		"пн": "понедельник", "1": "понедельник",
		"вт": "вторник", "2": "вторник",
		"ср": "среда", "3": "среда",
		"чт": "четверг", "4": "четверг",
		"пт": "пятница", "5": "пятница",
		"сб": "суббота", "6": "суббота",
		"вс": "воскресенье", "7": "воскресенье",
	}
	return short[day]
}
