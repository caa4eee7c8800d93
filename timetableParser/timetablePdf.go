package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Метаданные из шапки PDF расписания
type scheduleMetadata struct {
	Institute string
	Course    string
	Specialty string
	Groups    []string
	Period    string
}

var (
	institutePattern = regexp.MustCompile(`Институт\s+([А-Яа-яЁё]+)`)
	coursePattern    = regexp.MustCompile(`(\d+)\s+Курс|Курс\s+(\d+)`)
	specialtyPattern = regexp.MustCompile(`Специальность\s*(\d+\.\d+\.\d+)\s+(.+?)\s+Группа`)
	groupListPattern = regexp.MustCompile(`(\d+(?:-\d+)*(?:,\s*\d+(?:-\d+)*)*)\s+Группа`)
	periodPattern    = regexp.MustCompile(`ТО\s+(\d{2}\.\d{2}\.\d{4})-(\d{2}\.\d{2}\.\d{4})`)
	pairTokenPattern = regexp.MustCompile(`^(\d)(?:-(\d))?$`)
)

// Сокращения дней недели в сетке PDF
var pdfDayMarkers = map[string]string{
	"ПН": "понедельник",
	"ВТ": "вторник",
	"СР": "среда",
	"ЧТ": "четверг",
	"ПТ": "пятница",
	"СБ": "суббота",
	"ВС": "воскресенье",
}

// ParseTimetablePDF извлекает текст PDF расписания и превращает его в
// сырые записи: ячейки дисциплин остаются неразобранными.
func ParseTimetablePDF(path string) ([]ScheduleEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	content, err := parsePDFContent(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения PDF %s: %v", path, err)
	}

	meta := parseScheduleMetadata(content)
	return walkScheduleLines(content, meta), nil
}

func parsePDFContent(file *os.File, fileSize int64) (string, error) {
	reader, err := pdf.NewReader(file, fileSize)
	if err != nil {
		return "", err
	}

	var content strings.Builder
	totalPage := reader.NumPage()
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		content.WriteString(text)
		content.WriteString("\n")
	}

	return content.String(), nil
}

// parseScheduleMetadata собирает метаданные из шапки: институт, курс,
// специальность, список групп и период обучения. Каждое поле берется
// из первого совпадения.
func parseScheduleMetadata(content string) scheduleMetadata {
	var meta scheduleMetadata

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if meta.Institute == "" {
			if m := institutePattern.FindStringSubmatch(line); m != nil {
				meta.Institute = m[1]
			}
		}
		if meta.Course == "" {
			if m := coursePattern.FindStringSubmatch(line); m != nil {
				if m[1] != "" {
					meta.Course = m[1]
				} else {
					meta.Course = m[2]
				}
			}
		}
		if meta.Specialty == "" {
			if m := specialtyPattern.FindStringSubmatch(line); m != nil {
				meta.Specialty = m[1] + " " + strings.TrimSpace(m[2])
			}
		}
		if len(meta.Groups) == 0 && strings.Contains(line, "Группа") {
			if m := groupListPattern.FindStringSubmatch(line); m != nil {
				for _, group := range strings.Split(m[1], ",") {
					if group = strings.TrimSpace(group); group != "" {
						meta.Groups = append(meta.Groups, group)
					}
				}
			}
		}
		if meta.Period == "" {
			if m := periodPattern.FindStringSubmatch(line); m != nil {
				meta.Period = m[1] + "-" + m[2]
			}
		}
	}

	return meta
}

// walkScheduleLines обходит строки текста. Маркер дня и номер пары
// переносятся на следующие строки, пока не встретится новый маркер;
// текст между маркерами накапливается в одну ячейку дисциплины.
func walkScheduleLines(content string, meta scheduleMetadata) []ScheduleEntry {
	var entries []ScheduleEntry
	currentDay := ""
	var currentPairs []int
	var cell strings.Builder

	flush := func() {
		text := strings.TrimSpace(cell.String())
		cell.Reset()
		if text == "" || currentDay == "" || len(currentPairs) == 0 {
			return
		}
		groups := meta.Groups
		if len(groups) == 0 {
			groups = []string{""}
		}
		for _, pair := range currentPairs {
			for _, group := range groups {
				entries = append(entries, ScheduleEntry{
					PairNumber:  pair,
					DayOfWeek:   currentDay,
					Group:       group,
					SubjectName: text,
					Institute:   meta.Institute,
					Specialty:   meta.Specialty,
					Course:      meta.Course,
					PeriodDates: meta.Period,
				})
			}
		}
	}

	for _, rawLine := range strings.Split(content, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" || isMetadataLine(line) {
			continue
		}
		fields := strings.Fields(line)

		flushed := false
		if day, ok := pdfDayMarkers[strings.ToUpper(strings.TrimRight(fields[0], "."))]; ok {
			flush()
			flushed = true
			currentDay = day
			fields = fields[1:]
		}
		if len(fields) > 0 {
			if pairs := parsePairNumbers(fields[0]); len(pairs) > 0 {
				if !flushed {
					flush()
				}
				currentPairs = pairs
				fields = fields[1:]
			}
		}
		if len(fields) > 0 {
			if cell.Len() > 0 {
				cell.WriteString(" ")
			}
			cell.WriteString(strings.Join(fields, " "))
		}
	}
	flush()

	return entries
}

// isMetadataLine строки шапки не относятся к сетке занятий.
func isMetadataLine(line string) bool {
	return strings.Contains(line, "Институт") ||
		strings.Contains(line, "Курс") ||
		strings.Contains(line, "Специальность") ||
		strings.Contains(line, "Группа") ||
		strings.Contains(line, "Расписание") ||
		periodPattern.MatchString(line)
}

// parsePairNumbers разбирает номер пары, в том числе диапазон "1-2".
func parsePairNumbers(token string) []int {
	m := pairTokenPattern.FindStringSubmatch(strings.TrimSpace(token))
	if m == nil {
		return nil
	}
	start := int(m[1][0] - '0')
	if m[2] == "" {
		return []int{start}
	}
	end := int(m[2][0] - '0')
	if end < start {
		return []int{start}
	}
	pairs := make([]int, 0, end-start+1)
	for pair := start; pair <= end; pair++ {
		pairs = append(pairs, pair)
	}
	return pairs
}
