package discipline

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	subgroupShortPattern = regexp.MustCompile(`(?i)п/г\s*(\d+)`)
	subgroupLongPattern  = regexp.MustCompile(`(?i)подгруппа\s*(\d+)`)
)

// ExtractSubgroups извлекает номера подгрупп из текста ячейки
// (п/г 1, п/г2, подгруппа 3). Без дубликатов, по возрастанию.
func ExtractSubgroups(text string) []int {
	if text == "" {
		return nil
	}
	seen := make(map[int]bool)
	var subgroups []int
	for _, pattern := range []*regexp.Regexp{subgroupShortPattern, subgroupLongPattern} {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			num, err := strconv.Atoi(match[1])
			if err != nil || seen[num] {
				continue
			}
			seen[num] = true
			subgroups = append(subgroups, num)
		}
	}
	sort.Ints(subgroups)
	return subgroups
}

// SplitTeachersBySubgroup разделяет поле преподавателя по ";":
// каждый для своей подгруппы, в порядке перечисления.
func SplitTeachersBySubgroup(teacherText string) []string {
	teacherText = strings.TrimSpace(teacherText)
	if teacherText == "" {
		return nil
	}
	if !strings.Contains(teacherText, ";") {
		return []string{teacherText}
	}
	var teachers []string
	for _, part := range strings.Split(teacherText, ";") {
		if part = strings.TrimSpace(part); part != "" {
			teachers = append(teachers, part)
		}
	}
	return teachers
}
