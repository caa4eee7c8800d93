package main

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"

	"github.com/tedmon1998/TimetableParser/discipline"
)

// GroupRef одна группа из ячейки занятости: номер, неделя и подгруппа.
type GroupRef struct {
	Group    string
	Week     string
	Subgroup string
}

// Буквы подгрупп в конце номера группы. "м" исключена: это маркер
// магистратуры, а не подгруппа ("601-51м").
const subgroupLetters = "абвгдежзиклнопрстуфхцчшщэюя"

// ParseGroupString разбирает ячейку с группами из файла занятости.
// Примеры:
//
//	"601-31"         одна группа на обе недели
//	"605-41/"        числитель
//	"/601-51м"       знаменатель
//	"601-51аб"       две подгруппы одной группы
//	"607-51,607-52/" две группы по числителю
func ParseGroupString(groupStr string) []GroupRef {
	s := strings.TrimSpace(groupStr)
	if s == "" {
		return nil
	}

	// Хвостовой и ведущий слэш задают неделю для всей ячейки
	week := discipline.WeekBoth
	if strings.HasSuffix(s, "/") {
		week = discipline.WeekNumerator
		s = strings.TrimSuffix(s, "/")
	} else if strings.HasPrefix(s, "/") {
		week = discipline.WeekDenominator
		s = strings.TrimPrefix(s, "/")
	}

	var names []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		// Слэш внутри части тоже разделяет группы: "607-51/607-52"
		if strings.Contains(part, "/") && !strings.HasPrefix(part, "/") && !strings.HasSuffix(part, "/") {
			for _, sub := range strings.Split(part, "/") {
				names = append(names, strings.TrimSpace(sub))
			}
		} else {
			names = append(names, part)
		}
	}

	var refs []GroupRef
	for _, name := range names {
		if name == "" {
			continue
		}
		base, subgroups := splitSubgroupLetters(name)
		if len(subgroups) == 0 {
			refs = append(refs, GroupRef{Group: base, Week: week})
			continue
		}
		for _, subgroup := range subgroups {
			refs = append(refs, GroupRef{Group: base, Week: week, Subgroup: subgroup})
		}
	}
	return refs
}

// splitSubgroupLetters отделяет буквы подгрупп в конце номера группы.
// Если среди хвостовых букв есть не-подгруппа (например "м"), хвост
// считается частью номера.
func splitSubgroupLetters(group string) (string, []string) {
	runes := []rune(group)
	i := len(runes)
	for i > 0 && isSubgroupLetter(runes[i-1]) {
		i--
	}
	if i == len(runes) || i == 0 {
		return group, nil
	}
	var subgroups []string
	for _, r := range runes[i:] {
		subgroups = append(subgroups, string(unicode.ToLower(r)))
	}
	return string(runes[:i]), subgroups
}

func isSubgroupLetter(r rune) bool {
	return strings.ContainsRune(subgroupLetters, unicode.ToLower(r))
}

// CountSubgroups количество уникальных подгрупп в списке групп.
func CountSubgroups(refs []GroupRef) int {
	seen := make(map[string]bool)
	for _, ref := range refs {
		if ref.Subgroup != "" {
			seen[ref.Subgroup] = true
		}
	}
	return len(seen)
}

var (
	fioDottedInitials = regexp.MustCompile(`([А-ЯЁ])\.\s*([А-ЯЁ])\.`)
	fioSpacedInitials = regexp.MustCompile(`([А-ЯЁ])\s+([А-ЯЁ])\.`)
)

// NormalizeShortFIO приводит короткое ФИО к виду "Фамилия И.О." для
// сопоставления со справочником.
func NormalizeShortFIO(fio string) string {
	fio = strings.Join(strings.Fields(fio), " ")
	fio = fioDottedInitials.ReplaceAllString(fio, "$1.$2.")
	fio = fioSpacedInitials.ReplaceAllString(fio, "$1.$2.")
	return fio
}

// LoadTeacherNames загружает справочник полных ФИО и строит отображение
// короткого ФИО на полное. Для каждого преподавателя регистрируются три
// варианта написания: "Галкин В.А.", "Галкин В. А." и "Галкин В.А".
func LoadTeacherNames(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var teachers []struct {
		Fio string `json:"fio"`
	}
	if err := json.Unmarshal(data, &teachers); err != nil {
		return nil, fmt.Errorf("ошибка разбора справочника преподавателей: %v", err)
	}

	mapping := make(map[string]string)
	for _, teacher := range teachers {
		full := strings.TrimSpace(teacher.Fio)
		parts := strings.Fields(full)
		if len(parts) < 3 {
			continue
		}
		lastName := parts[0]
		firstInitial := firstRune(parts[1])
		middleInitial := firstRune(parts[2])

		variants := []string{
			fmt.Sprintf("%s %s.%s.", lastName, firstInitial, middleInitial),
			fmt.Sprintf("%s %s. %s.", lastName, firstInitial, middleInitial),
			fmt.Sprintf("%s %s.%s", lastName, firstInitial, middleInitial),
		}
		for _, variant := range variants {
			mapping[NormalizeShortFIO(variant)] = full
		}
	}
	return mapping, nil
}

// resolveTeacher подставляет полное ФИО, если короткое есть в справочнике.
func resolveTeacher(shortFio string, names map[string]string) (string, bool) {
	if full, ok := names[NormalizeShortFIO(shortFio)]; ok {
		return full, true
	}
	return shortFio, false
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
