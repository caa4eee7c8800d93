package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// ValidationError одно несоответствие расписания данным занятости
type ValidationError struct {
	Type          string        `json:"type"`
	Message       string        `json:"message"`
	Entry         ScheduleEntry `json:"entry"`
	ExpectedRooms []string      `json:"expected_rooms,omitempty"`
}

// ValidationReport итог проверки достоверности
type ValidationReport struct {
	TotalErrors  int               `json:"total_errors"`
	ErrorsByType map[string]int    `json:"errors_by_type"`
	Errors       []ValidationError `json:"errors"`
}

// workloadIndex группа -> день -> пара -> аудитории (в верхнем регистре)
type workloadIndex map[string]map[string]map[int]map[string]bool

var knownDays = map[string]bool{
	"понедельник": true,
	"вторник":     true,
	"среда":       true,
	"четверг":     true,
	"пятница":     true,
	"суббота":     true,
	"воскресенье": true,
}

// BuildWorkloadIndex индексирует записи занятости для быстрой сверки.
func BuildWorkloadIndex(workload []ScheduleEntry) workloadIndex {
	index := make(workloadIndex)
	for _, entry := range workload {
		if entry.Group == "" || entry.DayOfWeek == "" || entry.PairNumber == 0 {
			continue
		}
		days, ok := index[entry.Group]
		if !ok {
			days = make(map[string]map[int]map[string]bool)
			index[entry.Group] = days
		}
		pairs, ok := days[entry.DayOfWeek]
		if !ok {
			pairs = make(map[int]map[string]bool)
			days[entry.DayOfWeek] = pairs
		}
		rooms, ok := pairs[entry.PairNumber]
		if !ok {
			rooms = make(map[string]bool)
			pairs[entry.PairNumber] = rooms
		}
		rooms[normalizeRoomName(entry.Audience)] = true
	}
	return index
}

// ValidateEntries сверяет записи расписания с занятостью преподавателей.
func ValidateEntries(entries []ScheduleEntry, index workloadIndex) ValidationReport {
	var errors []ValidationError

	add := func(errType, message string, entry ScheduleEntry, expected []string) {
		errors = append(errors, ValidationError{
			Type:          errType,
			Message:       message,
			Entry:         entry,
			ExpectedRooms: expected,
		})
	}

	for _, entry := range entries {
		// Служебные строки сетки не проверяются
		if entry.Group == "" || strings.TrimSpace(entry.SubjectName) == "" {
			continue
		}
		if strings.HasPrefix(entry.SubjectName, "-") || strings.HasPrefix(entry.SubjectName, "СОКБ") {
			continue
		}

		if !knownDays[entry.DayOfWeek] {
			add("unknown_day", fmt.Sprintf("Неизвестный день недели: %s", entry.DayOfWeek), entry, nil)
			continue
		}

		days, ok := index[entry.Group]
		if !ok {
			add("group_not_found", fmt.Sprintf("Группа %s не найдена в данных занятости", entry.Group), entry, nil)
			continue
		}
		pairs, ok := days[entry.DayOfWeek]
		if !ok {
			add("day_not_found", fmt.Sprintf("Для группы %s нет занятий в %s", entry.Group, entry.DayOfWeek), entry, nil)
			continue
		}
		rooms, ok := pairs[entry.PairNumber]
		if !ok {
			add("period_not_found", fmt.Sprintf("Для группы %s в %s нет пары %d", entry.Group, entry.DayOfWeek, entry.PairNumber), entry, nil)
			continue
		}

		expected := make([]string, 0, len(rooms))
		for room := range rooms {
			if room != "" {
				expected = append(expected, room)
			}
		}
		sort.Strings(expected)

		room := normalizeRoomName(entry.Audience)
		switch {
		case room != "" && !rooms[room]:
			if len(expected) > 0 {
				add("room_mismatch",
					fmt.Sprintf("Аудитория %s не совпадает с занятостью. Ожидаемые: %s", entry.Audience, strings.Join(expected, ", ")),
					entry, expected)
			} else {
				add("no_room_in_csv",
					fmt.Sprintf("В занятости для группы %s в %s пара %d нет аудитории", entry.Group, entry.DayOfWeek, entry.PairNumber),
					entry, nil)
			}
		case room == "" && len(expected) > 0:
			add("missing_room",
				fmt.Sprintf("В расписании нет аудитории, в занятости есть: %s", strings.Join(expected, ", ")),
				entry, expected)
		}
	}

	byType := make(map[string]int)
	for _, e := range errors {
		byType[e.Type]++
	}

	return ValidationReport{
		TotalErrors:  len(errors),
		ErrorsByType: byType,
		Errors:       errors,
	}
}

// SaveValidationReport пишет отчет проверки в JSON.
func SaveValidationReport(report ValidationReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func normalizeRoomName(room string) string {
	return strings.ToUpper(strings.TrimSpace(room))
}
