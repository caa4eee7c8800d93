package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Столбцы дней недели в CSV занятости преподавателей. Столбец аудитории
// идет сразу за столбцом дня.
var (
	workloadDayOrder   = []int{3, 5, 7, 9, 11, 13}
	workloadDayColumns = map[int]string{
		3:  "понедельник",
		5:  "вторник",
		7:  "среда",
		9:  "четверг",
		11: "пятница",
		13: "суббота",
	}
	workloadAudienceColumns = map[int]int{
		3:  4,
		5:  6,
		7:  8,
		9:  10,
		11: 12,
		13: 14,
	}
)

// Аудитория дистанционного обучения
const remoteAudience = "эоидот"

// ParseWorkloadCSV разбирает CSV занятости преподавателей.
// Возвращает записи расписания и список коротких ФИО, для которых не
// нашлось полного имени в справочнике.
func ParseWorkloadCSV(path string, teacherNames map[string]string) ([]ScheduleEntry, []string, error) {
	rows, err := readCSVRows(path)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) > 0 {
		rows = rows[1:] // заголовок
	}

	// Пометка "внешний" стоит не в каждой строке преподавателя,
	// поэтому внешние собираются отдельным проходом
	external := make(map[string]bool)
	for _, row := range rows {
		if len(row) < 17 {
			continue
		}
		fio := strings.TrimSpace(row[0])
		if fio == "" || fio == "вакансия" {
			continue
		}
		if strings.Contains(strings.ToLower(row[16]), "внешний") {
			external[fio] = true
		}
	}

	var entries []ScheduleEntry
	missing := make(map[string]bool)
	for _, row := range rows {
		if len(row) < 15 {
			continue
		}

		fio := strings.TrimSpace(row[0])
		if fio == "" || fio == "вакансия" {
			continue
		}
		department := strings.TrimSpace(row[1])
		pairNumber, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			continue
		}

		for _, dayCol := range workloadDayOrder {
			groupsStr := strings.TrimSpace(row[dayCol])
			if groupsStr == "" {
				continue
			}
			audience := strings.TrimSpace(row[workloadAudienceColumns[dayCol]])

			refs := ParseGroupString(groupsStr)
			if len(refs) == 0 {
				continue
			}
			numSubgroups := CountSubgroups(refs)

			fullFio, found := resolveTeacher(fio, teacherNames)
			if !found && len(teacherNames) > 0 {
				missing[fio] = true
			}

			for _, ref := range refs {
				entries = append(entries, ScheduleEntry{
					Fio:          fullFio,
					PairNumber:   pairNumber,
					DayOfWeek:    workloadDayColumns[dayCol],
					Group:        ref.Group,
					Audience:     audience,
					Department:   department,
					Week:         ref.Week,
					Subgroup:     ref.Subgroup,
					NumSubgroups: numSubgroups,
					IsExternal:   external[fio],
					IsRemote:     strings.EqualFold(audience, remoteAudience),
				})
			}
		}
	}

	missingList := make([]string, 0, len(missing))
	for fio := range missing {
		missingList = append(missingList, fio)
	}
	sort.Strings(missingList)

	return entries, missingList, nil
}

// readCSVRows читает CSV целиком. Файлы из деканата иногда приходят в
// windows-1251: если содержимое не валидный UTF-8, оно перекодируется.
func readCSVRows(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		decoded, err := charmap.Windows1251.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("ошибка перекодирования windows-1251: %v", err)
		}
		data = decoded
	}
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения CSV %s: %v", path, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
