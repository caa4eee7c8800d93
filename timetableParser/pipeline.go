package main

import (
	"strconv"
	"strings"

	"github.com/tedmon1998/TimetableParser/discipline"
	"github.com/tedmon1998/TimetableParser/normalization"
)

// DecomposeEntries разбирает сырые ячейки дисциплин: каждая запись
// превращается в одну или несколько с очищенным названием, аудиторией,
// неделей и типом занятия. Записи с пустой ячейкой отбрасываются.
func DecomposeEntries(raw []ScheduleEntry, dec *discipline.Decomposer, norm *normalization.Normalizer) []ScheduleEntry {
	var out []ScheduleEntry
	for _, entry := range raw {
		records := dec.Decompose(entry.SubjectName, entry.Fio)
		if len(records) == 0 {
			continue
		}
		isRemote := entry.IsRemote || containsRemoteMarker(entry.SubjectName)

		for _, record := range records {
			cleaned := entry
			cleaned.SubjectName = norm.Normalize(record.SubjectName)
			cleaned.LectureType = record.LectureType
			cleaned.IsRemote = isRemote
			if record.Audience != "" {
				cleaned.Audience = record.Audience
			}
			if record.Teacher != "" {
				cleaned.Fio = record.Teacher
			}
			if record.WeekType != "" {
				cleaned.Week = record.WeekType
			} else if cleaned.Week == "" {
				cleaned.Week = discipline.WeekBoth
			}
			if record.Subgroup != 0 {
				cleaned.Subgroup = strconv.Itoa(record.Subgroup)
			}
			out = append(out, cleaned)
		}
	}
	return out
}

func containsRemoteMarker(text string) bool {
	return strings.Contains(strings.ToLower(text), remoteAudience)
}
