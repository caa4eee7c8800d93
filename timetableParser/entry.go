package main

// ScheduleEntry одна строка итогового расписания. До разбора ячейки
// SubjectName содержит сырой текст дисциплины, после разбора -
// очищенное название.
type ScheduleEntry struct {
	Fio          string `json:"fio"`
	PairNumber   int    `json:"pair_number"`
	DayOfWeek    string `json:"day_of_week"`
	Group        string `json:"group"`
	Audience     string `json:"audience"`
	Department   string `json:"department"`
	Week         string `json:"week"`
	Subgroup     string `json:"subgroup"`
	NumSubgroups int    `json:"num_subgroups"`
	IsExternal   bool   `json:"is_external"`
	IsRemote     bool   `json:"is_remote"`
	SubjectName  string `json:"subject_name"`
	LectureType  string `json:"lecture_type,omitempty"`
	Institute    string `json:"institute,omitempty"`
	Specialty    string `json:"specialty,omitempty"`
	Course       string `json:"course,omitempty"`
	PeriodDates  string `json:"period_dates,omitempty"`
}
