package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/lib/pq"
)

// CleanedRecord строка таблицы timetable_cleaned
type CleanedRecord struct {
	ID           int    `json:"id"`
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

// RecordFilter фильтры выборки расписания
type RecordFilter struct {
	Group   string
	Day     string
	Teacher string
	Week    string
}

// CacheKey детерминированный ключ кэша для этой выборки.
func (f RecordFilter) CacheKey() string {
	return fmt.Sprintf("records:group=%s:day=%s:teacher=%s:week=%s",
		f.Group, f.Day, f.Teacher, f.Week)
}

func readFileToString(filename string) (string, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// connectToDB открывает подключение по строке из db.conf
func connectToDB() (*sql.DB, error) {
	connStr, err := readFileToString("db.conf")
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	err = db.Ping()
	if err != nil {
		return nil, err
	}

	return db, nil
}

// queryRecords читает timetable_cleaned с учетом фильтров. Пустой фильтр
// не попадает в условие.
func queryRecords(db *sql.DB, filter RecordFilter) ([]CleanedRecord, error) {
	query := `
	SELECT id, fio, pair_number, day_of_week, group_name, audience, department,
	       week, subgroup, num_subgroups, is_external, is_remote, subject_name,
	       lecture_type, institute, specialty, course, period_dates
	FROM timetable_cleaned`

	var conditions []string
	var args []interface{}
	addCondition := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	addCondition("group_name", filter.Group)
	addCondition("day_of_week", filter.Day)
	addCondition("fio", filter.Teacher)
	addCondition("week", filter.Week)

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY group_name, day_of_week, pair_number, subgroup"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки из timetable_cleaned: %v", err)
	}
	defer rows.Close()

	var records []CleanedRecord
	for rows.Next() {
		var r CleanedRecord
		var fio, group, audience, department, week, subgroup, subject,
			lectureType, institute, specialty, course, period sql.NullString
		err := rows.Scan(&r.ID, &fio, &r.PairNumber, &r.DayOfWeek, &group,
			&audience, &department, &week, &subgroup, &r.NumSubgroups,
			&r.IsExternal, &r.IsRemote, &subject, &lectureType, &institute,
			&specialty, &course, &period)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения строки timetable_cleaned: %v", err)
		}
		r.Fio = fio.String
		r.Group = group.String
		r.Audience = audience.String
		r.Department = department.String
		r.Week = week.String
		r.Subgroup = subgroup.String
		r.SubjectName = subject.String
		r.LectureType = lectureType.String
		r.Institute = institute.String
		r.Specialty = specialty.String
		r.Course = course.String
		r.PeriodDates = period.String
		records = append(records, r)
	}
	return records, rows.Err()
}

// countRecords количество строк в timetable_cleaned
func countRecords(db *sql.DB) (int, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM timetable_cleaned").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчета записей: %v", err)
	}
	return count, nil
}
