package main

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

const createCleanedTableQuery = `
CREATE TABLE IF NOT EXISTS timetable_cleaned (
	id SERIAL PRIMARY KEY,
	fio TEXT,
	pair_number INTEGER,
	day_of_week TEXT,
	group_name TEXT,
	audience TEXT,
	department TEXT,
	week TEXT,
	subgroup TEXT,
	num_subgroups INTEGER,
	is_external BOOLEAN,
	is_remote BOOLEAN,
	subject_name TEXT,
	lecture_type TEXT,
	institute TEXT,
	specialty TEXT,
	course TEXT,
	period_dates TEXT,
	created_at TIMESTAMP DEFAULT NOW()
)`

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

// SaveCleanedEntries перезаписывает таблицу timetable_cleaned: старая
// выгрузка полностью заменяется новой.
func SaveCleanedEntries(db *sql.DB, entries []ScheduleEntry) (int, error) {
	if _, err := db.Exec(createCleanedTableQuery); err != nil {
		return 0, fmt.Errorf("ошибка создания таблицы timetable_cleaned: %v", err)
	}
	if _, err := db.Exec("TRUNCATE timetable_cleaned"); err != nil {
		return 0, fmt.Errorf("ошибка очистки таблицы timetable_cleaned: %v", err)
	}

	query := `
	INSERT INTO timetable_cleaned (
		fio, pair_number, day_of_week, group_name, audience, department,
		week, subgroup, num_subgroups, is_external, is_remote, subject_name,
		lecture_type, institute, specialty, course, period_dates
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	inserted := 0
	for _, entry := range entries {
		_, err := db.Exec(query,
			toNullString(entry.Fio),
			entry.PairNumber,
			entry.DayOfWeek,
			toNullString(entry.Group),
			toNullString(entry.Audience),
			toNullString(entry.Department),
			toNullString(entry.Week),
			toNullString(entry.Subgroup),
			entry.NumSubgroups,
			entry.IsExternal,
			entry.IsRemote,
			toNullString(entry.SubjectName),
			toNullString(entry.LectureType),
			toNullString(entry.Institute),
			toNullString(entry.Specialty),
			toNullString(entry.Course),
			toNullString(entry.PeriodDates),
		)
		if err != nil {
			return inserted, fmt.Errorf("ошибка вставки записи для группы %s: %v", entry.Group, err)
		}
		inserted++
	}

	return inserted, nil
}

// toNullString пустые строки хранятся как NULL
func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
