package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/tedmon1998/TimetableParser/discipline"
	"github.com/tedmon1998/TimetableParser/normalization"
	"github.com/tedmon1998/TimetableParser/rooms"
)

// application общие зависимости пайплайна: реестр аудиторий, разборщик
// ячеек, нормализатор названий и справочник преподавателей.
type application struct {
	decomposer   *discipline.Decomposer
	normalizer   *normalization.Normalizer
	teacherNames map[string]string
	db           *sql.DB
}

var app *application

func main() {
	var (
		serve        = flag.Bool("serve", false, "запустить HTTP сервер загрузки файлов")
		download     = flag.Bool("download", false, "скачать PDF расписания со страницы университета")
		pageURL      = flag.String("page", defaultSchedulePage, "адрес страницы с расписаниями")
		outDir       = flag.String("out", "output", "папка для результатов")
		roomsFile    = flag.String("rooms", "info/audiences.json", "файл реестра аудиторий")
		abbrevFile   = flag.String("abbreviations", "info/abbreviations.json", "файл сокращений дисциплин")
		teacherFile  = flag.String("teachers", "info/teacher_all.json", "справочник полных ФИО преподавателей")
		workloadFile = flag.String("workload", "", "CSV занятости для проверки достоверности")
		extractRooms = flag.String("extract-rooms", "", "извлечь реестр аудиторий из CSV занятости и выйти")
		mineAbbrev   = flag.Bool("mine-abbreviations", false, "пополнить файл сокращений по обработанным названиям")
		saveDB       = flag.Bool("db", false, "сохранить результат в PostgreSQL (строка подключения в db.conf)")
	)
	flag.Parse()

	app = newApplication(*roomsFile, *abbrevFile, *teacherFile)

	switch {
	case *download:
		downloaded, err := DownloadSchedules(*pageURL, "schedules_pdf")
		if err != nil {
			log.Fatal("Ошибка скачивания расписаний:", err)
		}
		log.Printf("Скачано файлов: %d", downloaded)
		return

	case *extractRooms != "":
		if err := extractRoomRegistry(*extractRooms, *roomsFile); err != nil {
			log.Fatal("Ошибка извлечения реестра аудиторий:", err)
		}
		return

	case *serve:
		db, err := connectToDB()
		if err != nil {
			log.Printf("БД недоступна, загрузки будут обработаны без сохранения: %v", err)
		} else {
			app.db = db
			defer db.Close()
		}
		runServer()
		return
	}

	files := flag.Args()
	if len(files) == 0 {
		log.Fatal("Укажите путь к файлу расписания: timetableParser [флаги] <файл>...")
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatal("Ошибка создания папки результатов:", err)
	}

	var all []ScheduleEntry
	for _, path := range files {
		entries, err := app.processScheduleFile(path, filepath.Base(path))
		if err != nil {
			log.Printf("Ошибка обработки %s: %v", path, err)
			continue
		}
		log.Printf("Файл %s: %d записей", path, len(entries))
		all = append(all, entries...)
	}
	if len(all) == 0 {
		log.Fatal("Не удалось извлечь ни одной записи")
	}

	if *mineAbbrev {
		if err := mineAbbreviations(all, *abbrevFile); err != nil {
			log.Printf("Ошибка пополнения сокращений: %v", err)
		}
	}

	csvOut := filepath.Join(*outDir, "timetable_processed.csv")
	jsonOut := filepath.Join(*outDir, "timetable_processed.json")
	excelOut := filepath.Join(*outDir, "timetable_processed.xlsx")

	if err := SaveEntriesCSV(all, csvOut); err != nil {
		log.Fatal("Ошибка сохранения CSV:", err)
	}
	log.Printf("Данные сохранены в CSV: %s", csvOut)

	if err := SaveEntriesJSON(all, jsonOut); err != nil {
		log.Fatal("Ошибка сохранения JSON:", err)
	}
	log.Printf("Данные сохранены в JSON: %s", jsonOut)

	if err := SaveEntriesExcel(all, excelOut); err != nil {
		log.Fatal("Ошибка сохранения Excel:", err)
	}
	log.Printf("Данные сохранены в Excel: %s", excelOut)

	if *workloadFile != "" {
		if err := validateAgainstWorkload(all, *workloadFile, filepath.Join(*outDir, "validation_errors.json")); err != nil {
			log.Printf("Ошибка проверки достоверности: %v", err)
		}
	}

	if *saveDB {
		db, err := connectToDB()
		if err != nil {
			log.Fatal("Ошибка подключения к БД:", err)
		}
		defer db.Close()

		inserted, err := SaveCleanedEntries(db, all)
		if err != nil {
			log.Fatal("Ошибка сохранения в БД:", err)
		}
		fmt.Printf("Успешно добавлено %d записей в базу данных\n", inserted)
	}
}

// newApplication собирает пайплайн. Отсутствие реестра, таблицы
// сокращений или справочника ФИО не останавливает разбор: работа
// продолжается в ухудшенном режиме.
func newApplication(roomsFile, abbrevFile, teacherFile string) *application {
	reg, err := rooms.LoadRegistry(roomsFile)
	if err != nil {
		log.Printf("Реестр аудиторий не загружен (%v), используются структурные паттерны", err)
		reg = rooms.NewRegistry(nil)
	} else {
		log.Printf("Загружено %d аудиторий из %s", reg.Len(), roomsFile)
	}

	var table *normalization.Table
	if file, err := normalization.LoadAbbreviationFile(abbrevFile); err != nil {
		log.Printf("Файл сокращений не загружен (%v), названия не расшифровываются", err)
	} else if table, err = file.Compile(); err != nil {
		log.Printf("Файл сокращений не скомпилирован (%v), названия не расшифровываются", err)
		table = nil
	} else {
		log.Printf("Загружено %d сокращений из %s", table.Len(), abbrevFile)
	}

	teacherNames, err := LoadTeacherNames(teacherFile)
	if err != nil {
		log.Printf("Справочник преподавателей не загружен (%v), используются короткие ФИО", err)
		teacherNames = map[string]string{}
	} else {
		log.Printf("Загружено %d вариантов ФИО преподавателей", len(teacherNames))
	}

	return &application{
		decomposer:   discipline.NewDecomposer(reg),
		normalizer:   normalization.NewNormalizer(table),
		teacherNames: teacherNames,
	}
}

// processScheduleFile определяет тип файла, разбирает его и прогоняет
// сырые ячейки через разборщик дисциплин. CSV занятости уже structured:
// его записи не декомпозируются.
func (a *application) processScheduleFile(path, originalName string) ([]ScheduleEntry, error) {
	fileType, err := detectFileType(path, originalName)
	if err != nil {
		return nil, err
	}
	log.Printf("Тип файла %s: %v", originalName, fileType)

	switch fileType {
	case FileTypePDFTimetable:
		raw, err := ParseTimetablePDF(path)
		if err != nil {
			return nil, err
		}
		return DecomposeEntries(raw, a.decomposer, a.normalizer), nil

	case FileTypeExcelTimetable:
		raw, err := ParseTimetableExcel(path, a.teacherNames)
		if err != nil {
			return nil, err
		}
		return DecomposeEntries(raw, a.decomposer, a.normalizer), nil

	case FileTypeCSVWorkload:
		entries, missing, err := ParseWorkloadCSV(path, a.teacherNames)
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			if err := SaveMissingTeachers(missing, "output/missing_teachers.csv"); err != nil {
				log.Printf("Ошибка сохранения списка преподавателей: %v", err)
			}
		}
		return entries, nil

	default:
		return nil, fmt.Errorf("неподдерживаемый тип файла: %v", fileType)
	}
}

// extractRoomRegistry строит реестр аудиторий из CSV занятости.
func extractRoomRegistry(workloadCSV, roomsFile string) error {
	rows, err := readCSVRows(workloadCSV)
	if err != nil {
		return err
	}

	found := rooms.ExtractFromRows(rows)
	if len(found) == 0 {
		return fmt.Errorf("в файле %s не найдено ни одной аудитории", workloadCSV)
	}

	if err := rooms.SaveRegistry(roomsFile, found); err != nil {
		return err
	}
	log.Printf("Сохранено %d аудиторий в %s", len(found), roomsFile)
	return nil
}

// mineAbbreviations ищет новые сокращения в обработанных названиях и
// дописывает их в файл. Существующие записи не перезаписываются.
func mineAbbreviations(entries []ScheduleEntry, abbrevFile string) error {
	file, err := normalization.LoadAbbreviationFile(abbrevFile)
	if err != nil {
		// Новый словарь начинается с известных медицинских паттернов
		file = normalization.NewAbbreviationFile()
		seeded, _ := file.MergeEntries("Известные", normalization.KnownPatternEntries(), normalization.KeepExisting)
		log.Printf("Создан новый словарь сокращений: %d известных паттернов", seeded)
	}

	subjects := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.SubjectName != "" {
			subjects = append(subjects, entry.SubjectName)
		}
	}

	mined := normalization.MineAbbreviations(subjects, file.Flatten())
	added, conflicts := file.MergeEntries("Другие", mined, normalization.KeepExisting)
	for _, conflict := range conflicts {
		log.Printf("Конфликт сокращения %q: оставлено %q, отклонено %q",
			conflict.Pattern, conflict.Existing, conflict.Incoming)
	}
	if err := file.Save(abbrevFile); err != nil {
		return err
	}
	if added == 0 {
		log.Printf("Новых сокращений не найдено, словарь сохранен в %s", abbrevFile)
		return nil
	}
	log.Printf("Добавлено %d сокращений в %s", added, abbrevFile)
	return nil
}

// validateAgainstWorkload сверяет результат с CSV занятости.
func validateAgainstWorkload(entries []ScheduleEntry, workloadCSV, reportPath string) error {
	workload, _, err := ParseWorkloadCSV(workloadCSV, app.teacherNames)
	if err != nil {
		return err
	}

	report := ValidateEntries(entries, BuildWorkloadIndex(workload))
	log.Printf("Найдено несоответствий: %d", report.TotalErrors)
	for errType, count := range report.ErrorsByType {
		log.Printf("  %s: %d", errType, count)
	}
	if report.TotalErrors == 0 {
		return nil
	}
	if err := SaveValidationReport(report, reportPath); err != nil {
		return err
	}
	log.Printf("Отчет сохранен в %s", reportPath)
	return nil
}
