package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"
)

var entryCSVHeader = []string{
	"fio", "pair_number", "day_of_week", "group", "audience", "department",
	"week", "subgroup", "num_subgroups", "is_external", "is_remote", "subject_name",
}

var entryExcelHeader = []string{
	"ФИО", "Номер пары", "День недели", "Группа", "Аудитория", "Кафедра",
	"Неделя", "Подгруппа", "Кол-во подгрупп", "Внешний", "Дистанционно", "Название предмета",
}

// SaveEntriesCSV пишет записи в CSV с BOM: без него Excel открывает
// кириллицу в неверной кодировке.
func SaveEntriesCSV(entries []ScheduleEntry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}

	writer := csv.NewWriter(f)
	if err := writer.Write(entryCSVHeader); err != nil {
		return err
	}
	for _, entry := range entries {
		row := []string{
			entry.Fio,
			strconv.Itoa(entry.PairNumber),
			entry.DayOfWeek,
			entry.Group,
			entry.Audience,
			entry.Department,
			entry.Week,
			entry.Subgroup,
			strconv.Itoa(entry.NumSubgroups),
			pythonBool(entry.IsExternal),
			pythonBool(entry.IsRemote),
			entry.SubjectName,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// SaveEntriesJSON пишет записи в JSON с отступами.
func SaveEntriesJSON(entries []ScheduleEntry, path string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SaveEntriesExcel пишет стилизованный отчет: жирная шапка, ширина
// колонок по содержимому, первая строка закреплена.
func SaveEntriesExcel(entries []ScheduleEntry, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Расписание"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	widths := make([]int, len(entryExcelHeader))
	for i, header := range entryExcelHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return err
		}
		widths[i] = len([]rune(header))
	}

	for rowIdx, entry := range entries {
		values := []string{
			entry.Fio,
			strconv.Itoa(entry.PairNumber),
			entry.DayOfWeek,
			entry.Group,
			entry.Audience,
			entry.Department,
			entry.Week,
			entry.Subgroup,
			strconv.Itoa(entry.NumSubgroups),
			russianBool(entry.IsExternal),
			russianBool(entry.IsRemote),
			entry.SubjectName,
		}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
			if n := len([]rune(value)); n > widths[colIdx] {
				widths[colIdx] = n
			}
		}
	}

	for i, width := range widths {
		adjusted := width + 2
		if adjusted > 50 {
			adjusted = 50
		}
		column, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, column, column, float64(adjusted)); err != nil {
			return err
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	return f.SaveAs(path)
}

// SaveMissingTeachers пишет короткие ФИО без полного имени в справочнике.
func SaveMissingTeachers(missing []string, path string) error {
	if len(missing) == 0 {
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}

	writer := csv.NewWriter(f)
	if err := writer.Write([]string{"short_fio"}); err != nil {
		return err
	}
	for _, fio := range missing {
		if err := writer.Write([]string{fio}); err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	fmt.Printf("Сохранено %d преподавателей без полного ФИО в %s\n", len(missing), path)
	return nil
}

// Булевы значения пишутся как в выгрузках деканата
func pythonBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

func russianBool(v bool) string {
	if v {
		return "Да"
	}
	return "Нет"
}
