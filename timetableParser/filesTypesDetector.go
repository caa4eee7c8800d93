package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// FileType определяет тип входного файла
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypePDFTimetable     // PDF с сеткой расписания
	FileTypeExcelTimetable   // Excel с сеткой расписания
	FileTypeCSVWorkload      // CSV занятости преподавателей
)

func (t FileType) String() string {
	switch t {
	case FileTypePDFTimetable:
		return "PDF расписание"
	case FileTypeExcelTimetable:
		return "Excel расписание"
	case FileTypeCSVWorkload:
		return "CSV занятости"
	default:
		return "неизвестный"
	}
}

// fileExists проверяет существование файла
func fileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil
}

// detectFileType определяет тип файла по расширению и содержанию
func detectFileType(filePath string, originalName string) (FileType, error) {
	if !fileExists(filePath) {
		return FileTypeUnknown, fmt.Errorf("файл не существует: %s", filePath)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(filePath))
	}

	switch ext {
	case ".pdf":
		return FileTypePDFTimetable, nil
	case ".xlsx", ".xls":
		return detectExcelFileType(filePath)
	case ".csv":
		return FileTypeCSVWorkload, nil
	default:
		return FileTypeUnknown, fmt.Errorf("неподдерживаемый формат файла: %s", ext)
	}
}

// detectExcelFileType проверяет, что в Excel есть сетка расписания:
// заголовки "дисциплина" и "преподаватель" на одном из листов.
func detectExcelFileType(filePath string) (FileType, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return FileTypeUnknown, err
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		if findHeaderRow(rows) > 0 {
			return FileTypeExcelTimetable, nil
		}
	}

	return FileTypeUnknown, fmt.Errorf("не удалось определить формат Excel файла: %s", filePath)
}
