package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
)

// Структура для JSON ответа
type UploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		FileName      string `json:"file_name,omitempty"`
		OriginalName  string `json:"original_name,omitempty"`
		FileType      string `json:"file_type,omitempty"`
		ParsedCount   int    `json:"parsed_count,omitempty"`
		InsertedCount int    `json:"inserted_count,omitempty"`
	} `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

func uploadFileHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	response := UploadResponse{}

	if r.Method != "POST" {
		sendJSONError(w, "Метод не поддерживается", http.StatusMethodNotAllowed)
		return
	}

	// Парсим multipart форму (максимальный размер 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		sendJSONError(w, fmt.Sprintf("Ошибка чтения формы: %v", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		sendJSONError(w, fmt.Sprintf("Ошибка получения файла: %v", err), http.StatusBadRequest)
		return
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	if !isAllowedExtension(ext) {
		sendJSONError(w, "Недопустимый тип файла. Разрешены: PDF (.pdf), Excel (.xlsx, .xls), CSV (.csv)", http.StatusBadRequest)
		return
	}

	// Сохраняем файл под уникальным именем
	newFileName := generateFileName(header.Filename)
	filePath := filepath.Join(uploadDir, newFileName)

	dst, err := os.Create(filePath)
	if err != nil {
		sendJSONError(w, fmt.Sprintf("Ошибка создания файла: %v", err), http.StatusInternalServerError)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		sendJSONError(w, fmt.Sprintf("Ошибка сохранения файла: %v", err), http.StatusInternalServerError)
		return
	}

	fileType, err := detectFileType(filePath, header.Filename)
	if err != nil {
		sendJSONError(w, fmt.Sprintf("Ошибка определения типа файла: %v", err), http.StatusBadRequest)
		return
	}
	log.Printf("Загружен файл %s (%s)", header.Filename, fileType)

	entries, err := app.processScheduleFile(filePath, header.Filename)
	if err != nil {
		sendJSONError(w, fmt.Sprintf("Ошибка разбора файла: %v", err), http.StatusInternalServerError)
		return
	}

	// При наличии подключения результат сразу попадает в БД
	if app.db != nil {
		if err := app.db.Ping(); err != nil {
			if newDB, err := connectToDB(); err == nil {
				app.db = newDB
			} else {
				log.Printf("Переподключение к БД не удалось: %v", err)
				app.db = nil
			}
		}
	}
	if app.db != nil {
		inserted, err := SaveCleanedEntries(app.db, entries)
		if err != nil {
			log.Printf("Ошибка сохранения в БД: %v", err)
		} else {
			log.Printf("Сохранено %d записей в базу данных", inserted)
			response.Data.InsertedCount = inserted
		}
	}

	response.Success = true
	response.Message = "Файл успешно загружен и обработан"
	response.Data.FileName = newFileName
	response.Data.OriginalName = header.Filename
	response.Data.FileType = fileType.String()
	response.Data.ParsedCount = len(entries)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// Вспомогательная функция для отправки ошибок в JSON формате
func sendJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	response := UploadResponse{
		Success: false,
		Error:   message,
	}
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}
