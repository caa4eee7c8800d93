package main

import (
	"crypto/rand"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// generateFileName создает уникальное имя файла
func generateFileName(originalName string) string {
	ext := filepath.Ext(originalName)

	// Генерируем UUID v4
	uuid := make([]byte, 16)
	_, err := rand.Read(uuid)
	if err != nil {
		// Fallback: используем timestamp если crypto/rand не работает
		timestamp := time.Now().UnixNano()
		return fmt.Sprintf("%d%s", timestamp, ext)
	}

	// UUID v4 спецификация
	uuid[6] = (uuid[6] & 0x0f) | 0x40 // Version 4
	uuid[8] = (uuid[8] & 0x3f) | 0x80 // Variant is 10

	// Преобразуем в строку без дефисов
	guid := fmt.Sprintf("%x%x%x%x%x",
		uuid[0:4], uuid[4:6], uuid[6:8], uuid[8:10], uuid[10:16])

	return guid + ext
}

// isAllowedExtension проверяет только те расширения, которые может обработать detectFileType
func isAllowedExtension(ext string) bool {
	allowed := map[string]bool{
		".pdf":  true, // PDF расписания
		".xlsx": true, // Excel расписания
		".xls":  true, // Excel расписания (старый формат)
		".csv":  true, // CSV занятости преподавателей
	}
	return allowed[strings.ToLower(ext)]
}
