package rooms

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Настройки извлечения аудиторий из файла занятости преподавателей.
var (
	roomPrefixes = []string{"У", "К", "А", "Г", "УЦ", "л/б", "п/б", "ЭБЦ", "ЦАС", "СОКЦОМиД", "СОКБ", "С"}

	exactRoomNames = []string{"м/зал", "бассейн", "зал 2", "зал гимн"}

	// Разделители для множественных аудиторий в одной ячейке
	splitDelimiters = []string{",", ";", "/", "|", "\n"}

	// Варианты заголовков колонок с аудиториями
	auditoriumHeaders = []string{"аудитория", "кабинет", "место", "ауд.", "room"}
)

// NormalizeRoom обрезает пробелы и схлопывает внутренние пробелы,
// сохраняя исходный регистр.
func NormalizeRoom(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return innerSpacePattern.ReplaceAllString(value, " ")
}

// LooksLikeRoom грубая префиксная проверка для колоночного сканирования.
// Точная классификация свободного текста выполняется в Classifier.
func LooksLikeRoom(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	for _, exact := range exactRoomNames {
		if value == exact {
			return true
		}
	}
	if strings.Contains(value, "ЭОиДОТ") {
		return true
	}
	for _, prefix := range roomPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

// SplitRooms разделяет значение ячейки на отдельные аудитории.
func SplitRooms(cell string) []string {
	if cell == "" {
		return nil
	}
	parts := []string{cell}
	for _, delimiter := range splitDelimiters {
		var next []string
		for _, part := range parts {
			next = append(next, strings.Split(part, delimiter)...)
		}
		parts = next
	}
	var found []string
	for _, part := range parts {
		normalized := NormalizeRoom(part)
		if normalized != "" && LooksLikeRoom(normalized) {
			found = append(found, normalized)
		}
	}
	return found
}

// FindAuditoriumColumns находит индексы колонок с аудиториями по заголовкам.
func FindAuditoriumColumns(headers []string) []int {
	var indices []int
	for i, header := range headers {
		lower := strings.ToLower(strings.TrimSpace(header))
		for _, keyword := range auditoriumHeaders {
			if strings.Contains(lower, keyword) {
				indices = append(indices, i)
				break
			}
		}
	}
	return indices
}

// ExtractFromRows извлекает все уникальные аудитории из строк CSV
// (первая строка считается заголовком). Если колонки не нашлись по
// заголовкам, берется колонка с наибольшим числом похожих на аудитории
// значений среди первых ста строк.
func ExtractFromRows(records [][]string) []string {
	if len(records) == 0 {
		return nil
	}
	headers := records[0]
	rows := records[1:]

	indices := FindAuditoriumColumns(headers)
	if len(indices) == 0 {
		if best, ok := bestRoomColumn(rows); ok {
			indices = []int{best}
		}
	}
	if len(indices) == 0 {
		return nil
	}

	set := make(map[string]bool)
	for _, row := range rows {
		for _, col := range indices {
			if col < len(row) {
				for _, room := range SplitRooms(row[col]) {
					set[room] = true
				}
			}
		}
	}

	result := make([]string, 0, len(set))
	for room := range set {
		result = append(result, room)
	}
	sort.Strings(result)
	return result
}

// bestRoomColumn сканирует первые сто строк и выбирает колонку
// с наибольшим количеством значений, похожих на аудитории.
func bestRoomColumn(rows [][]string) (int, bool) {
	counts := make(map[int]int)
	for i, row := range rows {
		if i >= 100 {
			break
		}
		for col, cell := range row {
			counts[col] += len(SplitRooms(cell))
		}
	}
	best, bestCount, found := 0, 0, false
	for col, count := range counts {
		if count > bestCount {
			best, bestCount, found = col, count, true
		}
	}
	return best, found
}

// SaveRegistry записывает список аудиторий в JSON файл реестра.
func SaveRegistry(path string, audiences []string) error {
	data, err := json.MarshalIndent(audiences, "", "  ")
	if err != nil {
		return fmt.Errorf("ошибка при сериализации аудиторий: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("ошибка при записи файла аудиторий %s: %v", path, err)
	}
	return nil
}
