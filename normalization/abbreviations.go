package normalization

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ConflictPolicy политика разрешения конфликтов при слиянии словарей.
type ConflictPolicy int

const (
	// KeepExisting существующая запись побеждает, конфликт попадает в отчет
	KeepExisting ConflictPolicy = iota
	// Overwrite новая запись затирает существующую
	Overwrite
)

// Conflict конфликт слияния: один паттерн, две разные расшифровки.
// Это сигнал о качестве данных, а не ошибка обработки.
type Conflict struct {
	Pattern  string
	Existing string
	Incoming string
}

// AbbreviationFile словарь сокращений в формате файла abbreviations.json:
// паттерны сгруппированы по категориям, плюс служебные метаданные.
type AbbreviationFile struct {
	Abbreviations map[string]map[string]string `json:"abbreviations"`
	Metadata      map[string]string            `json:"metadata,omitempty"`
}

// NewAbbreviationFile создает пустой словарь.
func NewAbbreviationFile() *AbbreviationFile {
	return &AbbreviationFile{
		Abbreviations: make(map[string]map[string]string),
		Metadata: map[string]string{
			"version":     "1.0",
			"description": "Словарь сокращений для нормализации названий дисциплин",
		},
	}
}

// LoadAbbreviationFile читает словарь сокращений из JSON файла.
// Ошибка не фатальна для конвейера: нормализация без словаря
// сводится к общим правилам пунктуации.
func LoadAbbreviationFile(path string) (*AbbreviationFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка при загрузке сокращений: %v", err)
	}
	var file AbbreviationFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("ошибка при разборе файла сокращений %s: %v", path, err)
	}
	if file.Abbreviations == nil {
		file.Abbreviations = make(map[string]map[string]string)
	}
	return &file, nil
}

// Save записывает словарь в JSON файл.
func (f *AbbreviationFile) Save(path string) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("ошибка при сериализации сокращений: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("ошибка при записи файла сокращений %s: %v", path, err)
	}
	return nil
}

// Flatten объединяет все категории в один словарь паттернов.
func (f *AbbreviationFile) Flatten() map[string]string {
	flat := make(map[string]string)
	for _, category := range f.Abbreviations {
		for pattern, replacement := range category {
			flat[pattern] = replacement
		}
	}
	return flat
}

// Lookup ищет паттерн по всем категориям.
func (f *AbbreviationFile) Lookup(pattern string) (string, bool) {
	for _, category := range f.Abbreviations {
		if replacement, ok := category[pattern]; ok {
			return replacement, true
		}
	}
	return "", false
}

// MergeEntries вливает записи в указанную категорию. При конфликте
// существующая запись побеждает (KeepExisting), конфликты возвращаются
// вызывающему для предупреждений оператору.
func (f *AbbreviationFile) MergeEntries(category string, entries map[string]string, policy ConflictPolicy) (int, []Conflict) {
	if f.Abbreviations == nil {
		f.Abbreviations = make(map[string]map[string]string)
	}
	added := 0
	var conflicts []Conflict
	patterns := make([]string, 0, len(entries))
	for pattern := range entries {
		patterns = append(patterns, pattern)
	}
	sort.Strings(patterns)
	for _, pattern := range patterns {
		replacement := entries[pattern]
		existing, found := f.Lookup(pattern)
		if !found {
			if f.Abbreviations[category] == nil {
				f.Abbreviations[category] = make(map[string]string)
			}
			f.Abbreviations[category][pattern] = replacement
			added++
			continue
		}
		if existing == replacement {
			continue
		}
		conflicts = append(conflicts, Conflict{Pattern: pattern, Existing: existing, Incoming: replacement})
		if policy == Overwrite {
			f.replace(pattern, replacement)
		}
	}
	return added, conflicts
}

func (f *AbbreviationFile) replace(pattern, replacement string) {
	for _, category := range f.Abbreviations {
		if _, ok := category[pattern]; ok {
			category[pattern] = replacement
			return
		}
	}
}

// Compile собирает таблицу замен из всех категорий словаря.
func (f *AbbreviationFile) Compile() (*Table, error) {
	return NewTable(f.Flatten())
}

// abbrevEntry скомпилированный паттерн замены. Якоря \b из файла
// обрабатываются вручную: RE2 считает словом только ASCII.
type abbrevEntry struct {
	pattern     string
	replacement string
	re          *regexp.Regexp
	boundLeft   bool
	boundRight  bool
}

// Table упорядоченная таблица замен сокращений. Применяется как
// последовательность подстановок: длинные паттерны раньше коротких,
// чтобы короткий не обрезал расшифровку более длинного.
type Table struct {
	entries []abbrevEntry
}

// NewTable компилирует таблицу из словаря паттерн -> расшифровка.
func NewTable(patterns map[string]string) (*Table, error) {
	keys := make([]string, 0, len(patterns))
	for pattern := range patterns {
		keys = append(keys, pattern)
	}
	// Порядок применения детерминирован: по убыванию длины, затем лексикографически
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	table := &Table{entries: make([]abbrevEntry, 0, len(keys))}
	for _, pattern := range keys {
		entry, err := compileAbbrevPattern(pattern, patterns[pattern])
		if err != nil {
			return nil, fmt.Errorf("некорректный паттерн сокращения %q: %v", pattern, err)
		}
		table.entries = append(table.entries, entry)
	}
	return table, nil
}

// Len возвращает количество замен в таблице.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Apply последовательно применяет все замены таблицы к тексту.
func (t *Table) Apply(text string) string {
	if t == nil || text == "" {
		return text
	}
	for _, entry := range t.entries {
		text = entry.apply(text)
	}
	return text
}

func compileAbbrevPattern(pattern, replacement string) (abbrevEntry, error) {
	body := pattern
	entry := abbrevEntry{pattern: pattern, replacement: replacement}
	if strings.HasPrefix(body, `\b`) {
		entry.boundLeft = true
		body = body[2:]
	}
	if strings.HasSuffix(body, `\b`) {
		entry.boundRight = true
		body = body[:len(body)-2]
	}
	re, err := regexp.Compile(body)
	if err != nil {
		return abbrevEntry{}, err
	}
	entry.re = re
	return entry, nil
}

// apply заменяет все вхождения с ручной проверкой границ слова.
func (e abbrevEntry) apply(text string) string {
	spans := e.re.FindAllStringIndex(text, -1)
	if spans == nil {
		return text
	}
	var builder strings.Builder
	pos := 0
	for _, span := range spans {
		if span[0] < pos || !e.bounded(text, span[0], span[1]) {
			continue
		}
		builder.WriteString(text[pos:span[0]])
		builder.WriteString(e.replacement)
		pos = span[1]
	}
	builder.WriteString(text[pos:])
	return builder.String()
}

func (e abbrevEntry) bounded(text string, start, end int) bool {
	if e.boundLeft && start > 0 {
		prev, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(prev) {
			return false
		}
	}
	if e.boundRight && end < len(text) {
		next, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(next) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
