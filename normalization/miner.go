package normalization

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Известные паттерны сокращений медицинских дисциплин.
var knownAbbrevForms = map[string]string{
	"медиц":    "медицинская",
	"эмбр":     "эмбриология",
	"цитол":    "цитология",
	"цит":      "цитология",
	"вирусол":  "вирусология",
	"вирус":    "вирусология",
	"анат":     "анатомия",
	"физиол":   "физиология",
	"пат":      "патологическая",
	"нормальн": "нормальная",
	"возр":     "возрастная",
	"опер":     "оперативная",
	"адап":     "адаптационная",
	"хир":      "хирургия",
	"топ":      "топографическая",
	"проф":     "профессиональной",
	"ин":       "иностранный",
	"гч":       "генетики человека",
}

var (
	dottedAbbrevPattern = regexp.MustCompile(`([А-ЯЁ][а-яё]{0,4})\.`)
	acronymPattern      = regexp.MustCompile(`[А-ЯЁ]{2,4}`)
	wordPattern         = regexp.MustCompile(`[А-ЯЁа-яё]+`)
)

// KnownPatternEntries разворачивает известные формы в записи словаря
// в обоих регистрах; короткие аббревиатуры добавляются и без точки.
func KnownPatternEntries() map[string]string {
	entries := make(map[string]string)
	for abbrev, full := range knownAbbrevForms {
		entries[`\b`+capitalize(abbrev)+`\.`] = capitalize(full)
		entries[`\b`+abbrev+`\.`] = full
		if utf8.RuneCountInString(abbrev) <= 4 {
			entries[`\b`+strings.ToUpper(abbrev)+`\b`] = full
			entries[`\b`+abbrev+`\b`] = full
		}
	}
	return entries
}

// MineAbbreviations ищет потенциальные сокращения в названиях дисциплин:
// формы с точкой ("Медиц.", "эмбр.") и короткие аббревиатуры ("ГЧ").
// Уже известные существующему словарю паттерны пропускаются, для
// неизвестных расшифровка подбирается по другим дисциплинам.
func MineAbbreviations(disciplines []string, existing map[string]string) map[string]string {
	found := make(map[string]string)
	contexts := make(map[string]int)

	for _, discipline := range disciplines {
		for _, idx := range dottedAbbrevPattern.FindAllStringSubmatchIndex(discipline, -1) {
			if !leftBounded(discipline, idx[2]) {
				continue
			}
			abbrev := discipline[idx[2]:idx[3]]
			key := `\b` + abbrev + `\.`
			if _, ok := existing[key]; ok {
				continue
			}
			if full, ok := knownAbbrevForms[strings.ToLower(abbrev)]; ok {
				if startsUpper(abbrev) {
					full = capitalize(full)
				}
				found[key] = full
				continue
			}
			contexts[abbrev]++
		}

		for _, span := range acronymPattern.FindAllStringIndex(discipline, -1) {
			if !leftBounded(discipline, span[0]) || !rightBounded(discipline, span[1]) {
				continue
			}
			abbrev := discipline[span[0]:span[1]]
			key := `\b` + abbrev + `\b`
			if _, ok := existing[key]; ok {
				continue
			}
			if full, ok := knownAbbrevForms[strings.ToLower(abbrev)]; ok {
				found[key] = full
			}
		}
	}

	// Сокращения без известного паттерна: расшифровку ищем среди
	// полных слов других дисциплин, если форма встретилась хотя бы дважды
	for abbrev, count := range contexts {
		if count < 2 {
			continue
		}
		if full := findFullForm(abbrev, disciplines); full != "" {
			found[`\b`+abbrev+`\.`] = full
		}
	}

	return found
}

// findFullForm подбирает полную форму сокращения: слово, начинающееся
// с тех же букв и строго длиннее.
func findFullForm(abbrev string, disciplines []string) string {
	prefix := strings.ToLower(abbrev)
	for _, discipline := range disciplines {
		for _, word := range wordPattern.FindAllString(discipline, -1) {
			lower := strings.ToLower(word)
			if strings.HasPrefix(lower, prefix) && utf8.RuneCountInString(word) > utf8.RuneCountInString(abbrev) {
				return word
			}
		}
	}
	return ""
}

func leftBounded(text string, start int) bool {
	if start == 0 {
		return true
	}
	prev, _ := utf8.DecodeLastRuneInString(text[:start])
	return !isWordRune(prev)
}

func rightBounded(text string, end int) bool {
	if end >= len(text) {
		return true
	}
	next, _ := utf8.DecodeRuneInString(text[end:])
	return !isWordRune(next)
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
