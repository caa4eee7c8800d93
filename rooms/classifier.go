package rooms

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Паттерны аудиторий: буква + цифры (А539, У708, К506) и специальные залы.
// Классы символов заданы явно, потому что \b в RE2 не понимает кириллицу,
// границы слов проверяются вручную по рунам.
var (
	structuralRoomPattern = regexp.MustCompile(`(?i)[А-ЯЁ][А-ЯЁ]?[0-9]{2,4}`)
	exactRoomPattern      = regexp.MustCompile(`(?i)^[А-ЯЁ][А-ЯЁ]?[0-9]{2,4}$`)
	specialVenuePattern   = regexp.MustCompile(`(?i)СОКЦОМиД|СОКБ|ЭОиДОТ|ЭБЦ|ЦАС|УЦ|м/зал|бассейн|зал\s+2|зал\s+гимн`)
	innerSpacePattern     = regexp.MustCompile(`\s+`)
)

var specialVenues = []string{
	"СОКБ", "СОКЦОМиД", "ЭОиДОТ", "ЭБЦ", "ЦАС", "УЦ",
	"м/зал", "бассейн", "зал 2", "зал гимн",
}

// Match найденная в тексте аудитория с позицией вхождения.
type Match struct {
	Audience string // каноническая форма
	Start    int
	End      int
}

// Classifier решает, является ли токен аудиторией, и ищет аудитории
// в свободном тексте ячейки. Чистая функция над (текст, реестр).
type Classifier struct {
	reg *Registry
}

// NewClassifier создает классификатор поверх реестра аудиторий.
// Реестр может быть пустым, тогда работает деградированный режим:
// поиск только по структурным паттернам и специальным залам.
func NewClassifier(reg *Registry) *Classifier {
	if reg == nil {
		reg = NewRegistry(nil)
	}
	return &Classifier{reg: reg}
}

// Registry возвращает реестр, с которым работает классификатор.
func (c *Classifier) Registry() *Registry {
	return c.reg
}

// IsRoom проверяет, является ли токен аудиторией: точное совпадение
// с реестром, структурный паттерн (А539, У708) или специальный зал.
func (c *Classifier) IsRoom(token string) bool {
	token = strings.TrimSpace(token)
	if token == "" {
		return false
	}
	if c.reg.Contains(token) {
		return true
	}
	if exactRoomPattern.MatchString(token) {
		return true
	}
	normalized := innerSpacePattern.ReplaceAllString(token, " ")
	for _, venue := range specialVenues {
		if strings.EqualFold(normalized, venue) {
			return true
		}
	}
	return false
}

// FindMatches ищет все вхождения аудиторий в тексте. При непустом реестре
// ищутся только его элементы (защита от случайных буквенно-цифровых
// последовательностей), при пустом включается структурный поиск.
func (c *Classifier) FindMatches(text string) []Match {
	if text == "" {
		return nil
	}
	if c.reg.Len() > 0 {
		return c.registryMatches(text)
	}
	return c.structuralMatches(text)
}

// FindRooms возвращает уникальные аудитории в порядке первого вхождения.
func (c *Classifier) FindRooms(text string) []string {
	var rooms []string
	seen := make(map[string]bool)
	for _, m := range c.FindMatches(text) {
		if seen[m.Audience] {
			continue
		}
		seen[m.Audience] = true
		rooms = append(rooms, m.Audience)
	}
	return rooms
}

// registryMatches ищет элементы реестра, длинные сначала, чтобы короткое
// имя не съедало часть более длинного ("У" внутри "УЦ2").
func (c *Classifier) registryMatches(text string) []Match {
	lower := strings.ToLower(text)
	covered := make([]bool, len(text))
	var matches []Match
	for _, aud := range c.reg.ByLengthDesc() {
		needle := strings.ToLower(aud)
		for _, span := range findBounded(lower, needle) {
			if overlaps(covered, span[0], span[1]) {
				continue
			}
			markCovered(covered, span[0], span[1])
			matches = append(matches, Match{Audience: aud, Start: span[0], End: span[1]})
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Start < matches[j].Start })
	return matches
}

// structuralMatches ищет аудитории по паттернам, когда реестр недоступен.
func (c *Classifier) structuralMatches(text string) []Match {
	covered := make([]bool, len(text))
	var matches []Match
	for _, pattern := range []*regexp.Regexp{specialVenuePattern, structuralRoomPattern} {
		for _, span := range pattern.FindAllStringIndex(text, -1) {
			if !boundedAt(text, span[0], span[1]) || overlaps(covered, span[0], span[1]) {
				continue
			}
			markCovered(covered, span[0], span[1])
			aud := innerSpacePattern.ReplaceAllString(text[span[0]:span[1]], " ")
			matches = append(matches, Match{Audience: aud, Start: span[0], End: span[1]})
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Start < matches[j].Start })
	return matches
}

// findBounded возвращает все вхождения needle в text с границами слова.
func findBounded(text, needle string) [][2]int {
	if needle == "" {
		return nil
	}
	var spans [][2]int
	for offset := 0; ; {
		idx := strings.Index(text[offset:], needle)
		if idx < 0 {
			break
		}
		start := offset + idx
		end := start + len(needle)
		if boundedAt(text, start, end) {
			spans = append(spans, [2]int{start, end})
		}
		offset = start + 1
	}
	return spans
}

// IsBounded проверяет, что вхождение [start:end) не прилегает
// к букве или цифре: АБВ539Г не содержит аудиторию А539.
func IsBounded(text string, start, end int) bool {
	return boundedAt(text, start, end)
}

func boundedAt(text string, start, end int) bool {
	if start > 0 {
		prev, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(prev) {
			return false
		}
	}
	if end < len(text) {
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

func overlaps(covered []bool, start, end int) bool {
	for i := start; i < end && i < len(covered); i++ {
		if covered[i] {
			return true
		}
	}
	return false
}

func markCovered(covered []bool, start, end int) {
	for i := start; i < end && i < len(covered); i++ {
		covered[i] = true
	}
}
