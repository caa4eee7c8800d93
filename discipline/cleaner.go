package discipline

import (
	"regexp"
	"sort"
	"strings"

	"github.com/tedmon1998/TimetableParser/rooms"
)

// Порядок шагов очистки важен: маркеры подгрупп убираются до аудиторий,
// чтобы освободившиеся запятые подобрал финальный проход по пунктуации.
var (
	// Пометки типа занятия и часов: (лек), (пр), (лекция 8 ч), (24 ч)
	annotationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\(лекция\s*\d+\s*ч\)`),
		regexp.MustCompile(`(?i)\(лек\s*\d+\s*ч\)`),
		regexp.MustCompile(`(?i)\(практика\)`),
		regexp.MustCompile(`(?i)\(лекция\)`),
		regexp.MustCompile(`(?i)\(лек\)`),
		regexp.MustCompile(`(?i)\(пр\)`),
		regexp.MustCompile(`(?i)\(\d+\s*ч\)`),
	}

	// Маркеры подгрупп: сначала с запятой, затем с пробелом, затем любые
	subgroupRemovalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i),\s*п/г\s*\d+`),
		regexp.MustCompile(`(?i)\s+п/г\s*\d+`),
		regexp.MustCompile(`(?i)п/г\s*\d+`),
		regexp.MustCompile(`(?i),\s*подгруппа\s*\d+`),
		regexp.MustCompile(`(?i)\s+подгруппа\s*\d+`),
		regexp.MustCompile(`(?i)подгруппа\s*\d+`),
	}

	// Аудитории по структурному паттерну убираются только после запятой,
	// иначе пострадали бы названия вида "Витамин В12"
	commaRoomPattern = regexp.MustCompile(`(?i),\s*([А-ЯЁ][А-ЯЁ]?\d{2,4}|СОКБ|СОКЦОМиД|ЭОиДОТ|ЭБЦ|ЦАС|УЦ|бассейн|зал\s+2|зал\s+гимн)`)

	weekSeparatorPattern = regexp.MustCompile(`\s*//\s*`)
	multiSpacePattern    = regexp.MustCompile(`\s+`)
	doubleCommaPattern   = regexp.MustCompile(`,\s*,`)
	trailingCommaPattern = regexp.MustCompile(`,\s*$`)
)

// Cleaner очищает название предмета от лишних символов: (лек), (пр),
// п/г, аудиторий и т.д. Результат идемпотентен: повторная очистка
// ничего не меняет.
type Cleaner struct {
	cls *rooms.Classifier
}

// NewCleaner создает очиститель поверх классификатора аудиторий.
func NewCleaner(cls *rooms.Classifier) *Cleaner {
	if cls == nil {
		cls = rooms.NewClassifier(nil)
	}
	return &Cleaner{cls: cls}
}

// Clean возвращает название предмета без пометок, подгрупп и аудиторий.
func (c *Cleaner) Clean(text string) string {
	if text == "" {
		return text
	}

	for _, pattern := range annotationPatterns {
		text = pattern.ReplaceAllString(text, "")
	}

	for _, pattern := range subgroupRemovalPatterns {
		text = pattern.ReplaceAllString(text, "")
	}

	text = c.removeKnownRooms(text)
	text = c.removeCommaPrefixedRooms(text)

	// "//" схлопывается в пробел, а не удаляется, иначе соседние
	// токены склеились бы
	text = weekSeparatorPattern.ReplaceAllString(text, " ")

	text = multiSpacePattern.ReplaceAllString(text, " ")
	text = doubleCommaPattern.ReplaceAllString(text, ",")
	text = trailingCommaPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(strings.Trim(text, ", "))
}

// removeKnownRooms вырезает все найденные классификатором аудитории
// вместе с прилегающей слева пунктуацией ("Гистология, А539" -> "Гистология").
func (c *Cleaner) removeKnownRooms(text string) string {
	matches := c.cls.FindMatches(text)
	if len(matches) == 0 {
		return text
	}
	spans := make([][2]int, 0, len(matches))
	for _, m := range matches {
		spans = append(spans, [2]int{extendLeft(text, m.Start), m.End})
	}
	return deleteSpans(text, spans)
}

// removeCommaPrefixedRooms убирает ", А539" и подобные хвосты
// по структурному паттерну независимо от реестра.
func (c *Cleaner) removeCommaPrefixedRooms(text string) string {
	var spans [][2]int
	for _, idx := range commaRoomPattern.FindAllStringSubmatchIndex(text, -1) {
		// idx[2]:idx[3] это сама аудитория, граница проверяется по ней
		if rooms.IsBounded(text, idx[2], idx[3]) {
			spans = append(spans, [2]int{idx[0], idx[1]})
		}
	}
	if len(spans) == 0 {
		return text
	}
	return deleteSpans(text, spans)
}

// extendLeft расширяет вырезаемый участок влево через пробелы
// и одну запятую перед ними.
func extendLeft(text string, start int) int {
	for start > 0 && (text[start-1] == ' ' || text[start-1] == '\t') {
		start--
	}
	if start > 0 && text[start-1] == ',' {
		start--
	}
	return start
}

// deleteSpans удаляет непересекающиеся участки из строки.
func deleteSpans(text string, spans [][2]int) string {
	sort.Slice(spans, func(i, j int) bool { return spans[i][0] < spans[j][0] })
	var builder strings.Builder
	pos := 0
	for _, span := range spans {
		if span[0] < pos {
			continue
		}
		builder.WriteString(text[pos:span[0]])
		pos = span[1]
	}
	builder.WriteString(text[pos:])
	return builder.String()
}
