package normalization

import (
	"regexp"
	"strings"
)

// Случаи, когда после замены сокращения нет пробела перед следующим
// словом: "возрастнаяФизиология" -> "возрастная Физиология",
// "ая2Медицинская" -> "ая2 Медицинская". Слева только строчная буква
// или цифра: стык двух заглавных это аббревиатура, а не склейка.
var camelSeamPattern = regexp.MustCompile(`([а-яё0-9])([А-ЯЁ][а-яё]+)`)

// Общие правила нормализации, применяются после расшифровки сокращений.
var generalRules = []struct {
	re          *regexp.Regexp
	replacement string
}{
	// Лишние пробелы
	{regexp.MustCompile(`\s+`), " "},
	// Пробелы перед запятыми
	{regexp.MustCompile(`\s+,`), ","},
	// Пробел после запятой
	{regexp.MustCompile(`,([^\s])`), ", $1"},
	// Единый формат номера подгруппы
	{regexp.MustCompile(`п/г\s*(\d+)`), "п/г $1"},
}

// Normalizer приводит названия дисциплин к единому виду: расшифровывает
// сокращения по таблице и чинит пробелы и пунктуацию. Повторный запуск
// ничего не меняет: все паттерны потребляются первым проходом.
type Normalizer struct {
	table *Table
}

// NewNormalizer создает нормализатор. Таблица может быть nil:
// тогда применяются только общие правила.
func NewNormalizer(table *Table) *Normalizer {
	return &Normalizer{table: table}
}

// Normalize нормализует название дисциплины.
func (n *Normalizer) Normalize(name string) string {
	if name == "" {
		return name
	}

	result := n.table.Apply(name)
	result = camelSeamPattern.ReplaceAllString(result, "$1 $2")

	for _, rule := range generalRules {
		result = rule.re.ReplaceAllString(result, rule.replacement)
	}

	return strings.TrimSpace(result)
}
