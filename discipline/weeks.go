package discipline

import "strings"

// SplitWeeks определяет разделение ячейки по числителю/знаменателю.
//
// "//" разделяет по последнему вхождению: все до него относится
// к числителю, хвост к знаменателю. Одиночный "/" считается границей
// недель только если в тексте нигде нет маркера подгруппы ("п/г" сам
// содержит "/") и обе стороны непусты после обрезки, иначе висящий
// слэш остался бы от пунктуации.
func SplitWeeks(text string) (numerator, denominator string, ok bool) {
	if text == "" {
		return "", "", false
	}

	if idx := strings.LastIndex(text, "//"); idx >= 0 {
		numerator = strings.TrimSpace(strings.ReplaceAll(text[:idx], "//", " "))
		denominator = strings.TrimSpace(text[idx+2:])
		return numerator, denominator, true
	}

	if strings.Contains(text, "/") {
		lower := strings.ToLower(text)
		if strings.Contains(lower, "п/г") || strings.Contains(lower, "подгруппа") {
			return "", "", false
		}
		parts := strings.SplitN(text, "/", 2)
		numerator = strings.TrimSpace(parts[0])
		denominator = strings.TrimSpace(parts[1])
		if numerator != "" && denominator != "" {
			return numerator, denominator, true
		}
	}

	return "", "", false
}

// SplitTeachers разделяет поле преподавателя по первому "/":
// первый для числителя, второй для знаменателя. Без "/" один
// преподаватель ведет обе недели.
func SplitTeachers(teacherText string) (numerator, denominator string) {
	teacherText = strings.TrimSpace(teacherText)
	if teacherText == "" {
		return "", ""
	}
	if strings.Contains(teacherText, "/") {
		parts := strings.SplitN(teacherText, "/", 2)
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return teacherText, teacherText
}
