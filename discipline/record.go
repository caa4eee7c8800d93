package discipline

// Значения недели в выходных записях.
const (
	WeekNumerator   = "числитель"
	WeekDenominator = "знаменатель"
	WeekBoth        = "обе недели"
)

// Типы занятий.
const (
	TypeLecture  = "лекция"
	TypePractice = "практика"
)

// Record одна нормализованная запись расписания, полученная из сырой
// ячейки дисциплины. Записи самодостаточны и после создания не меняются.
type Record struct {
	Audience    string `json:"audience"`
	SubjectName string `json:"subject_name"`
	LectureType string `json:"lecture_type"`
	Teacher     string `json:"teacher,omitempty"`
	WeekType    string `json:"week_type,omitempty"`
	Subgroup    int    `json:"subgroup,omitempty"`
}
