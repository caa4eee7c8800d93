package rooms

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Registry хранит список валидных аудиторий, загруженный из info/aud.json.
// После загрузки только читается, поэтому безопасен для совместного использования.
type Registry struct {
	canonical []string          // порядок из файла
	byLower   map[string]string // нижний регистр -> каноническая форма
	byLenDesc []string          // длинные сначала, чтобы "УЦ2..." не перекрывался "У"
}

// NewRegistry создает реестр из готового списка аудиторий.
func NewRegistry(audiences []string) *Registry {
	reg := &Registry{
		byLower: make(map[string]string, len(audiences)),
	}
	for _, aud := range audiences {
		aud = strings.TrimSpace(aud)
		if aud == "" {
			continue
		}
		key := strings.ToLower(aud)
		if _, exists := reg.byLower[key]; exists {
			continue
		}
		reg.byLower[key] = aud
		reg.canonical = append(reg.canonical, aud)
	}
	reg.byLenDesc = append([]string(nil), reg.canonical...)
	sort.SliceStable(reg.byLenDesc, func(i, j int) bool {
		return len(reg.byLenDesc[i]) > len(reg.byLenDesc[j])
	})
	return reg
}

// LoadRegistry загружает список аудиторий из JSON файла (массив строк).
// Ошибка не фатальна для конвейера: вызывающий может продолжить
// с пустым реестром и поиском аудиторий только по структурным паттернам.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка при загрузке аудиторий: %v", err)
	}
	var audiences []string
	if err := json.Unmarshal(data, &audiences); err != nil {
		return nil, fmt.Errorf("ошибка при разборе файла аудиторий %s: %v", path, err)
	}
	return NewRegistry(audiences), nil
}

// Contains проверяет членство без учета регистра.
func (reg *Registry) Contains(token string) bool {
	_, ok := reg.byLower[strings.ToLower(strings.TrimSpace(token))]
	return ok
}

// Canonical возвращает каноническую форму аудитории из реестра.
func (reg *Registry) Canonical(token string) (string, bool) {
	aud, ok := reg.byLower[strings.ToLower(strings.TrimSpace(token))]
	return aud, ok
}

// All возвращает аудитории в порядке файла.
func (reg *Registry) All() []string {
	return append([]string(nil), reg.canonical...)
}

// ByLengthDesc возвращает аудитории, отсортированные по убыванию длины.
func (reg *Registry) ByLengthDesc() []string {
	return reg.byLenDesc
}

// Len возвращает количество аудиторий в реестре.
func (reg *Registry) Len() int {
	return len(reg.canonical)
}
