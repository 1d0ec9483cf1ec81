package client

import (
	"strings"
	"time"
)

// Названия полей записи, используются в Entry.Unavailable
const (
	FieldTitle    = "title"
	FieldUsername = "username"
	FieldPassword = "password"
	FieldURL      = "url"
	FieldNotes    = "notes"
)

// Entry — расшифрованная запись хранилища
type Entry struct {
	ID        string
	Title     string
	Username  string
	Password  string
	URL       string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
	// Unavailable — поля, которые не удалось расшифровать
	Unavailable []string
}

// Degraded сообщает, что часть полей не расшифровалась
func (e Entry) Degraded() bool {
	return len(e.Unavailable) > 0
}

// Draft — новая запись в открытом виде
type Draft struct {
	Title    string
	Username string
	Password string
	URL      string
	Notes    string
}

// Patch — изменения записи в открытом виде, nil — поле не меняется
type Patch struct {
	Title    *string
	Username *string
	Password *string
	URL      *string
	Notes    *string
}

// Search фильтрует записи по подстроке в названии или логине без учета регистра
func Search(entries []Entry, term string) []Entry {
	term = strings.TrimSpace(term)
	if term == "" {
		return entries
	}

	needle := strings.ToLower(term)
	result := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Title), needle) ||
			strings.Contains(strings.ToLower(e.Username), needle) {
			result = append(result, e)
		}
	}
	return result
}
