package vault

import "time"

// Entry — запись хранилища. Все пять полей содержат шифротекст,
// сервер их не расшифровывает.
type Entry struct {
	ID        string    `json:"id"`
	AccountID string    `json:"-"`
	Title     string    `json:"title"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	URL       string    `json:"url"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Fields — содержимое новой записи
type Fields struct {
	Title    string `json:"title"`
	Username string `json:"username"`
	Password string `json:"password"`
	URL      string `json:"url,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Patch — частичное обновление: nil означает "не менять"
type Patch struct {
	Title    *string `json:"title,omitempty"`
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
	URL      *string `json:"url,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// Empty сообщает, что в патче нет ни одного непустого значения
func (p Patch) Empty() bool {
	for _, f := range []*string{p.Title, p.Username, p.Password, p.URL, p.Notes} {
		if f != nil && *f != "" {
			return false
		}
	}
	return true
}

// Apply переносит заданные поля патча на запись
func (p Patch) Apply(e *Entry) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Username != nil {
		e.Username = *p.Username
	}
	if p.Password != nil {
		e.Password = *p.Password
	}
	if p.URL != nil {
		e.URL = *p.URL
	}
	if p.Notes != nil {
		e.Notes = *p.Notes
	}
}
