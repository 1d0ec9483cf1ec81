package record

import (
	"bytes"
	"testing"

	"passvault/internal/app/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickEntry(t *testing.T) {
	entries := []client.Entry{
		{ID: "1", Title: "GitHub", Username: "octocat"},
		{ID: "2", Title: "Bank", Username: "me"},
		{ID: "3", Title: "Mail", Username: "me@mail"},
	}

	tests := []struct {
		name    string
		arg     string
		wantID  string
		wantErr string
	}{
		{name: "by number", arg: "2", wantID: "2"},
		{name: "by unique search", arg: "git", wantID: "1"},
		{name: "number out of range", arg: "4", wantErr: "нет записи с номером 4"},
		{name: "zero", arg: "0", wantErr: "нет записи с номером 0"},
		{name: "ambiguous", arg: "me", wantErr: "найдено записей: 2"},
		{name: "nothing", arg: "zzz", wantErr: "не найдены"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pickEntry(entries, tt.arg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "пароль...", truncate("парольдлинный", 9))
}

func TestPrintEntries_UnavailableFields(t *testing.T) {
	entries := []client.Entry{
		{ID: "1", Title: "GitHub", Username: "octocat"},
		{ID: "2", Title: "", Username: "me", URL: "", Unavailable: []string{client.FieldTitle, client.FieldURL}},
	}

	tests := []struct {
		name  string
		print func(*bytes.Buffer) error
	}{
		{name: "simple", print: func(b *bytes.Buffer) error { return printEntriesSimple(b, entries) }},
		{name: "table", print: func(b *bytes.Buffer) error { return printEntriesTable(b, entries) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, tt.print(&out))

			assert.Contains(t, out.String(), "GitHub")
			assert.Contains(t, out.String(), "octocat")
			assert.Contains(t, out.String(), unavailableMark)
		})
	}
}

func TestFieldValue(t *testing.T) {
	e := client.Entry{Title: "", Username: "me", Unavailable: []string{client.FieldTitle}}

	assert.Equal(t, unavailableMark, fieldValue(e, client.FieldTitle, e.Title))
	assert.Equal(t, "me", fieldValue(e, client.FieldUsername, e.Username))
}
