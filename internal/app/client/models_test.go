package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearch(t *testing.T) {
	entries := []Entry{
		{ID: "1", Title: "GitHub", Username: "octocat"},
		{ID: "2", Title: "Bank", Username: "me@mail.com"},
		{ID: "3", Title: "Mail", Username: "ME@work.com"},
	}

	tests := []struct {
		name string
		term string
		want []string
	}{
		{name: "empty returns all", term: "", want: []string{"1", "2", "3"}},
		{name: "blank returns all", term: "   ", want: []string{"1", "2", "3"}},
		{name: "title case-insensitive", term: "github", want: []string{"1"}},
		{name: "username", term: "me@", want: []string{"2", "3"}},
		{name: "title or username", term: "mail", want: []string{"2", "3"}},
		{name: "no match", term: "zzz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := make([]string, 0)
			for _, e := range Search(entries, tt.term) {
				got = append(got, e.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
