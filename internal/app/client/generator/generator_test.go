package generator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

func TestGenerate_Defaults(t *testing.T) {
	pw, err := Generate(DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, pw, DefaultLength)

	charset := Charset(DefaultOptions())
	for _, r := range pw {
		assert.True(t, strings.ContainsRune(charset, r), "unexpected %q", r)
	}

	other, err := Generate(DefaultOptions())
	require.NoError(t, err)
	assert.NotEqual(t, pw, other)
}

func TestGenerate_ZeroLengthMeansDefault(t *testing.T) {
	pw, err := Generate(Options{})
	require.NoError(t, err)
	assert.Len(t, pw, DefaultLength)
}

func TestGenerate_Length(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		wantErr bool
	}{
		{name: "min", length: MinLength},
		{name: "max", length: MaxLength},
		{name: "too short", length: MinLength - 1, wantErr: true},
		{name: "too long", length: MaxLength + 1, wantErr: true},
		{name: "negative", length: -5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Length = tt.length

			pw, err := Generate(opts)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrLength)
				return
			}
			require.NoError(t, err)
			assert.Len(t, pw, tt.length)
		})
	}
}

func TestCharset(t *testing.T) {
	tests := []struct {
		name       string
		opts       Options
		contains   string
		notContain string
	}{
		{
			name:       "letters only",
			opts:       Options{},
			contains:   "abcXYZlIoO",
			notContain: "0123456789!@#",
		},
		{
			name:       "look-alikes excluded",
			opts:       Options{IncludeNumbers: true, ExcludeLookAlikes: true},
			contains:   "abkm2389",
			notContain: "loIO01!",
		},
		{
			name:       "numbers and symbols",
			opts:       Options{IncludeNumbers: true, IncludeSymbols: true},
			contains:   "0123456789!@#$%^&*()_+-=[]{}|;:,.<>?",
			notContain: " ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			charset := Charset(tt.opts)
			for _, r := range tt.contains {
				assert.True(t, strings.ContainsRune(charset, r), "missing %q", r)
			}
			for _, r := range tt.notContain {
				assert.False(t, strings.ContainsRune(charset, r), "unexpected %q", r)
			}
		})
	}
}

func TestGenerate_RandomFailure(t *testing.T) {
	orig := randReader
	randReader = failingReader{}
	defer func() { randReader = orig }()

	_, err := Generate(DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entropy exhausted")
}
