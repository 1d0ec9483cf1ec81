// Package generator создает случайные пароли для новых записей.
package generator

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

const (
	DefaultLength = 16
	MinLength     = 8
	MaxLength     = 32

	lower         = "abcdefghijklmnopqrstuvwxyz"
	upper         = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits        = "0123456789"
	symbols       = "!@#$%^&*()_+-=[]{}|;:,.<>?"
	lowerNoAlikes = "abcdefghijkmnpqrstuvwxyz"
	upperNoAlikes = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	digitsNoAlike = "23456789"
)

var ErrLength = fmt.Errorf("password length must be between %d and %d", MinLength, MaxLength)

type Options struct {
	Length            int
	IncludeNumbers    bool
	IncludeSymbols    bool
	ExcludeLookAlikes bool
}

// DefaultOptions — все наборы символов включены, похожие символы исключены
func DefaultOptions() Options {
	return Options{
		Length:            DefaultLength,
		IncludeNumbers:    true,
		IncludeSymbols:    true,
		ExcludeLookAlikes: true,
	}
}

// randReader подменяется в тестах
var randReader io.Reader = rand.Reader

// Charset возвращает алфавит для заданных опций
func Charset(opts Options) string {
	charset := lower + upper
	if opts.ExcludeLookAlikes {
		charset = lowerNoAlikes + upperNoAlikes
	}
	if opts.IncludeNumbers {
		if opts.ExcludeLookAlikes {
			charset += digitsNoAlike
		} else {
			charset += digits
		}
	}
	if opts.IncludeSymbols {
		charset += symbols
	}
	return charset
}

// Generate создает пароль, выбирая каждый символ равновероятно
func Generate(opts Options) (string, error) {
	if opts.Length == 0 {
		opts.Length = DefaultLength
	}
	if opts.Length < MinLength || opts.Length > MaxLength {
		return "", ErrLength
	}

	charset := Charset(opts)
	limit := big.NewInt(int64(len(charset)))

	out := make([]byte, opts.Length)
	for i := range out {
		n, err := rand.Int(randReader, limit)
		if err != nil {
			return "", errors.Join(errors.New("generate password"), err)
		}
		out[i] = charset[n.Int64()]
	}
	return string(out), nil
}
