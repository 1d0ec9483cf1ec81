package crypto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

func TestGenerateRandomBytes(t *testing.T) {
	a, err := GenerateRandomBytes(32)
	require.NoError(t, err)
	assert.Len(t, a, 32)

	b, err := GenerateRandomBytes(32)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestGenerateRandomBytes_ReaderError(t *testing.T) {
	orig := randReader
	randReader = failingReader{}
	defer func() { randReader = orig }()

	_, err := GenerateRandomBytes(16)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entropy exhausted")
}

func TestClearMemory(t *testing.T) {
	data := []byte("sensitive")
	clearMemory(data)

	for _, b := range data {
		assert.Equal(t, byte(0), b)
	}
}
