// internal/app/client/crypto/cipher.go
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/exp/slog"
)

const (
	formatVersion byte = 1
	saltLength         = 16
	nonceLength        = 12
	fieldKeyLength     = 32 // AES-256
)

var hkdfInfo = []byte("passvault/field/v1")

var (
	// ErrNoKey — ключ отсутствует или уничтожен
	ErrNoKey = errors.New("encryption key is not available")
	// ErrMalformed — шифротекст не в ожидаемом формате
	ErrMalformed = errors.New("malformed ciphertext")
	// ErrDecrypt — неверный ключ или поврежденные данные
	ErrDecrypt = errors.New("decryption failed")
)

// Cipher шифрует отдельные поля записей хранилища.
//
// Каждый вызов Encrypt берет свежие соль и nonce, поэтому одинаковые
// открытые тексты дают разные шифротексты. Ключ поля выводится через
// HKDF-SHA256 из секрета Key, шифрование AES-256-GCM.
type Cipher struct {
	log *slog.Logger
}

// NewCipher создает шифровальщик полей
func NewCipher(log *slog.Logger) *Cipher {
	if log == nil {
		log = slog.Default()
	}
	return &Cipher{
		log: log.With(slog.String("component", "field_cipher")),
	}
}

// Encrypt шифрует поле. Пустая строка возвращается без изменений.
// Ошибка шифрования логируется, результатом становится пустая строка.
func (c *Cipher) Encrypt(plaintext string, key *Key) string {
	if plaintext == "" {
		return plaintext
	}

	out, err := c.Seal(plaintext, key)
	if err != nil {
		c.log.Error("encryption failed", slog.String("error", err.Error()))
		return ""
	}
	return out
}

// EncryptOptional шифрует необязательное поле: nil и пустая строка
// возвращаются как есть.
func (c *Cipher) EncryptOptional(plaintext *string, key *Key) *string {
	if plaintext == nil || *plaintext == "" {
		return plaintext
	}
	out := c.Encrypt(*plaintext, key)
	return &out
}

// Decrypt расшифровывает поле. Пустая строка возвращается без изменений.
// При неверном ключе или поврежденных данных возвращается пустая строка,
// которую вызывающий обязан трактовать как "поле недоступно".
func (c *Cipher) Decrypt(ciphertext string, key *Key) string {
	if ciphertext == "" {
		return ciphertext
	}

	plaintext, err := c.Open(ciphertext, key)
	if err != nil {
		c.log.Warn("decryption failed", slog.String("error", err.Error()))
		return ""
	}
	return plaintext
}

// Seal шифрует строку и возвращает ошибку вместо пустого результата.
func (c *Cipher) Seal(plaintext string, key *Key) (string, error) {
	secret, ok := key.material()
	if !ok {
		return "", ErrNoKey
	}
	defer clearMemory(secret)

	salt, err := GenerateRandomBytes(saltLength)
	if err != nil {
		return "", err
	}
	nonce, err := GenerateRandomBytes(nonceLength)
	if err != nil {
		return "", err
	}

	aead, err := newFieldAEAD(secret, salt)
	if err != nil {
		return "", err
	}

	header := make([]byte, 0, 1+saltLength+nonceLength)
	header = append(header, formatVersion)
	header = append(header, salt...)
	header = append(header, nonce...)

	sealed := aead.Seal(header, nonce, []byte(plaintext), []byte{formatVersion})
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open расшифровывает строку и возвращает различимую ошибку:
// ErrNoKey, ErrMalformed или ErrDecrypt. Пустая строка возвращается как есть.
func (c *Cipher) Open(ciphertext string, key *Key) (string, error) {
	if ciphertext == "" {
		return ciphertext, nil
	}

	secret, ok := key.material()
	if !ok {
		return "", ErrNoKey
	}
	defer clearMemory(secret)

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(raw) < 1+saltLength+nonceLength || raw[0] != formatVersion {
		return "", ErrMalformed
	}

	salt := raw[1 : 1+saltLength]
	nonce := raw[1+saltLength : 1+saltLength+nonceLength]
	sealed := raw[1+saltLength+nonceLength:]

	aead, err := newFieldAEAD(secret, salt)
	if err != nil {
		return "", err
	}

	plaintext, err := aead.Open(nil, nonce, sealed, []byte{formatVersion})
	if err != nil {
		return "", ErrDecrypt
	}
	return string(plaintext), nil
}

func newFieldAEAD(secret, salt []byte) (cipher.AEAD, error) {
	fieldKey := make([]byte, fieldKeyLength)
	defer clearMemory(fieldKey)

	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, salt, hkdfInfo), fieldKey); err != nil {
		return nil, fmt.Errorf("derive field key: %w", err)
	}

	block, err := aes.NewCipher(fieldKey)
	if err != nil {
		return nil, fmt.Errorf("create aes cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return aead, nil
}

// Encrypt шифрует поле шифровальщиком с логгером по умолчанию.
func Encrypt(plaintext string, key *Key) string {
	return NewCipher(slog.Default()).Encrypt(plaintext, key)
}

// Decrypt расшифровывает поле шифровальщиком с логгером по умолчанию.
func Decrypt(ciphertext string, key *Key) string {
	return NewCipher(slog.Default()).Decrypt(ciphertext, key)
}

// Open расшифровывает поле с различимой ошибкой.
func Open(ciphertext string, key *Key) (string, error) {
	return NewCipher(slog.Default()).Open(ciphertext, key)
}
