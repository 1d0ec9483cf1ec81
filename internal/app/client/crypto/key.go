// internal/app/client/crypto/key.go
package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// Key — ключ шифрования полей хранилища.
//
// Ключ выводится из пароля при входе, живет только в памяти процесса
// и никогда не отправляется на сервер. После Destroy ключ непригоден.
type Key struct {
	mu     sync.RWMutex
	secret []byte
}

// DeriveKey детерминированно выводит ключ из пароля входа (hex SHA-256).
func DeriveKey(password string) *Key {
	sum := sha256.Sum256([]byte(password))
	secret := make([]byte, hex.EncodedLen(len(sum)))
	hex.Encode(secret, sum[:])
	clearMemory(sum[:])

	return &Key{secret: secret}
}

// Destroy затирает секрет. Повторный вызов безопасен.
func (k *Key) Destroy() {
	if k == nil {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()

	clearMemory(k.secret)
	k.secret = nil
}

// Destroyed сообщает, был ли ключ уничтожен.
func (k *Key) Destroyed() bool {
	if k == nil {
		return true
	}
	k.mu.RLock()
	defer k.mu.RUnlock()

	return len(k.secret) == 0
}

// Equal сравнивает два ключа за постоянное время.
func (k *Key) Equal(other *Key) bool {
	a, okA := k.material()
	b, okB := other.material()
	if !okA || !okB {
		return false
	}
	defer clearMemory(a)
	defer clearMemory(b)

	return constantTimeEqual(a, b)
}

// String не раскрывает содержимое ключа, в том числе в логах.
func (k *Key) String() string {
	return "crypto.Key(redacted)"
}

// material возвращает копию секрета, вызывающий обязан ее затереть.
func (k *Key) material() ([]byte, bool) {
	if k == nil {
		return nil, false
	}
	k.mu.RLock()
	defer k.mu.RUnlock()

	if len(k.secret) == 0 {
		return nil, false
	}
	out := make([]byte, len(k.secret))
	copy(out, k.secret)
	return out, true
}
