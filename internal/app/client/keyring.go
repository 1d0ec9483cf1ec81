package client

import (
	"sync"

	"passvault/internal/app/client/crypto"
)

// KeyRing держит ключ шифрования в памяти процесса. Ключ не
// сохраняется на диск и живет до Clear или выхода из программы.
type KeyRing struct {
	mu  sync.RWMutex
	key *crypto.Key
}

func NewKeyRing() *KeyRing {
	return &KeyRing{}
}

// Set заменяет ключ, прежний уничтожается
func (k *KeyRing) Set(key *crypto.Key) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.key != nil && k.key != key {
		k.key.Destroy()
	}
	k.key = key
}

// Key возвращает текущий ключ или nil
func (k *KeyRing) Key() *crypto.Key {
	k.mu.RLock()
	defer k.mu.RUnlock()

	if k.key.Destroyed() {
		return nil
	}
	return k.key
}

// Clear уничтожает ключ
func (k *KeyRing) Clear() {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.key.Destroy()
	k.key = nil
}

// Unlocked сообщает, есть ли пригодный ключ
func (k *KeyRing) Unlocked() bool {
	return k.Key() != nil
}
