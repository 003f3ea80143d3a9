package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

// saltContext отделяет соль шифрования от других применений SHA256 ключа подписки
const saltContext = "pubsub-cipher-salt:"

// DefaultSalt детерминированная соль, общая для всех клиентов одного ключа подписки
func DefaultSalt(subscribeKey string) []byte {
	sum := sha256.Sum256([]byte(saltContext + subscribeKey))
	return sum[:]
}

// KeyFingerprint возвращает первые 8 байт SHA256 ключа в hex.
// Позволяет сравнить ключи двух клиентов по логам, не раскрывая сам ключ.
func KeyFingerprint(key []byte) string {
	if len(key) == 0 {
		return ""
	}
	sum := sha256.Sum256(key)
	return hex.EncodeToString(sum[:8])
}
