package crypto

import (
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Параметры Argon2id для деривации ключа шифрования сообщений
const (
	// Argon2Time - количество итераций (time cost)
	Argon2Time = 1
	// Argon2Memory - объем памяти в KB (64MB = 64*1024 KB)
	Argon2Memory = 64 * 1024
	// Argon2Threads - количество параллельных потоков
	Argon2Threads = 4
	// MinSaltSize - минимальный размер соли в байтах
	MinSaltSize = 16
)

// DeriveCipherKey derives the 32-byte message key from a shared passphrase.
// Every client of a keyset must use the same passphrase and salt to read
// each other's messages.
func DeriveCipherKey(passphrase string, salt []byte) ([]byte, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("cipher passphrase cannot be empty")
	}
	if len(salt) < MinSaltSize {
		return nil, fmt.Errorf("salt must be at least %d bytes, got %d", MinSaltSize, len(salt))
	}

	key := argon2.IDKey([]byte(passphrase), salt, Argon2Time, Argon2Memory, Argon2Threads, KeySize)
	return key, nil
}

// DecodeSalt декодирует соль из Base64; пустая строка дает соль по умолчанию
func DecodeSalt(saltBase64, subscribeKey string) ([]byte, error) {
	if saltBase64 == "" {
		return DefaultSalt(subscribeKey), nil
	}
	salt, err := base64.StdEncoding.DecodeString(saltBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}
	return salt, nil
}

// NewCipherContextFromPassphrase собирает CipherContext из настроек клиента
func NewCipherContextFromPassphrase(passphrase, saltBase64, subscribeKey string, encoding Encoding) (*CipherContext, error) {
	salt, err := DecodeSalt(saltBase64, subscribeKey)
	if err != nil {
		return nil, err
	}
	key, err := DeriveCipherKey(passphrase, salt)
	if err != nil {
		return nil, fmt.Errorf("failed to derive cipher key: %w", err)
	}
	return NewCipherContext(key, encoding)
}
