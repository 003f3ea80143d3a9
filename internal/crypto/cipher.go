package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// NonceSize - размер nonce для AES-GCM (12 bytes стандартный размер)
	NonceSize = 12
	// KeySize - размер ключа AES-256
	KeySize = 32
)

var (
	// ErrNotEncrypted payload не является строкой с шифротекстом
	ErrNotEncrypted = errors.New("payload is not an encrypted string")
	// ErrInvalidUTF8 расшифрованные данные не являются UTF-8 текстом
	ErrInvalidUTF8 = errors.New("decrypted payload is not valid UTF-8")
)

// Encoding определяет текстовое представление шифротекста на проводе
type Encoding string

const (
	EncodingBase64    Encoding = "base64"
	EncodingBase64URL Encoding = "base64url"
	EncodingHex       Encoding = "hex"
)

// ParseEncoding разбирает имя кодировки; пустая строка означает base64
func ParseEncoding(s string) (Encoding, error) {
	switch Encoding(strings.ToLower(strings.TrimSpace(s))) {
	case "", EncodingBase64:
		return EncodingBase64, nil
	case EncodingBase64URL:
		return EncodingBase64URL, nil
	case EncodingHex:
		return EncodingHex, nil
	}
	return "", fmt.Errorf("unknown cipher encoding %q (expected base64, base64url or hex)", s)
}

func (e Encoding) encode(data []byte) string {
	switch e {
	case EncodingBase64URL:
		return base64.RawURLEncoding.EncodeToString(data)
	case EncodingHex:
		return hex.EncodeToString(data)
	default:
		return base64.StdEncoding.EncodeToString(data)
	}
}

func (e Encoding) decode(text string) ([]byte, error) {
	switch e {
	case EncodingBase64URL:
		return base64.RawURLEncoding.DecodeString(strings.TrimRight(text, "="))
	case EncodingHex:
		return hex.DecodeString(text)
	default:
		return base64.StdEncoding.DecodeString(text)
	}
}

// CipherContext holds the symmetric key and the ciphertext text encoding.
// It is built once from configuration and never mutated, so it can be shared
// across goroutines without locking.
type CipherContext struct {
	key      []byte
	encoding Encoding
}

// NewCipherContext копирует ключ, чтобы вызывающий код не мог изменить его позже
func NewCipherContext(key []byte, encoding Encoding) (*CipherContext, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", KeySize, len(key))
	}
	if encoding == "" {
		encoding = EncodingBase64
	}
	if _, err := ParseEncoding(string(encoding)); err != nil {
		return nil, err
	}

	keyCopy := make([]byte, len(key))
	copy(keyCopy, key)

	return &CipherContext{key: keyCopy, encoding: encoding}, nil
}

// Encoding возвращает текстовую кодировку шифротекста
func (c *CipherContext) Encoding() Encoding {
	return c.encoding
}

// Fingerprint короткий отпечаток ключа для логов
func (c *CipherContext) Fingerprint() string {
	return KeyFingerprint(c.key)
}

// EncryptString шифрует данные и возвращает шифротекст в текстовой кодировке
func (c *CipherContext) EncryptString(plaintext []byte) (string, error) {
	encrypted, err := Encrypt(plaintext, c.key)
	if err != nil {
		return "", err
	}
	return c.encoding.encode(encrypted), nil
}

// DecryptString дешифрует текстовый шифротекст
func (c *CipherContext) DecryptString(text string) ([]byte, error) {
	encrypted, err := c.encoding.decode(text)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s ciphertext: %w", c.encoding, err)
	}
	return Decrypt(encrypted, c.key)
}

// EncryptPayload encrypts a JSON value and returns it as a JSON string
// holding the encoded ciphertext, ready to be published.
func (c *CipherContext) EncryptPayload(payload json.RawMessage) (json.RawMessage, error) {
	if !json.Valid(payload) {
		return nil, fmt.Errorf("payload is not valid JSON")
	}
	text, err := c.EncryptString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt payload: %w", err)
	}
	quoted, err := json.Marshal(text)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ciphertext: %w", err)
	}
	return quoted, nil
}

// DecryptPayload reverses EncryptPayload. The payload must be a JSON string;
// the decrypted bytes must be UTF-8. Plaintext that is not itself JSON is
// returned as a JSON string.
func (c *CipherContext) DecryptPayload(payload json.RawMessage) (json.RawMessage, error) {
	var text string
	if err := json.Unmarshal(payload, &text); err != nil {
		return nil, ErrNotEncrypted
	}

	plaintext, err := c.DecryptString(text)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(plaintext) {
		return nil, ErrInvalidUTF8
	}
	if json.Valid(plaintext) {
		return json.RawMessage(plaintext), nil
	}

	// Издатель зашифровал обычную строку, а не JSON
	quoted, err := json.Marshal(string(plaintext))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plaintext: %w", err)
	}
	return quoted, nil
}

// Encrypt шифрует данные с использованием AES-256-GCM
// Формат результата: nonce (12 bytes) + ciphertext + auth_tag (16 bytes)
func Encrypt(plaintext, key []byte) ([]byte, error) {
	if len(plaintext) == 0 {
		return nil, fmt.Errorf("plaintext cannot be empty")
	}
	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	// Генерируем случайный nonce
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	// GCM автоматически добавляет authentication tag в конец
	ciphertext := aesGCM.Seal(nil, nonce, plaintext, nil)

	result := make([]byte, 0, len(nonce)+len(ciphertext))
	result = append(result, nonce...)
	result = append(result, ciphertext...)

	return result, nil
}

// Decrypt дешифрует данные, зашифрованные с помощью Encrypt
// Ожидает формат: nonce (12 bytes) + ciphertext + auth_tag (16 bytes)
func Decrypt(encrypted, key []byte) ([]byte, error) {
	if len(encrypted) < NonceSize {
		return nil, fmt.Errorf("encrypted data too short")
	}
	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := encrypted[:NonceSize]
	ciphertext := encrypted[NonceSize:]

	// Дешифруем и проверяем authentication tag
	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: authentication failed or corrupted data: %w", err)
	}

	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
