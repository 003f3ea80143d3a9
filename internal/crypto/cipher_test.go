package crypto

import (
	"crypto/rand"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestEncrypt(t *testing.T) {
	validKey := make([]byte, 32)
	_, _ = rand.Read(validKey)

	tests := []struct {
		name      string
		errMsg    string
		plaintext []byte
		key       []byte
		wantErr   bool
	}{
		{
			name:      "successful encryption",
			plaintext: []byte(`{"text":"hello"}`),
			key:       validKey,
		},
		{
			name:      "empty plaintext",
			plaintext: []byte{},
			key:       validKey,
			wantErr:   true,
			errMsg:    "plaintext cannot be empty",
		},
		{
			name:      "invalid key length - too short",
			plaintext: []byte("test"),
			key:       make([]byte, 16),
			wantErr:   true,
			errMsg:    "encryption key must be 32 bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encrypted, err := Encrypt(tt.plaintext, tt.key)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, encrypted)
				return
			}

			require.NoError(t, err)
			// nonce + ciphertext + auth_tag
			assert.GreaterOrEqual(t, len(encrypted), NonceSize+len(tt.plaintext)+16)

			decrypted, err := Decrypt(encrypted, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, decrypted)
		})
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	encrypted, err := Encrypt([]byte("secret"), newTestKey(t))
	require.NoError(t, err)

	_, err = Decrypt(encrypted, newTestKey(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication failed")
}

func TestDecrypt_TooShort(t *testing.T) {
	_, err := Decrypt([]byte{1, 2, 3}, newTestKey(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too short")
}

func TestNewCipherContext(t *testing.T) {
	_, err := NewCipherContext(make([]byte, 10), EncodingBase64)
	require.Error(t, err)

	_, err = NewCipherContext(newTestKey(t), Encoding("rot13"))
	require.Error(t, err)

	ctx, err := NewCipherContext(newTestKey(t), "")
	require.NoError(t, err)
	assert.Equal(t, EncodingBase64, ctx.Encoding())
	assert.Len(t, ctx.Fingerprint(), 16)
}

func TestNewCipherContext_CopiesKey(t *testing.T) {
	key := newTestKey(t)
	ctx, err := NewCipherContext(key, EncodingBase64)
	require.NoError(t, err)

	encrypted, err := ctx.EncryptString([]byte("payload"))
	require.NoError(t, err)

	// Изменение исходного среза не должно влиять на контекст
	for i := range key {
		key[i] = 0
	}

	plaintext, err := ctx.DecryptString(encrypted)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(plaintext))
}

func TestCipherContext_PayloadRoundTrip(t *testing.T) {
	payloads := []string{
		`{"text":"hello","n":1}`,
		`"just a string"`,
		`[1,2,3]`,
		`42`,
		`{"emoji":"привет 👋"}`,
	}

	for _, encoding := range []Encoding{EncodingBase64, EncodingBase64URL, EncodingHex} {
		ctx, err := NewCipherContext(newTestKey(t), encoding)
		require.NoError(t, err)

		for _, payload := range payloads {
			t.Run(string(encoding)+"/"+payload, func(t *testing.T) {
				encrypted, err := ctx.EncryptPayload(json.RawMessage(payload))
				require.NoError(t, err)

				// На проводе это JSON-строка
				var text string
				require.NoError(t, json.Unmarshal(encrypted, &text))

				decrypted, err := ctx.DecryptPayload(encrypted)
				require.NoError(t, err)
				assert.JSONEq(t, payload, string(decrypted))
			})
		}
	}
}

func TestCipherContext_DecryptPayload_Failures(t *testing.T) {
	ctx, err := NewCipherContext(newTestKey(t), EncodingBase64)
	require.NoError(t, err)
	other, err := NewCipherContext(newTestKey(t), EncodingBase64)
	require.NoError(t, err)

	encrypted, err := other.EncryptPayload(json.RawMessage(`{"a":1}`))
	require.NoError(t, err)

	tests := []struct {
		name    string
		payload string
		wantErr error
	}{
		{name: "not a string", payload: `{"a":1}`, wantErr: ErrNotEncrypted},
		{name: "not base64", payload: `"%%%"`},
		{name: "plain text", payload: `"hello world"`},
		{name: "wrong key", payload: string(encrypted)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ctx.DecryptPayload(json.RawMessage(tt.payload))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCipherContext_DecryptPayload_NonJSONPlaintext(t *testing.T) {
	ctx, err := NewCipherContext(newTestKey(t), EncodingBase64)
	require.NoError(t, err)

	text, err := ctx.EncryptString([]byte("plain words"))
	require.NoError(t, err)
	wire, err := json.Marshal(text)
	require.NoError(t, err)

	decrypted, err := ctx.DecryptPayload(wire)
	require.NoError(t, err)
	assert.Equal(t, `"plain words"`, string(decrypted))
}

func TestCipherContext_DecryptPayload_InvalidUTF8(t *testing.T) {
	ctx, err := NewCipherContext(newTestKey(t), EncodingBase64)
	require.NoError(t, err)

	text, err := ctx.EncryptString([]byte{0xff, 0xfe, 0xfd})
	require.NoError(t, err)
	wire, err := json.Marshal(text)
	require.NoError(t, err)

	_, err = ctx.DecryptPayload(wire)
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestParseEncoding(t *testing.T) {
	enc, err := ParseEncoding("")
	require.NoError(t, err)
	assert.Equal(t, EncodingBase64, enc)

	enc, err = ParseEncoding(" HEX ")
	require.NoError(t, err)
	assert.Equal(t, EncodingHex, enc)

	_, err = ParseEncoding("utf16")
	assert.Error(t, err)
}
