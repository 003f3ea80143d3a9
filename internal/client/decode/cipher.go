package decode

import (
	"encoding/json"
)

// DecryptPayload runs the cipher stage for one payload. Without a cipher the
// payload passes through. On failure the original payload is returned
// together with the error, so the caller still gets a value.
func (d *Decoder) DecryptPayload(channel string, payload json.RawMessage) (json.RawMessage, error) {
	if d.cipher == nil || len(payload) == 0 {
		return payload, nil
	}

	plaintext, err := d.cipher.DecryptPayload(payload)
	if err != nil {
		d.logger.Warn("Failed to decrypt payload, delivering it as is",
			"channel", channel,
			"key_fingerprint", d.cipher.Fingerprint(),
			"error", err,
		)
		return payload, err
	}
	return plaintext, nil
}
