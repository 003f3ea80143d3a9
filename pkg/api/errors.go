package api

import (
	"encoding/json"
	"strings"
)

// ErrorResponse представляет ответ сервера с ошибкой.
//
// Разные сервисы кодируют поле error по-разному: true/false у publish и
// presence, объект {"message": ...} у objects API. Поэтому оно хранится как есть.
type ErrorResponse struct {
	Error   json.RawMessage `json:"error,omitempty"`   // флаг или объект ошибки
	Message string          `json:"message,omitempty"` // сообщение об ошибке
	Service string          `json:"service,omitempty"` // сервис, вернувший ошибку
	Payload json.RawMessage `json:"payload,omitempty"` // дополнительные данные (например, каналы без доступа)
	Status  int             `json:"status,omitempty"`  // HTTP статус, продублированный в теле
}

// Text возвращает наиболее информативное описание ошибки
func (e *ErrorResponse) Text() string {
	if e.Message != "" {
		return e.Message
	}
	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(e.Error, &nested); err == nil && nested.Message != "" {
		return nested.Message
	}
	var text string
	if err := json.Unmarshal(e.Error, &text); err == nil {
		return text
	}
	return strings.TrimSpace(string(e.Error))
}
