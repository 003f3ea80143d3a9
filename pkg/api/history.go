package api

import "encoding/json"

// HistoryMessage одно сообщение из истории канала
type HistoryMessage struct {
	Message     json.RawMessage `json:"message"`                // payload как опубликован (возможно зашифрован)
	Meta        json.RawMessage `json:"meta,omitempty"`         // метаданные публикации
	Timetoken   json.Number     `json:"timetoken"`              // timetoken публикации
	UUID        string          `json:"uuid,omitempty"`         // издатель
	MessageType *int            `json:"message_type,omitempty"` // 0 сообщение, 4 файл; nil для старых сообщений
}

// HistoryMore подсказка сервера о продолжении выборки
type HistoryMore struct {
	Start json.Number `json:"start"`
	URL   string      `json:"url"`
	Max   int         `json:"max"`
}

// HistoryResponse ответ /v3/history
type HistoryResponse struct {
	Channels     map[string][]HistoryMessage `json:"channels"`
	More         *HistoryMore                `json:"more,omitempty"`
	ErrorMessage string                      `json:"error_message,omitempty"`
	Status       int                         `json:"status"`
	Error        bool                        `json:"error"`
}
