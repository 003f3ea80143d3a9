package api

import "encoding/json"

// UUIDMetadata метаданные пользователя
type UUIDMetadata struct {
	Custom     json.RawMessage `json:"custom,omitempty"`
	ID         string          `json:"id"`
	Name       string          `json:"name,omitempty"`
	ExternalID string          `json:"externalId,omitempty"`
	ProfileURL string          `json:"profileUrl,omitempty"`
	Email      string          `json:"email,omitempty"`
	Updated    string          `json:"updated,omitempty"`
	ETag       string          `json:"eTag,omitempty"`
}

// ChannelMetadata метаданные канала
type ChannelMetadata struct {
	Custom      json.RawMessage `json:"custom,omitempty"`
	ID          string          `json:"id"`
	Name        string          `json:"name,omitempty"`
	Description string          `json:"description,omitempty"`
	Updated     string          `json:"updated,omitempty"`
	ETag        string          `json:"eTag,omitempty"`
}

// Membership членство пользователя в канале
type Membership struct {
	Custom  json.RawMessage `json:"custom,omitempty"`
	Channel ChannelMetadata `json:"channel"`
	Updated string          `json:"updated,omitempty"`
	ETag    string          `json:"eTag,omitempty"`
}

// ListResponse ответ листинга objects API.
// Next и Prev непрозрачные токены страниц; клиент возвращает их без изменений.
type ListResponse[T any] struct {
	TotalCount *int   `json:"totalCount,omitempty"`
	Next       string `json:"next,omitempty"`
	Prev       string `json:"prev,omitempty"`
	Data       []T    `json:"data"`
	Status     int    `json:"status"`
}
