package api

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iudanet/pubsub/pkg/api"
)

// ServerError ошибка, возвращенная сервером в виде HTTP статуса не 2xx
type ServerError struct {
	Message    string
	Service    string
	Body       []byte
	StatusCode int
}

func (e *ServerError) Error() string {
	if e.Service != "" {
		return fmt.Sprintf("server error (%d, %s): %s", e.StatusCode, e.Service, e.Message)
	}
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

func newServerError(status int, body []byte) *ServerError {
	serverErr := &ServerError{StatusCode: status, Body: body}

	var errResp api.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		serverErr.Message = errResp.Text()
		serverErr.Service = errResp.Service
	}
	if serverErr.Message == "" {
		serverErr.Message = string(body)
	}
	return serverErr
}

// AsServerError извлекает *ServerError из цепочки ошибок
func AsServerError(err error) (*ServerError, bool) {
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return serverErr, true
	}
	return nil, false
}

// IsForbidden сообщает, что токен доступа не дает прав на операцию
func IsForbidden(err error) bool {
	serverErr, ok := AsServerError(err)
	return ok && serverErr.StatusCode == 403
}
