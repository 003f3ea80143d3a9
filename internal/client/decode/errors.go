package decode

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/iudanet/pubsub/internal/models"
)

// ErrUnexpectedShape payload не соответствует форме, заявленной дискриминантом "e"
var ErrUnexpectedShape = errors.New("payload does not match declared message type")

// ItemError ошибка разбора одного элемента пакета. Остальные элементы
// пакета при этом разбираются и доставляются.
type ItemError struct {
	Err     error
	Raw     json.RawMessage
	Channel string
	Index   int
}

func (e *ItemError) Error() string {
	if e.Channel != "" {
		return fmt.Sprintf("failed to decode item %d on channel %q: %v", e.Index, e.Channel, e.Err)
	}
	return fmt.Sprintf("failed to decode item %d: %v", e.Index, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// ResponseError the whole subscribe body could not be decoded. Cursor is
// set when the leading cursor object was salvaged from the broken body; the
// caller should then continue from it instead of re-polling the same batch.
type ResponseError struct {
	Err    error
	Cursor *models.Cursor
}

func (e *ResponseError) Error() string {
	if e.Cursor != nil {
		return fmt.Sprintf("malformed subscribe response (cursor %s recovered): %v", e.Cursor, e.Err)
	}
	return fmt.Sprintf("malformed subscribe response: %v", e.Err)
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}

// Salvaged сообщает, что курсор удалось восстановить
func (e *ResponseError) Salvaged() bool {
	return e.Cursor != nil
}

// AsResponseError извлекает *ResponseError из цепочки ошибок
func AsResponseError(err error) (*ResponseError, bool) {
	var respErr *ResponseError
	if errors.As(err, &respErr) {
		return respErr, true
	}
	return nil, false
}

// SalvageCursor decodes only the leading "t" object of a response body.
// gjson stops once the key is found, so garbage after the cursor does not
// prevent recovery.
func SalvageCursor(body []byte) (*models.Cursor, bool) {
	result := gjson.GetBytes(body, "t")
	if !result.IsObject() {
		return nil, false
	}

	var cursor models.Cursor
	if err := json.Unmarshal([]byte(result.Raw), &cursor); err != nil {
		return nil, false
	}
	if !isTimetokenValue(result.Get("t")) {
		return nil, false
	}
	return &cursor, true
}

// newResponseError пытается спасти курсор из сломанного тела
func newResponseError(body []byte, cause error) *ResponseError {
	respErr := &ResponseError{Err: cause}
	if cursor, ok := SalvageCursor(body); ok {
		respErr.Cursor = cursor
	}
	return respErr
}
