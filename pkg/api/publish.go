package api

import (
	"encoding/json"
	"fmt"
)

// PublishResponse ответ publish и signal: [1, "Sent", "17000000000000000"]
type PublishResponse struct {
	Description string
	Timetoken   json.Number
	Status      int
}

// UnmarshalJSON разбирает ответ-массив publish
func (r *PublishResponse) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("publish response is not an array: %w", err)
	}
	if len(raw) < 3 {
		return fmt.Errorf("publish response has %d elements, expected 3", len(raw))
	}
	if err := json.Unmarshal(raw[0], &r.Status); err != nil {
		return fmt.Errorf("invalid publish status: %w", err)
	}
	if err := json.Unmarshal(raw[1], &r.Description); err != nil {
		return fmt.Errorf("invalid publish description: %w", err)
	}
	if err := json.Unmarshal(raw[2], &r.Timetoken); err != nil {
		return fmt.Errorf("invalid publish timetoken: %w", err)
	}
	return nil
}

// TimeResponse ответ /time/0: [17000000000000000]
type TimeResponse []json.Number

// LeaveResponse ответ presence leave
type LeaveResponse struct {
	Message string `json:"message"`
	Action  string `json:"action"`
	Service string `json:"service"`
	Status  int    `json:"status"`
}
