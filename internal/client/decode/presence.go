package decode

import (
	"bytes"
	"encoding/json"
	"slices"

	"github.com/iudanet/pubsub/internal/models"
)

// buildPresenceDelta normalizes both presence encodings into one delta.
//
// A single "uuid" is added to the set named by the action (except for
// interval snapshots, which carry complete lists). Aggregate join, leave and
// timeout arrays are unioned into the same sets. A state object sent next to
// a uuid becomes the state change whatever the action is.
//
// The sets come out sorted, without duplicates and disjoint. When an id lands
// in more than one set, timeout wins over leave and leave wins over join.
func buildPresenceDelta(p *wirePresence) models.PresenceDelta {
	action := models.PresenceAction(p.Action)

	var joined, left, timedOut []string
	if p.UUID != "" {
		switch action {
		case models.PresenceJoin:
			joined = append(joined, p.UUID)
		case models.PresenceLeave:
			left = append(left, p.UUID)
		case models.PresenceTimeout:
			timedOut = append(timedOut, p.UUID)
		}
	}
	joined = append(joined, p.Join...)
	left = append(left, p.Leave...)
	timedOut = append(timedOut, p.Timeout...)

	timedOut = normalizeSet(timedOut)
	left = subtract(normalizeSet(left), timedOut)
	joined = subtract(subtract(normalizeSet(joined), timedOut), left)

	delta := models.PresenceDelta{
		Joined:   joined,
		Left:     left,
		TimedOut: timedOut,
	}

	if p.UUID != "" {
		if state := presenceState(p); state != nil {
			delta.StateChange = &models.StateChange{UserID: p.UUID, State: state}
		}
	}
	return delta
}

// presenceState возвращает state из "state" или "data"; null считается отсутствием
func presenceState(p *wirePresence) json.RawMessage {
	for _, raw := range []json.RawMessage{p.State, p.Data} {
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
			continue
		}
		return raw
	}
	return nil
}

// normalizeSet сортирует и удаляет пустые и повторяющиеся id
func normalizeSet(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	out = slices.Compact(out)
	if len(out) == 0 {
		return nil
	}
	return out
}

// subtract удаляет из отсортированного set элементы отсортированного remove
func subtract(set, remove []string) []string {
	if len(set) == 0 || len(remove) == 0 {
		return set
	}
	out := set[:0]
	for _, id := range set {
		if _, found := slices.BinarySearch(remove, id); !found {
			out = append(out, id)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// decodePresence собирает PresenceEvent из конверта
func decodePresence(env *wireEnvelope) (*models.PresenceEvent, error) {
	var p wirePresence
	if err := json.Unmarshal(env.Payload, &p); err != nil {
		return nil, err
	}

	delta := buildPresenceDelta(&p)
	event := &models.PresenceEvent{
		Envelope:        env.common(),
		Action:          models.PresenceAction(p.Action),
		Delta:           delta,
		Occupancy:       p.Occupancy,
		CursorTimetoken: p.Timestamp,
		HereNowRefresh:  p.HereNowRefresh,
	}
	if delta.StateChange != nil {
		event.StateByUser = map[string]json.RawMessage{
			delta.StateChange.UserID: delta.StateChange.State,
		}
	}
	return event, nil
}
