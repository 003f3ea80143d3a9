package models

import (
	"encoding/json"
	"sort"
)

// StateChange состояние, присланное пользователем вместе с presence-событием
type StateChange struct {
	UserID string
	State  json.RawMessage
}

// PresenceDelta canonical form of a presence event: who joined, left or
// timed out, plus an optional state change. The three sets are sorted,
// deduplicated and disjoint.
type PresenceDelta struct {
	StateChange *StateChange
	Joined      []string
	Left        []string
	TimedOut    []string
}

// IsEmpty сообщает, что дельта не несет изменений
func (d PresenceDelta) IsEmpty() bool {
	return len(d.Joined) == 0 && len(d.Left) == 0 && len(d.TimedOut) == 0 && d.StateChange == nil
}

// Contains сообщает, в каком множестве находится пользователь
func (d PresenceDelta) Contains(userID string) (PresenceAction, bool) {
	for _, set := range []struct {
		action PresenceAction
		ids    []string
	}{
		{PresenceJoin, d.Joined},
		{PresenceLeave, d.Left},
		{PresenceTimeout, d.TimedOut},
	} {
		i := sort.SearchStrings(set.ids, userID)
		if i < len(set.ids) && set.ids[i] == userID {
			return set.action, true
		}
	}
	return "", false
}
