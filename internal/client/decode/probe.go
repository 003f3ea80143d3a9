package decode

import (
	"github.com/tidwall/gjson"

	"github.com/iudanet/pubsub/internal/models"
)

// shape результат проверки формы payload
type shape int

const (
	shapeGeneric shape = iota
	shapePresence
	shapeObject
	shapeMessageAction
)

// probe определяет форму payload в фиксированном порядке:
// presence, object, message action, затем обычный конверт.
func probe(payload []byte) shape {
	if !gjson.ValidBytes(payload) {
		return shapeGeneric
	}
	doc := gjson.ParseBytes(payload)
	if !doc.IsObject() {
		return shapeGeneric
	}

	switch {
	case isPresenceShape(doc):
		return shapePresence
	case isObjectShape(doc):
		return shapeObject
	case isMessageActionShape(doc):
		return shapeMessageAction
	}
	return shapeGeneric
}

func isPresenceShape(doc gjson.Result) bool {
	action := doc.Get("action")
	if action.Type != gjson.String || !models.PresenceAction(action.Str).Valid() {
		return false
	}
	return isTimetokenValue(doc.Get("timestamp")) &&
		doc.Get("occupancy").Type == gjson.Number
}

// isTimetokenValue принимает то же, что models.Timetoken: число или строку из цифр
func isTimetokenValue(v gjson.Result) bool {
	switch v.Type {
	case gjson.Number:
		return true
	case gjson.String:
		if v.Str == "" {
			return false
		}
		for _, r := range v.Str {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	}
	return false
}

func isObjectShape(doc gjson.Result) bool {
	if !hasStrings(doc, "source", "version", "event", "type") {
		return false
	}
	if !doc.Get("data").IsObject() {
		return false
	}
	_, typeOK := objectTypes[doc.Get("type").Str]
	_, eventOK := objectActions[doc.Get("event").Str]
	return typeOK && eventOK
}

func isMessageActionShape(doc gjson.Result) bool {
	if !hasStrings(doc, "source", "version", "event") {
		return false
	}
	if !doc.Get("data").IsObject() {
		return false
	}
	switch models.MessageActionKind(doc.Get("event").Str) {
	case models.MessageActionAdded, models.MessageActionRemoved:
		return true
	}
	return false
}

func hasStrings(doc gjson.Result, keys ...string) bool {
	for _, key := range keys {
		if doc.Get(key).Type != gjson.String {
			return false
		}
	}
	return true
}

// objectTypes принимает как старые (user/space), так и новые (uuid/channel) имена
var objectTypes = map[string]models.ObjectType{
	"user":       models.ObjectUser,
	"uuid":       models.ObjectUser,
	"space":      models.ObjectSpace,
	"channel":    models.ObjectSpace,
	"membership": models.ObjectMembership,
}

var objectActions = map[string]models.ObjectAction{
	"create": models.ObjectAdd,
	"add":    models.ObjectAdd,
	"update": models.ObjectUpdate,
	"set":    models.ObjectUpdate,
	"delete": models.ObjectDelete,
}
