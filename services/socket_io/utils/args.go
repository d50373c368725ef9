package socketio_utils

import (
	"Bloop/services/game"
)

// Inbound payloads arrive as the decoded JSON object in args[0].
// Missing or mistyped fields degrade to zero values; the engine's
// phase guards make stray zero values harmless.

func Payload(args []interface{}) map[string]interface{} {
	if len(args) == 0 {
		return nil
	}
	payload, ok := args[0].(map[string]interface{})
	if !ok {
		return nil
	}
	return payload
}

func StringField(payload map[string]interface{}, key string) string {
	if payload == nil {
		return ""
	}
	v, ok := payload[key].(string)
	if !ok {
		return ""
	}
	return v
}

func BoolField(payload map[string]interface{}, key string) bool {
	if payload == nil {
		return false
	}
	v, ok := payload[key].(bool)
	if !ok {
		return false
	}
	return v
}

// JSON numbers decode as float64.
func intField(payload map[string]interface{}, key string) *int {
	if payload == nil {
		return nil
	}
	f, ok := payload[key].(float64)
	if !ok {
		return nil
	}
	n := int(f)
	return &n
}

// SettingsField extracts a partial settings update from the payload's
// nested object. Returns nil when no settings object was sent.
func SettingsField(payload map[string]interface{}, key string) *game.SettingsUpdate {
	if payload == nil {
		return nil
	}
	nested, ok := payload[key].(map[string]interface{})
	if !ok {
		return nil
	}
	return &game.SettingsUpdate{
		TotalRounds:   intField(nested, "totalRounds"),
		CollectTime:   intField(nested, "collectTime"),
		VoteTime:      intField(nested, "voteTime"),
		RevealTime:    intField(nested, "revealTime"),
		PointsCorrect: intField(nested, "pointsCorrect"),
		PointsPerFool: intField(nested, "pointsPerFool"),
		PointsFoolAll: intField(nested, "pointsFoolAll"),
		PointsTimeout: intField(nested, "pointsTimeout"),
	}
}
