package notify

import (
	"encoding/json"
	"time"
)

// ChangeMessage announces that one or more store records were rewritten by
// some running instance. Consumers re-read the named keys; the message never
// carries record contents.
type ChangeMessage struct {
	Origin    string    `json:"origin"`
	Keys      []string  `json:"keys"`
	Timestamp time.Time `json:"timestamp"`
}

func NewChangeMessage(origin string, keys []string) *ChangeMessage {
	return &ChangeMessage{
		Origin:    origin,
		Keys:      keys,
		Timestamp: time.Now(),
	}
}

func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
