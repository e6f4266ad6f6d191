package websocket

import "encoding/json"

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// NewTaskMessage builds a task lifecycle notification, e.g. action
// "task.created" with the task as payload.
func NewTaskMessage(action string, payload interface{}) []byte {
	data, err := json.Marshal(Message{Action: action, Payload: payload})
	if err != nil {
		return nil
	}
	return data
}

// NewErrorMessage builds an error notification for a single client.
func NewErrorMessage(text string) []byte {
	data, _ := json.Marshal(Message{Action: "error", Payload: text})
	return data
}
