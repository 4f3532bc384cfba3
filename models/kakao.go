package models

// Keyboard is the Kakao auto-reply keyboard descriptor.
type Keyboard struct {
	Type    string   `json:"type"`
	Buttons []string `json:"buttons"`
}

type MessageButton struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type Message struct {
	Text          string         `json:"text"`
	MessageButton *MessageButton `json:"message_button,omitempty"`
}

// MessageResponse is the reply body of the Kakao message API.
type MessageResponse struct {
	Message  Message  `json:"message"`
	Keyboard Keyboard `json:"keyboard"`
}
