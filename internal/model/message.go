package model

import (
	"strings"
	"time"
)

// MessageRequest is the body of a create-message call.
// Exactly one of RoomID and ToPersonEmail must be set.
type MessageRequest struct {
	RoomID        string `json:"roomId,omitempty"`
	ToPersonEmail string `json:"toPersonEmail,omitempty"`
	Text          string `json:"text"`
}

// ToRoom builds a request that posts text to a room.
func ToRoom(roomID, text string) MessageRequest {
	return MessageRequest{RoomID: roomID, Text: text}
}

// ToPerson builds a request that sends text as a 1:1 message.
func ToPerson(email, text string) MessageRequest {
	return MessageRequest{ToPersonEmail: email, Text: text}
}

// HasSingleTarget returns true if exactly one delivery target is set.
func (r MessageRequest) HasSingleTarget() bool {
	return (r.RoomID != "") != (r.ToPersonEmail != "")
}

// HasText returns true if the request carries non-blank text.
func (r MessageRequest) HasText() bool {
	return strings.TrimSpace(r.Text) != ""
}

// Message is a message as returned by the service after creation.
type Message struct {
	ID            string    `json:"id"`
	RoomID        string    `json:"roomId,omitempty"`
	RoomType      RoomType  `json:"roomType,omitempty"`
	ToPersonEmail string    `json:"toPersonEmail,omitempty"`
	PersonID      string    `json:"personId,omitempty"`
	PersonEmail   string    `json:"personEmail,omitempty"`
	Text          string    `json:"text"`
	Created       time.Time `json:"created"`
}
