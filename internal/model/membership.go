package model

import (
	"strings"
	"time"
)

// BotDomainMarker appears in the email address of every Webex bot account.
const BotDomainMarker = "webex.bot"

// Membership associates a person with a room.
type Membership struct {
	ID                string    `json:"id"`
	RoomID            string    `json:"roomId"`
	PersonID          string    `json:"personId"`
	PersonEmail       string    `json:"personEmail"`
	PersonDisplayName string    `json:"personDisplayName,omitempty"`
	IsModerator       bool      `json:"isModerator"`
	IsMonitor         bool      `json:"isMonitor"`
	Created           time.Time `json:"created"`
}

// IsBot returns true if the member is an automated account.
func (m *Membership) IsBot() bool {
	return strings.Contains(m.PersonEmail, BotDomainMarker)
}

// IsPerson returns true if the member is the person with the given email.
func (m *Membership) IsPerson(email string) bool {
	return email != "" && m.PersonEmail == email
}
