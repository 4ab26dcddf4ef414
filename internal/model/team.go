// Package model defines the Webex entities the application reads and writes.
package model

import "time"

// Team represents a Webex team, a grouping of rooms and people.
type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatorID string    `json:"creatorId,omitempty"`
	Created   time.Time `json:"created"`
}
