package model

import (
	"strings"
	"time"
)

// RoomType distinguishes group spaces from 1:1 conversations.
type RoomType string

const (
	RoomTypeGroup  RoomType = "group"
	RoomTypeDirect RoomType = "direct"
)

// Room represents a Webex space.
type Room struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Type         RoomType  `json:"type"`
	TeamID       string    `json:"teamId,omitempty"`
	IsLocked     bool      `json:"isLocked"`
	LastActivity time.Time `json:"lastActivity"`
	Created      time.Time `json:"created"`
}

// HasTitle reports whether the room title equals title after trimming title.
func (r *Room) HasTitle(title string) bool {
	return r.Title == strings.TrimSpace(title)
}

// BelongsTo reports whether the room is owned by the given team.
func (r *Room) BelongsTo(teamID string) bool {
	return teamID != "" && r.TeamID == teamID
}
