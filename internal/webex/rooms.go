package webex

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/combot/combot/internal/model"
)

// MaxRooms is the page size requested from the rooms listing. Only one page is fetched.
const MaxRooms = 1000

// RoomQuery selects rooms by title, owning team, or both.
type RoomQuery struct {
	Title  string
	TeamID string
}

// FindRooms looks rooms up in one of three modes:
//   - Title and TeamID: the first room matching both.
//   - Title only: the first room whose title matches across all rooms.
//   - No title: the full listing (filtered by TeamID if set), capped at MaxRooms.
//
// Titles are compared after trimming. No match yields an empty slice, not an error.
func (c *Client) FindRooms(ctx context.Context, q RoomQuery) ([]model.Room, error) {
	query := url.Values{"max": {strconv.Itoa(MaxRooms)}}
	if q.TeamID != "" {
		query.Set("teamId", q.TeamID)
	}

	var list listResponse[model.Room]
	if err := c.do(ctx, http.MethodGet, "rooms", query, nil, &list); err != nil {
		return nil, err
	}

	rooms := list.Items
	if len(rooms) > MaxRooms {
		rooms = rooms[:MaxRooms]
	}

	if strings.TrimSpace(q.Title) == "" {
		if rooms == nil {
			return []model.Room{}, nil
		}
		return rooms, nil
	}

	room, ok := lo.Find(rooms, func(r model.Room) bool {
		if q.TeamID != "" && !r.BelongsTo(q.TeamID) {
			return false
		}
		return r.HasTitle(q.Title)
	})
	if !ok {
		return []model.Room{}, nil
	}
	return []model.Room{room}, nil
}

// FindRoom returns the room with the given title, optionally scoped to a team.
// It returns ErrRoomNotFound when nothing matches.
func (c *Client) FindRoom(ctx context.Context, title, teamID string) (*model.Room, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: room title is required", ErrInvalidArgument)
	}
	rooms, err := c.FindRooms(ctx, RoomQuery{Title: title, TeamID: teamID})
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, ErrRoomNotFound
	}
	return &rooms[0], nil
}
