package webex

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/combot/combot/internal/model"
)

// ListMemberships returns the memberships of a room, or an empty slice if it has none.
func (c *Client) ListMemberships(ctx context.Context, roomID string) ([]model.Membership, error) {
	if roomID == "" {
		return nil, fmt.Errorf("%w: room id is required", ErrInvalidArgument)
	}

	var list listResponse[model.Membership]
	query := url.Values{"roomId": {roomID}}
	if err := c.do(ctx, http.MethodGet, "memberships", query, nil, &list); err != nil {
		return nil, err
	}
	if list.Items == nil {
		return []model.Membership{}, nil
	}
	return list.Items, nil
}
