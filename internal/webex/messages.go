package webex

import (
	"context"
	"fmt"
	"net/http"

	"github.com/combot/combot/internal/model"
)

// CreateMessage posts a message to a room or, with ToPersonEmail, as a 1:1 message.
func (c *Client) CreateMessage(ctx context.Context, req model.MessageRequest) (*model.Message, error) {
	if !req.HasSingleTarget() {
		return nil, fmt.Errorf("%w: exactly one of roomId and toPersonEmail must be set", ErrInvalidArgument)
	}
	if !req.HasText() {
		return nil, fmt.Errorf("%w: message text is empty", ErrInvalidArgument)
	}

	var msg model.Message
	if err := c.do(ctx, http.MethodPost, "messages", nil, req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
