package webex

import (
	"context"
	"net/http"

	"github.com/combot/combot/internal/model"
)

// Me returns the profile of the authenticated caller.
func (c *Client) Me(ctx context.Context) (*model.Person, error) {
	var person model.Person
	if err := c.do(ctx, http.MethodGet, "people/me", nil, nil, &person); err != nil {
		return nil, err
	}
	return &person, nil
}

// AuthenticatedEmail returns the first email address of the caller's profile.
func (c *Client) AuthenticatedEmail(ctx context.Context) (string, error) {
	person, err := c.Me(ctx)
	if err != nil {
		return "", err
	}
	email := person.PrimaryEmail()
	if email == "" {
		return "", ErrNoEmail
	}
	return email, nil
}
