package webex

import (
	"context"
	"net/http"
	"strings"

	"github.com/samber/lo"

	"github.com/combot/combot/internal/model"
)

// ListTeams returns every team the caller belongs to.
func (c *Client) ListTeams(ctx context.Context) ([]model.Team, error) {
	var list listResponse[model.Team]
	if err := c.do(ctx, http.MethodGet, "teams", nil, nil, &list); err != nil {
		return nil, err
	}
	if list.Items == nil {
		return []model.Team{}, nil
	}
	return list.Items, nil
}

// FindTeam returns the first team whose name equals the trimmed name.
// It returns ErrTeamNotFound when nothing matches; request failures are
// returned unchanged so callers can tell the two apart.
func (c *Client) FindTeam(ctx context.Context, name string) (*model.Team, error) {
	teams, err := c.ListTeams(ctx)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	team, ok := lo.Find(teams, func(t model.Team) bool {
		return t.Name == name
	})
	if !ok {
		return nil, ErrTeamNotFound
	}
	return &team, nil
}
