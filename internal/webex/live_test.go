//go:build e2e

package webex_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/combot/combot/internal/config"
	"github.com/combot/combot/internal/testutil"
	"github.com/combot/combot/internal/webex"
)

// TestLiveReadOnly exercises the read-only endpoints against the real API.
// Run with: WT_ACCESS_TOKEN=... go test -tags e2e ./internal/webex/
func TestLiveReadOnly(t *testing.T) {
	token := testutil.RequireEnv(t, "WT_ACCESS_TOKEN")

	client, err := webex.New(webex.Config{
		BaseURL: config.DefaultBaseURL,
		Token:   token,
		Timeout: 30 * time.Second,
	}, nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	email, err := client.AuthenticatedEmail(ctx)
	require.NoError(t, err)
	assert.Contains(t, email, "@")

	rooms, err := client.FindRooms(ctx, webex.RoomQuery{})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(rooms), webex.MaxRooms)

	if len(rooms) > 0 {
		found, err := client.FindRooms(ctx, webex.RoomQuery{Title: rooms[0].Title})
		require.NoError(t, err)
		require.Len(t, found, 1)

		members, err := client.ListMemberships(ctx, found[0].ID)
		require.NoError(t, err)
		assert.NotNil(t, members)
	}

	_, err = client.ListTeams(ctx)
	require.NoError(t, err)
}
