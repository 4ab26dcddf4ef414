package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/combot/combot/internal/config"
	"github.com/combot/combot/internal/model"
	"github.com/combot/combot/internal/service"
	"github.com/combot/combot/internal/testutil"
	"github.com/combot/combot/internal/webex"
)

const testToken = "secret-token"

func newFake(t *testing.T) *testutil.FakeWebex {
	t.Helper()
	fake := testutil.NewFakeWebex(t, testToken)
	fake.SetMe(model.Person{ID: "me", Emails: []string{"me@example.com"}})
	fake.SetTeams(model.Team{ID: "t1", Name: "Sales"})
	fake.SetRooms(
		model.Room{ID: "r1", Title: "Weekly", TeamID: "t1"},
		model.Room{ID: "r2", Title: "Weekly"},
	)
	fake.SetMembers("r1", "me@example.com", "alice@example.com", "bot@webex.bot")
	fake.SetMembers("r2", "bob@example.com")
	return fake
}

func testConfig(fake *testutil.FakeWebex) *config.Config {
	return &config.Config{
		AccessToken: testToken,
		BaseURL:     fake.BaseURL(),
		Timeout:     5 * time.Second,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun_DryRunListsRecipients(t *testing.T) {
	fake := newFake(t)
	cfg := testConfig(fake)
	cfg.Team = "Sales"

	var out bytes.Buffer
	err := run(context.Background(), cfg, discardLogger(), strings.NewReader(" Weekly \nhello all\n"), &out)
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "Enter the name of team space: ")
	assert.Contains(t, output, "Enter message: ")
	assert.Contains(t, output, "Total of people in this Weekly: 3")
	assert.Contains(t, output, "alice@example.com")
	assert.NotContains(t, output, "bob@example.com", "team scope must select r1")
	assert.Empty(t, fake.Sent(), "dry run must not send")
}

func TestRun_SendMessages(t *testing.T) {
	fake := newFake(t)
	cfg := testConfig(fake)
	cfg.Send = true

	var out bytes.Buffer
	err := run(context.Background(), cfg, discardLogger(), strings.NewReader("Weekly\nship it\n"), &out)
	require.NoError(t, err)

	// Without a team, the title alone selects the first "Weekly" room (r1)
	assert.Equal(t, []model.MessageRequest{
		model.ToRoom("r1", "ship it"),
		model.ToPerson("alice@example.com", "ship it"),
	}, fake.Sent())
	assert.Contains(t, out.String(), "Successfully sent a message to r1.")
}

func TestRun_SendRejectsEmptyMessage(t *testing.T) {
	fake := newFake(t)
	cfg := testConfig(fake)
	cfg.Send = true

	err := run(context.Background(), cfg, discardLogger(), strings.NewReader("Weekly\n   \n"), io.Discard)
	assert.ErrorIs(t, err, service.ErrEmptyMessage)
	assert.Empty(t, fake.Requests())
}

func TestRun_RoomNotFound(t *testing.T) {
	fake := newFake(t)

	err := run(context.Background(), testConfig(fake), discardLogger(), strings.NewReader("Nowhere\nhi\n"), io.Discard)
	require.Error(t, err)
	assert.ErrorIs(t, err, webex.ErrRoomNotFound)
}

func TestRun_TeamNotFound(t *testing.T) {
	fake := newFake(t)
	cfg := testConfig(fake)
	cfg.Team = "Marketing"

	err := run(context.Background(), cfg, discardLogger(), strings.NewReader("Weekly\nhi\n"), io.Discard)
	assert.ErrorIs(t, err, webex.ErrTeamNotFound)
}

func TestRun_GroupFailure(t *testing.T) {
	fake := newFake(t)
	fake.Fail("POST /messages", http.StatusServiceUnavailable)
	cfg := testConfig(fake)
	cfg.Send = true

	err := run(context.Background(), cfg, discardLogger(), strings.NewReader("Weekly\nhi\n"), io.Discard)
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, webex.StatusCode(err))
}

func TestRun_MissingInput(t *testing.T) {
	fake := newFake(t)

	err := run(context.Background(), testConfig(fake), discardLogger(), strings.NewReader(""), io.Discard)
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))

	err = run(context.Background(), testConfig(fake), discardLogger(), strings.NewReader("\n"), io.Discard)
	assert.Error(t, err)
	assert.Empty(t, fake.Requests())
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.input); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSanitizeError(t *testing.T) {
	err := errors.New("request with Bearer secret-token failed")
	got := sanitizeError(err, testToken)
	if strings.Contains(got, testToken) {
		t.Errorf("sanitizeError leaked token: %s", got)
	}
	if sanitizeError(nil, testToken) != "" {
		t.Error("expected empty string for nil error")
	}
}
