package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/combot/combot/internal/model"
)

// RecordedRequest is a request received by FakeWebex.
type RecordedRequest struct {
	Method     string
	Path       string
	RawQuery   string
	TrackingID string
}

// FakeWebex simulates the subset of the Webex REST API used by the client.
type FakeWebex struct {
	Server *httptest.Server
	Token  string

	mu            sync.Mutex
	teams         []model.Team
	rooms         []model.Room
	memberships   map[string][]model.Membership
	me            model.Person
	failures      map[string]int // route -> forced status code
	failRecipient map[string]int // toPersonEmail -> forced status code
	sent          []model.MessageRequest
	requests      []RecordedRequest
	nextID        int
}

// NewFakeWebex starts a fake API accepting only the given bearer token.
// The server is closed when the test finishes.
func NewFakeWebex(t testing.TB, token string) *FakeWebex {
	t.Helper()

	f := &FakeWebex{
		Token:         token,
		memberships:   make(map[string][]model.Membership),
		failures:      make(map[string]int),
		failRecipient: make(map[string]int),
	}

	r := chi.NewRouter()
	r.Use(f.record)
	r.Use(f.authenticate)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/teams", f.handleTeams)
		r.Get("/people/me", f.handleMe)
		r.Get("/rooms", f.handleRooms)
		r.Get("/memberships", f.handleMemberships)
		r.Post("/messages", f.handleCreateMessage)
	})

	f.Server = httptest.NewServer(r)
	t.Cleanup(f.Server.Close)
	return f
}

// BaseURL returns the API root to configure a client with.
func (f *FakeWebex) BaseURL() string {
	return f.Server.URL + "/v1"
}

// SetTeams replaces the team listing.
func (f *FakeWebex) SetTeams(teams ...model.Team) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.teams = teams
}

// SetRooms replaces the room listing.
func (f *FakeWebex) SetRooms(rooms ...model.Room) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rooms = rooms
}

// SetMembers sets the members of a room by email.
func (f *FakeWebex) SetMembers(roomID string, emails ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	members := make([]model.Membership, 0, len(emails))
	for i, email := range emails {
		members = append(members, model.Membership{
			ID:          roomID + "-m" + strconv.Itoa(i),
			RoomID:      roomID,
			PersonID:    "person-" + email,
			PersonEmail: email,
		})
	}
	f.memberships[roomID] = members
}

// SetMe sets the authenticated user's profile.
func (f *FakeWebex) SetMe(person model.Person) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.me = person
}

// Fail forces every request to route (e.g. "GET /teams", "POST /messages") to
// answer with status.
func (f *FakeWebex) Fail(route string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[route] = status
}

// FailRecipient forces 1:1 messages to email to answer with status.
func (f *FakeWebex) FailRecipient(email string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failRecipient[email] = status
}

// Sent returns a copy of every accepted create-message request.
func (f *FakeWebex) Sent() []model.MessageRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.MessageRequest{}, f.sent...)
}

// Requests returns a copy of every received request.
func (f *FakeWebex) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RecordedRequest{}, f.requests...)
}

// CountRequests returns how many requests were made with method to path.
func (f *FakeWebex) CountRequests(method, path string) int {
	n := 0
	for _, req := range f.Requests() {
		if req.Method == method && req.Path == path {
			n++
		}
	}
	return n
}

func (f *FakeWebex) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, RecordedRequest{
			Method:     r.Method,
			Path:       r.URL.Path,
			RawQuery:   r.URL.RawQuery,
			TrackingID: r.Header.Get("TrackingID"),
		})
		f.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (f *FakeWebex) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+f.Token {
			writeError(w, http.StatusUnauthorized, "The request requires a valid access token set in the Authorization request header.")
			return
		}
		if status, ok := f.forcedFailure(r.Method + " " + routePath(r)); ok {
			writeError(w, status, "forced failure")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeWebex) forcedFailure(route string) (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	status, ok := f.failures[route]
	return status, ok
}

func (f *FakeWebex) handleTeams(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	items := append([]model.Team{}, f.teams...)
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (f *FakeWebex) handleMe(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	me := f.me
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, me)
}

func (f *FakeWebex) handleRooms(w http.ResponseWriter, r *http.Request) {
	teamID := r.URL.Query().Get("teamId")
	limit, err := strconv.Atoi(r.URL.Query().Get("max"))
	if err != nil || limit <= 0 {
		limit = 100
	}

	f.mu.Lock()
	items := make([]model.Room, 0, len(f.rooms))
	for _, room := range f.rooms {
		if teamID != "" && room.TeamID != teamID {
			continue
		}
		items = append(items, room)
	}
	f.mu.Unlock()

	if len(items) > limit {
		items = items[:limit]
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (f *FakeWebex) handleMemberships(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("roomId")

	f.mu.Lock()
	items := append([]model.Membership{}, f.memberships[roomID]...)
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (f *FakeWebex) handleCreateMessage(w http.ResponseWriter, r *http.Request) {
	var req model.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	f.mu.Lock()
	if status, ok := f.failRecipient[req.ToPersonEmail]; ok && req.ToPersonEmail != "" {
		f.mu.Unlock()
		writeError(w, status, "forced recipient failure")
		return
	}
	f.nextID++
	f.sent = append(f.sent, req)
	msg := model.Message{
		ID:            "msg-" + strconv.Itoa(f.nextID),
		RoomID:        req.RoomID,
		ToPersonEmail: req.ToPersonEmail,
		PersonEmail:   f.me.PrimaryEmail(),
		Text:          req.Text,
	}
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, msg)
}

// routePath returns the path relative to the /v1 mount point.
func routePath(r *http.Request) string {
	return strings.TrimPrefix(r.URL.Path, "/v1")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"message":    message,
		"errors":     []map[string]string{{"description": message}},
		"trackingId": "fake-tracking-id",
	})
}
