// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"github.com/combot/combot/internal/metrics"
	"github.com/combot/combot/internal/model"
)

// Service errors.
var (
	ErrEmptyMessage = errors.New("message text is empty")
	ErrMissingRoom  = errors.New("room id is required")
)

// Messenger is the subset of the Webex client the notifier depends on.
type Messenger interface {
	ListMemberships(ctx context.Context, roomID string) ([]model.Membership, error)
	AuthenticatedEmail(ctx context.Context) (string, error)
	CreateMessage(ctx context.Context, req model.MessageRequest) (*model.Message, error)
}

// SkippedRecipient is a member left out of the direct-message fan-out.
type SkippedRecipient struct {
	Email  string
	Reason string // metrics.SkipSelf or metrics.SkipBot
}

// Recipients is the fan-out plan for a room.
type Recipients struct {
	RoomID  string
	Self    string
	Total   int // memberships in the room, skipped ones included
	Emails  []string
	Skipped []SkippedRecipient
}

// Delivery is the outcome of one direct message.
type Delivery struct {
	Email     string
	MessageID string
	Err       error
}

// OK returns true if the message was accepted.
func (d Delivery) OK() bool {
	return d.Err == nil
}

// Report summarizes a group message and its fan-out.
type Report struct {
	RoomID         string
	GroupMessageID string
	Deliveries     []Delivery
	Skipped        []SkippedRecipient
}

// Failed returns the deliveries that were not accepted.
func (r *Report) Failed() []Delivery {
	return lo.Filter(r.Deliveries, func(d Delivery, _ int) bool {
		return !d.OK()
	})
}

// Delivered returns the emails that received a direct message.
func (r *Report) Delivered() []string {
	ok := lo.Filter(r.Deliveries, func(d Delivery, _ int) bool {
		return d.OK()
	})
	return lo.Map(ok, func(d Delivery, _ int) string {
		return d.Email
	})
}

// Notifier posts a message to a room and repeats it to each member privately.
type Notifier struct {
	client  Messenger
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewNotifier creates a new Notifier.
func NewNotifier(client Messenger, logger *slog.Logger, recorder metrics.Recorder) *Notifier {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		client:  client,
		logger:  logger.With("component", "service.notifier"),
		metrics: recorder,
	}
}

// Recipients resolves who would receive a direct message for roomID.
// The authenticated user and bot accounts are excluded, listing order is kept.
func (n *Notifier) Recipients(ctx context.Context, roomID string) (*Recipients, error) {
	if roomID == "" {
		return nil, ErrMissingRoom
	}

	members, err := n.client.ListMemberships(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}

	self, err := n.client.AuthenticatedEmail(ctx)
	if err != nil {
		return nil, fmt.Errorf("get authenticated user: %w", err)
	}

	return planRecipients(roomID, self, members), nil
}

func planRecipients(roomID, self string, members []model.Membership) *Recipients {
	plan := &Recipients{
		RoomID: roomID,
		Self:   self,
		Total:  len(members),
		Emails: make([]string, 0, len(members)),
	}
	for _, m := range members {
		switch {
		case m.IsPerson(self):
			plan.Skipped = append(plan.Skipped, SkippedRecipient{Email: m.PersonEmail, Reason: metrics.SkipSelf})
		case m.IsBot():
			plan.Skipped = append(plan.Skipped, SkippedRecipient{Email: m.PersonEmail, Reason: metrics.SkipBot})
		default:
			plan.Emails = append(plan.Emails, m.PersonEmail)
		}
	}
	return plan
}

// SendGroupMessage posts text to the room, then sends it as a direct message
// to every qualifying member. Nothing is sent if recipients cannot be resolved,
// and no direct message is attempted if the group post fails. Each direct
// message is independent: a failure is recorded in the report and the fan-out
// continues. The returned error only covers steps before the fan-out.
func (n *Notifier) SendGroupMessage(ctx context.Context, roomID, text string) (*Report, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	plan, err := n.Recipients(ctx, roomID)
	if err != nil {
		return nil, err
	}

	group, err := n.client.CreateMessage(ctx, model.ToRoom(roomID, text))
	if err != nil {
		n.metrics.IncGroupMessage(metrics.StatusFailed)
		n.logger.Error("group message failed", "room_id", roomID, "error", err)
		return nil, fmt.Errorf("send group message: %w", err)
	}
	n.metrics.IncGroupMessage(metrics.StatusSuccess)
	n.logger.Info("group message sent", "room_id", roomID, "message_id", group.ID)

	report := &Report{
		RoomID:         roomID,
		GroupMessageID: group.ID,
		Deliveries:     make([]Delivery, 0, len(plan.Emails)),
		Skipped:        plan.Skipped,
	}
	for _, s := range plan.Skipped {
		n.metrics.IncRecipientSkipped(s.Reason)
	}

	for _, email := range plan.Emails {
		report.Deliveries = append(report.Deliveries, n.sendDirect(ctx, email, text))
	}

	n.logger.Info("fan-out complete",
		"room_id", roomID,
		"delivered", len(report.Delivered()),
		"failed", len(report.Failed()),
		"skipped", len(report.Skipped),
	)
	return report, nil
}

// sendDirect sends a single 1:1 message.
func (n *Notifier) sendDirect(ctx context.Context, email, text string) Delivery {
	n.logger.Debug("sending direct message", "email", email)

	msg, err := n.client.CreateMessage(ctx, model.ToPerson(email, text))
	if err != nil {
		n.metrics.IncDirectMessage(metrics.StatusFailed)
		n.logger.Warn("direct message failed", "email", email, "error", err)
		return Delivery{Email: email, Err: err}
	}

	n.metrics.IncDirectMessage(metrics.StatusSuccess)
	n.logger.Info("direct message sent", "email", email, "message_id", msg.ID)
	return Delivery{Email: email, MessageID: msg.ID}
}
