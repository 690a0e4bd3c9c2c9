package communication

import (
	"context"
	"fmt"
	"os"
	"time"

	"axiapac.com/hrms/core"
	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
)

// SlackPoster is the part of the slack client used here.
type SlackPoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

type Slack struct {
	client  SlackPoster
	options SlackOption
}

type SlackOption struct {
	InfoChannelID  string
	ErrorChannelID string
}

func NewSlack(token string, options SlackOption) *Slack {
	return NewSlackWithClient(slack.New(token), options)
}

func NewSlackWithClient(client SlackPoster, options SlackOption) *Slack {
	return &Slack{client: client, options: options}
}

func (s *Slack) postMessage(ctx context.Context, channelID, message string) error {
	if channelID == "" {
		return nil
	}
	_, _, err := s.client.PostMessageContext(
		ctx,
		channelID,
		slack.MsgOptionText(message, false),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		return fmt.Errorf("failed to post message to Slack: %w", err)
	}
	return nil
}

func (s *Slack) Info(ctx context.Context, message string) error {
	return s.postMessage(ctx, s.options.InfoChannelID, message)
}

func (s *Slack) Error(ctx context.Context, message string) error {
	return s.postMessage(ctx, s.options.ErrorChannelID, message)
}

// Notify posts n to the info channel.
func (s *Slack) Notify(ctx context.Context, n core.Notification) error {
	return s.Info(ctx, fmt.Sprintf("*%s*\n%s", n.Subject, n.Text))
}

// Hook forwards error level log entries to the error channel. Posts run in the
// background, bounded by hookTimeout; fatal and panic entries wait for theirs
// because the process is about to stop.
func (s *Slack) Hook() logrus.Hook {
	return &slackHook{slack: s, timeout: hookTimeout, inflight: make(chan struct{}, hookConcurrency)}
}

const (
	hookTimeout     = 5 * time.Second
	hookConcurrency = 8
)

type slackHook struct {
	slack    *Slack
	timeout  time.Duration
	inflight chan struct{}
}

func (h *slackHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel}
}

func (h *slackHook) Fire(entry *logrus.Entry) error {
	msg := entry.Message
	if err, ok := entry.Data[logrus.ErrorKey]; ok {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	parent := context.Background()
	if entry.Context != nil {
		parent = context.WithoutCancel(entry.Context)
	}

	// a full queue means slack is slow or down; drop rather than stall logging
	select {
	case h.inflight <- struct{}{}:
	default:
		return nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() { <-h.inflight }()
		ctx, cancel := context.WithTimeout(parent, h.timeout)
		defer cancel()
		if err := h.slack.Error(ctx, msg); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}()

	if entry.Level <= logrus.FatalLevel {
		<-done
	}
	return nil
}
