package communication

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"axiapac.com/hrms/core"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type posted struct {
	channel string
	count   int
}

// fakePoster records posts. When release is set each post waits on it, or on
// the context, first.
type fakePoster struct {
	mu      sync.Mutex
	posts   []posted
	err     error
	release chan struct{}
}

func (f *fakePoster) PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return "", "", ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts = append(f.posts, posted{channel: channelID, count: len(options)})
	return channelID, "1700000000.000100", f.err
}

func (f *fakePoster) sent() []posted {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]posted(nil), f.posts...)
}

func TestSlackNotifyPostsToInfoChannel(t *testing.T) {
	poster := &fakePoster{}
	s := NewSlackWithClient(poster, SlackOption{InfoChannelID: "C-INFO", ErrorChannelID: "C-ERR"})

	require.NoError(t, s.Notify(context.Background(), core.Notification{Subject: "New employee", Text: "Asha hired"}))
	require.Len(t, poster.posts, 1)
	assert.Equal(t, "C-INFO", poster.posts[0].channel)

	require.NoError(t, s.Error(context.Background(), "boom"))
	assert.Equal(t, "C-ERR", poster.posts[1].channel)
}

func TestSlackSkipsUnsetChannel(t *testing.T) {
	poster := &fakePoster{}
	s := NewSlackWithClient(poster, SlackOption{InfoChannelID: "C-INFO"})

	require.NoError(t, s.Error(context.Background(), "boom"))
	assert.Empty(t, poster.posts)
}

func TestSlackWrapsErrors(t *testing.T) {
	poster := &fakePoster{err: errors.New("channel_not_found")}
	s := NewSlackWithClient(poster, SlackOption{InfoChannelID: "C-INFO"})

	err := s.Info(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel_not_found")
}

func TestSlackHookFiresOnErrors(t *testing.T) {
	poster := &fakePoster{}
	s := NewSlackWithClient(poster, SlackOption{ErrorChannelID: "C-ERR"})

	logger := logrus.New()
	logger.AddHook(s.Hook())
	logger.Info("ignored")
	logger.WithError(errors.New("db down")).Error("request failed")

	require.Eventually(t, func() bool { return len(poster.sent()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, "C-ERR", poster.sent()[0].channel)
}

func TestSlackHookDoesNotBlockLogging(t *testing.T) {
	poster := &fakePoster{release: make(chan struct{})}
	s := NewSlackWithClient(poster, SlackOption{ErrorChannelID: "C-ERR"})

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.AddHook(s.Hook())

	logged := make(chan struct{})
	go func() {
		for i := 0; i < 20; i++ {
			logger.Error("request failed")
		}
		close(logged)
	}()

	select {
	case <-logged:
	case <-time.After(time.Second):
		t.Fatal("logging waited on slack")
	}
	assert.Empty(t, poster.sent())

	close(poster.release)
	require.Eventually(t, func() bool { return len(poster.sent()) == hookConcurrency }, time.Second, 10*time.Millisecond)
}

func TestSlackHookTimesOut(t *testing.T) {
	poster := &fakePoster{release: make(chan struct{})}
	hook := NewSlackWithClient(poster, SlackOption{ErrorChannelID: "C-ERR"}).Hook().(*slackHook)
	hook.timeout = 20 * time.Millisecond

	// the fatal path waits for the post, so the timeout bounds it
	start := time.Now()
	require.NoError(t, hook.Fire(&logrus.Entry{Level: logrus.FatalLevel, Message: "shutting down"}))
	assert.Less(t, time.Since(start), time.Second)
	assert.Empty(t, poster.sent())
	assert.Empty(t, hook.inflight)
}

type fakeSES struct {
	inputs []*ses.SendRawEmailInput
}

func (f *fakeSES) SendRawEmail(_ context.Context, in *ses.SendRawEmailInput, _ ...func(*ses.Options)) (*ses.SendRawEmailOutput, error) {
	f.inputs = append(f.inputs, in)
	return &ses.SendRawEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestEmailNotify(t *testing.T) {
	client := &fakeSES{}
	e := NewEmailWithClient(client, "hr@example.com")

	require.NoError(t, e.Notify(context.Background(), core.Notification{
		Subject:    "Leave request approved",
		Text:       "Hi Ravi, your leave has been approved.",
		Recipients: []string{"ravi@example.com"},
	}))
	require.Len(t, client.inputs, 1)

	raw := string(client.inputs[0].RawMessage.Data)
	assert.Contains(t, raw, "From: hr@example.com\r\n")
	assert.Contains(t, raw, "To: ravi@example.com\r\n")
	assert.Contains(t, raw, "Subject: Leave request approved\r\n")
	assert.Contains(t, raw, "your leave has been approved.")

	// channel style notifications carry no recipients
	require.NoError(t, e.Notify(context.Background(), core.Notification{Subject: "New employee"}))
	assert.Len(t, client.inputs, 1)
}

func TestBuildEmailBufferRequiresAddresses(t *testing.T) {
	_, err := BuildEmailBuffer(&EmailInfo{To: []string{"a@example.com"}})
	assert.Error(t, err)
	_, err = BuildEmailBuffer(&EmailInfo{From: "hr@example.com"})
	assert.Error(t, err)

	buf, err := BuildEmailBuffer(&EmailInfo{From: "hr@example.com", To: []string{"a@example.com", "b@example.com"}, Subject: "Hi", HTML: "<p>Hi</p>"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "To: a@example.com, b@example.com\r\n")
	assert.Contains(t, buf.String(), "text/html; charset=UTF-8")
	assert.NotContains(t, buf.String(), "text/plain")
}

type countingNotifier struct {
	calls int
	err   error
}

func (c *countingNotifier) Notify(context.Context, core.Notification) error {
	c.calls++
	return c.err
}

func TestMultiNotifiesAll(t *testing.T) {
	failing := &countingNotifier{err: errors.New("smtp down")}
	ok := &countingNotifier{}
	m := Multi{failing, ok, Nop{}}

	err := m.Notify(context.Background(), core.Notification{Subject: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp down")
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, ok.calls)

	assert.NoError(t, Multi{}.Notify(context.Background(), core.Notification{}))
}
