package alert

import (
	"context"
	"fmt"

	"github.com/dawsen1208/shelfd/internal/errors"
	"github.com/dawsen1208/shelfd/internal/notify"

	"github.com/slack-go/slack"
)

// SlackChannel forwards alerts to a Slack channel.
type SlackChannel struct {
	client  *slack.Client
	channel string
}

func NewSlackChannel(botToken, channel string) *SlackChannel {
	return &SlackChannel{
		client:  slack.New(botToken),
		channel: channel,
	}
}

func (s *SlackChannel) Name() string {
	return "slack"
}

func (s *SlackChannel) Notify(ctx context.Context, evt notify.Event, _ Options) error {
	text := fmt.Sprintf("*%s*\n%s", evt.Title, evt.Body)
	_, _, err := s.client.PostMessageContext(ctx, s.channel, slack.MsgOptionText(text, false))
	if err != nil {
		return errors.Wrap(err, "slack post failed")
	}
	return nil
}

func (s *SlackChannel) Health(ctx context.Context) error {
	if _, err := s.client.AuthTestContext(ctx); err != nil {
		return errors.Transient("slack auth failed")
	}
	return nil
}
