package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/gregdel/pushover"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// ErrDeviceNotFound occurs when the configured device is not registered for the user
var ErrDeviceNotFound = errors.New("pushover device not registered for user")

type pushoverClient interface {
	SendMessage(message *pushover.Message, recipient *pushover.Recipient) (*pushover.Response, error)
	GetRecipientDetails(recipient *pushover.Recipient) (*pushover.RecipientDetails, error)
}

// Pushover sends system notifications through the Pushover API
type Pushover struct {
	client    pushoverClient
	recipient *pushover.Recipient
	device    string
	limiter   *rate.Limiter
	log       zerolog.Logger
}

// PushoverConfig for NewPushover
type PushoverConfig struct {
	APIToken string
	UserKey  string
	// Device to deliver to, every device of the user when empty
	Device string
	// RatePerSecond caps outgoing messages, 1 when zero
	RatePerSecond float64
}

// NewPushover notifier. Without an API token or user key the notifier never
// grants permission.
func NewPushover(cfg PushoverConfig, log zerolog.Logger) *Pushover {
	p := &Pushover{
		device: cfg.Device,
		log:    log,
	}

	perSecond := cfg.RatePerSecond
	if perSecond <= 0 {
		perSecond = 1
	}
	p.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)

	if cfg.APIToken != "" && cfg.UserKey != "" {
		p.client = pushover.New(cfg.APIToken)
		p.recipient = pushover.NewRecipient(cfg.UserKey)
	}

	return p
}

// RequestPermission validates the user key, and the device when one is configured
func (p *Pushover) RequestPermission(_ context.Context) (bool, error) {
	if p.client == nil {
		return false, nil
	}

	details, err := p.client.GetRecipientDetails(p.recipient)
	if err != nil {
		return false, fmt.Errorf("failed to validate pushover recipient: %w", err)
	}

	if p.device == "" {
		return true, nil
	}

	for _, device := range details.Devices {
		if device == p.device {
			return true, nil
		}
	}

	return false, fmt.Errorf("device %s: %w", p.device, ErrDeviceNotFound)
}

// Notify sends one message
func (p *Pushover) Notify(ctx context.Context, title, body string) error {
	if p.client == nil {
		return errors.New("pushover is not configured")
	}

	err := p.limiter.Wait(ctx)
	if err != nil {
		return fmt.Errorf("failed waiting for pushover rate limit: %w", err)
	}

	message := pushover.NewMessageWithTitle(body, title)
	message.DeviceName = p.device

	_, err = p.client.SendMessage(message, p.recipient)
	if err != nil {
		return fmt.Errorf("failed to send pushover message %q: %w", title, err)
	}

	p.log.Debug().Str("title", title).Msg("pushover message sent")

	return nil
}
