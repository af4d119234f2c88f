// Package delivery abstracts how confirmation requests reach members. The
// core only needs a direct path, a shared fallback path, and an opaque
// handle identifying the delivered message.
package delivery

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Handle identifies a delivered message so later signals (confirmation,
// out-of-band deletion) can be matched back to it.
type Handle struct {
	MessageID string
	ChannelID string
}

// Zero reports whether the handle carries no message identity.
func (h Handle) Zero() bool {
	return h.MessageID == ""
}

// Dispatcher sends texts to members. Implementations live at the chat
// platform boundary; the core never sees platform types.
type Dispatcher interface {
	// SendDirect delivers privately to the member.
	SendDirect(memberID int64, text string) (Handle, error)
	// SendFallback delivers to the shared fallback channel.
	SendFallback(text string) (Handle, error)
}

// ErrDirectUnavailable means the transport has no private-message path and
// the caller should use the fallback channel.
var ErrDirectUnavailable = errors.New("direct delivery unavailable")

// Webhook posts to a chat webhook URL. Webhooks cannot open private
// conversations, so SendDirect always fails and callers fall back to the
// shared channel with a member mention in the text.
type Webhook struct {
	url    string
	client *http.Client
}

// NewWebhook builds a Webhook dispatcher for the given URL.
func NewWebhook(url string) *Webhook {
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

var _ Dispatcher = (*Webhook)(nil)

// SendDirect always returns ErrDirectUnavailable.
func (w *Webhook) SendDirect(memberID int64, text string) (Handle, error) {
	return Handle{}, ErrDirectUnavailable
}

// SendFallback posts the text and returns the created message's identity.
func (w *Webhook) SendFallback(text string) (Handle, error) {
	if w.url == "" {
		return Handle{}, errors.New("fallback webhook not configured")
	}

	body, err := json.Marshal(map[string]string{"content": text})
	if err != nil {
		return Handle{}, err
	}

	// wait=true makes the webhook return the created message.
	resp, err := w.client.Post(w.url+"?wait=true", "application/json", bytes.NewReader(body))
	if err != nil {
		return Handle{}, fmt.Errorf("fallback delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Handle{}, fmt.Errorf("fallback delivery failed: status %d", resp.StatusCode)
	}

	var msg struct {
		ID        string `json:"id"`
		ChannelID string `json:"channel_id"`
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Handle{}, err
	}
	if err := json.Unmarshal(data, &msg); err != nil || msg.ID == "" {
		return Handle{}, errors.New("fallback delivery returned no message id")
	}
	return Handle{MessageID: msg.ID, ChannelID: msg.ChannelID}, nil
}
