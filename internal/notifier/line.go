package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

const defaultLinePushURL = "https://api.line.me/v2/bot/message/push"

// Sender delivers a text message to the configured recipient.
type Sender interface {
	Send(text string) error
}

// LineNotifier pushes messages to one LINE user via the Messaging API.
type LineNotifier struct {
	Token   string
	UserID  string
	PushURL string
	Client  *http.Client
}

// NewLineNotifier creates a notifier with optional proxy support. Empty
// credentials are allowed; Send then degrades to a logged skip.
func NewLineNotifier(token, userID, proxyURL string) *LineNotifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &LineNotifier{
		Token:   token,
		UserID:  userID,
		PushURL: defaultLinePushURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

type lineMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type linePush struct {
	To       string        `json:"to"`
	Messages []lineMessage `json:"messages"`
}

// Send pushes text to the configured recipient. Missing credentials are
// not an error: the run has already printed its result, so delivery loss
// only costs the push, not the computation.
func (n *LineNotifier) Send(text string) error {
	if n.Token == "" || n.UserID == "" {
		log.Println("[WARN] LINE credentials not set, skipping notification")
		return nil
	}
	if text == "" {
		return fmt.Errorf("empty message")
	}

	payload := linePush{
		To:       n.UserID,
		Messages: []lineMessage{{Type: "text", Text: text}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, n.PushURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+n.Token)

	resp, err := n.Client.Do(req)
	if err != nil {
		return fmt.Errorf("push message: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	log.Printf("[INFO] LINE API response: %d %s", resp.StatusCode, string(respBody))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("LINE API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
