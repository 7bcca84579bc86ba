// Package notify implements the outbound WeChat work-bot webhook
// client.  Sends are best-effort: delivery failures are reported to the
// caller but never affect the bookings that triggered them.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WechatBot posts text messages to a WeChat work group-chat webhook.
type WechatBot struct {
	webhookURL string
	client     *http.Client
}

// NewWechatBot constructs a bot for the given webhook URL.
func NewWechatBot(webhookURL string) (*WechatBot, error) {
	if webhookURL == "" {
		return nil, fmt.Errorf("webhook URL is required")
	}
	return &WechatBot{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type textPayload struct {
	MsgType string      `json:"msgtype"`
	Text    textContent `json:"text"`
}

type textContent struct {
	Content             string   `json:"content"`
	MentionedList       []string `json:"mentioned_list"`
	MentionedMobileList []string `json:"mentioned_mobile_list"`
}

type apiResponse struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

// SendText posts a text message, optionally mentioning everyone in the
// group.  The WeChat API reports failures in the response body with a
// non-zero errcode even on HTTP 200, so both are checked.
func (b *WechatBot) SendText(ctx context.Context, content string, mentionAll bool) error {
	payload := textPayload{
		MsgType: "text",
		Text: textContent{
			Content:             content,
			MentionedList:       []string{},
			MentionedMobileList: []string{},
		},
	}
	if mentionAll {
		payload.Text.MentionedList = []string{"@all"}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode webhook response: %w", err)
	}
	if out.ErrCode != 0 {
		return fmt.Errorf("wechat API error: %s (errcode: %d)", out.ErrMsg, out.ErrCode)
	}
	return nil
}
