package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewWechatBotRequiresURL(t *testing.T) {
	if _, err := NewWechatBot(""); err == nil {
		t.Error("NewWechatBot(\"\") = ok, want error")
	}
}

func TestSendTextPayload(t *testing.T) {
	var got textPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(apiResponse{ErrCode: 0})
	}))
	defer srv.Close()

	bot, err := NewWechatBot(srv.URL)
	if err != nil {
		t.Fatalf("NewWechatBot() error = %v", err)
	}
	if err := bot.SendText(context.Background(), "hello staff", true); err != nil {
		t.Fatalf("SendText() error = %v", err)
	}
	if got.MsgType != "text" {
		t.Errorf("msgtype = %q, want text", got.MsgType)
	}
	if got.Text.Content != "hello staff" {
		t.Errorf("content = %q", got.Text.Content)
	}
	if len(got.Text.MentionedList) != 1 || got.Text.MentionedList[0] != "@all" {
		t.Errorf("mentioned_list = %v, want [@all]", got.Text.MentionedList)
	}
}

func TestSendTextNoMention(t *testing.T) {
	var got textPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(apiResponse{})
	}))
	defer srv.Close()

	bot, _ := NewWechatBot(srv.URL)
	if err := bot.SendText(context.Background(), "quiet update", false); err != nil {
		t.Fatalf("SendText() error = %v", err)
	}
	if len(got.Text.MentionedList) != 0 {
		t.Errorf("mentioned_list = %v, want empty", got.Text.MentionedList)
	}
}

func TestSendTextAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The WeChat API reports failures with HTTP 200 plus errcode.
		_ = json.NewEncoder(w).Encode(apiResponse{ErrCode: 93000, ErrMsg: "invalid webhook url"})
	}))
	defer srv.Close()

	bot, _ := NewWechatBot(srv.URL)
	err := bot.SendText(context.Background(), "hi", false)
	if err == nil {
		t.Fatal("SendText() = ok, want error on errcode != 0")
	}
}

func TestSendTextHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	bot, _ := NewWechatBot(srv.URL)
	if err := bot.SendText(context.Background(), "hi", false); err == nil {
		t.Fatal("SendText() = ok, want error on non-200 status")
	}
}
