// Package notify delivers one formatted message per posting to a Telegram
// chat through the Bot API.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"jobwatch-bot/internal/domain"

	"golang.org/x/time/rate"
)

const defaultAPIBase = "https://api.telegram.org"

type Telegram struct {
	token   string
	chatID  int64
	hc      *http.Client
	base    string // override for tests
	limiter *rate.Limiter
}

func NewTelegram(token string, chatID int64) *Telegram {
	return &Telegram{
		token:  token,
		chatID: chatID,
		hc:     &http.Client{Timeout: 15 * time.Second},
		base:   defaultAPIBase,
		// group chats allow ~20 messages/minute; stay under it
		limiter: rate.NewLimiter(rate.Every(3*time.Second), 1),
	}
}

// Deliver sends exactly one message for j. If Telegram rejects the Markdown
// (a title with a stray '*' is enough) the same text is retried once as
// plain text: a degraded message beats a silently dropped posting. Any other
// failure is returned to the caller, which decides the retry policy.
func (t *Telegram) Deliver(ctx context.Context, j domain.Job) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}

	text := RenderMessage(j)
	err := t.send(ctx, text, "Markdown")
	if err == nil {
		return nil
	}
	if isParseError(err) {
		// the fallback is a second request and takes its own rate slot
		if err := t.limiter.Wait(ctx); err != nil {
			return err
		}
		return t.send(ctx, text, "")
	}
	return err
}

type sendRequest struct {
	ChatID                int64  `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

type apiError struct {
	Code        int
	Description string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("telegram api error %d: %s", e.Code, e.Description)
}

func (t *Telegram) send(ctx context.Context, text, parseMode string) error {
	body, err := json.Marshal(sendRequest{
		ChatID:                t.chatID,
		Text:                  text,
		ParseMode:             parseMode,
		DisableWebPagePreview: true,
	})
	if err != nil {
		return err
	}

	u := fmt.Sprintf("%s/bot%s/sendMessage", t.base, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := t.hc.Do(req)
	if err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	defer res.Body.Close()

	var ar apiResponse
	if err := json.NewDecoder(res.Body).Decode(&ar); err != nil {
		return fmt.Errorf("telegram decode: %w", err)
	}
	if !ar.OK {
		return &apiError{Code: ar.ErrorCode, Description: ar.Description}
	}
	return nil
}

func isParseError(err error) bool {
	ae, ok := err.(*apiError)
	if !ok {
		return false
	}
	return ae.Code == 400 && strings.Contains(strings.ToLower(ae.Description), "parse")
}
