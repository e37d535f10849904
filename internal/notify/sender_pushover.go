package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/claude-notify/internal/build"
	clierrors "github.com/ariel-frischer/claude-notify/internal/errors"
)

// DefaultPushoverEndpoint is the Pushover message API
const DefaultPushoverEndpoint = "https://api.pushover.net/1/messages.json"

// Emergency priority must be acknowledged; the API requires retry and expire.
const (
	pushoverEmergency = 2
	pushoverRetry     = "60"
	pushoverExpire    = "3600"
)

var pushoverSounds = map[string]bool{
	"pushover": true, "bike": true, "bugle": true, "cashregister": true, "classical": true,
	"cosmic": true, "falling": true, "gamelan": true, "incoming": true, "intermission": true,
	"magic": true, "mechanical": true, "pianobar": true, "siren": true, "spacealarm": true,
	"tugboat": true, "alien": true, "climb": true, "persistent": true, "echo": true,
	"updown": true, "vibrate": true, "none": true,
}

type pushoverResponse struct {
	Status  int      `json:"status"`
	Request string   `json:"request"`
	Errors  []string `json:"errors"`
}

// pushoverSender posts messages to the Pushover API.
type pushoverSender struct {
	settings PushoverSettings
	client   *http.Client
	deps     Deps
}

func init() {
	register(KindPushover, func(d Deps) Sender {
		return &pushoverSender{settings: d.Settings.Pushover, client: httpClient(d), deps: d}
	})
}

func (s *pushoverSender) Kind() Kind { return KindPushover }

func (s *pushoverSender) Send(ctx context.Context, req Request) (Result, error) {
	user := firstNonEmpty(s.settings.User, lookupSecret(s.deps, SecretPushoverUser))
	if user == "" {
		return Result{}, clierrors.MissingCredentials(string(KindPushover), "user key", "CLAUDE_NOTIFY_PUSHOVER_USER")
	}
	token := firstNonEmpty(s.settings.Token, lookupSecret(s.deps, SecretPushoverToken))
	if token == "" {
		return Result{}, clierrors.MissingCredentials(string(KindPushover), "application token", "CLAUDE_NOTIFY_PUSHOVER_TOKEN")
	}

	ctx, cancel := context.WithTimeout(ctx, timeoutOrDefault(s.settings.Timeout))
	defer cancel()

	fields := s.fields(req, user, token)
	httpReq, err := s.buildRequest(ctx, fields, req.Attachment)
	if err != nil {
		return Result{}, clierrors.AdapterFailure(string(KindPushover), err, "")
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return Result{}, clierrors.AdapterFailure(string(KindPushover), err, "")
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	if resp.StatusCode >= 300 {
		return Result{}, clierrors.AdapterFailure(string(KindPushover),
			fmt.Errorf("server returned %d", resp.StatusCode), pushoverDiagnostic(body))
	}
	s.deps.Logger.Debug().Int("status", resp.StatusCode).Msg("pushover message sent")
	return Result{}, nil
}

func (s *pushoverSender) fields(req Request, user, token string) url.Values {
	v := url.Values{}
	v.Set("token", token)
	v.Set("user", user)
	v.Set("title", req.Title)
	v.Set("message", req.Message)

	priority := s.priority(req.Urgency)
	v.Set("priority", formatPriority(priority))
	if priority == pushoverEmergency {
		v.Set("retry", pushoverRetry)
		v.Set("expire", pushoverExpire)
	}

	if !req.Sound.Enabled {
		v.Set("sound", "none")
	} else if name := strings.ToLower(req.Sound.Name); pushoverSounds[name] {
		v.Set("sound", name)
	}
	if s.settings.Device != "" {
		v.Set("device", s.settings.Device)
	}
	if isURL(req.Attachment) {
		v.Set("url", req.Attachment)
	}
	return v
}

func (s *pushoverSender) priority(u Urgency) int {
	if p := s.settings.Priority; p != nil && ValidPushoverPriority(*p) {
		return *p
	}
	switch u {
	case UrgencyLow:
		return -1
	case UrgencyCritical:
		return 1
	default:
		return 0
	}
}

func (s *pushoverSender) endpoint() string {
	if s.settings.Endpoint != "" {
		return s.settings.Endpoint
	}
	return DefaultPushoverEndpoint
}

// buildRequest sends a urlencoded form, or a multipart form when a local image
// is attached.
func (s *pushoverSender) buildRequest(ctx context.Context, fields url.Values, attachment string) (*http.Request, error) {
	var (
		body        io.Reader
		contentType string
	)
	if attachment != "" && !isURL(attachment) && isImage(attachment) {
		buf, ct, err := multipartBody(fields, attachment)
		if err != nil {
			return nil, err
		}
		body, contentType = buf, ct
	} else {
		if attachment != "" && !isURL(attachment) {
			s.deps.Logger.Debug().Str("attachment", attachment).Msg("pushover only accepts image attachments, skipping")
		}
		body, contentType = strings.NewReader(fields.Encode()), "application/x-www-form-urlencoded"
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint(), body)
	if err != nil {
		return nil, fmt.Errorf("build pushover request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("User-Agent", build.UserAgent())
	return httpReq, nil
}

func multipartBody(fields url.Values, attachment string) (*bytes.Buffer, string, error) {
	data, err := os.ReadFile(attachment)
	if err != nil {
		return nil, "", fmt.Errorf("reading attachment: %w", err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, values := range fields {
		for _, value := range values {
			if err := w.WriteField(key, value); err != nil {
				return nil, "", err
			}
		}
	}
	part, err := w.CreateFormFile("attachment", filepath.Base(attachment))
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func isImage(path string) bool {
	return strings.HasPrefix(mime.TypeByExtension(strings.ToLower(filepath.Ext(path))), "image/")
}

// pushoverDiagnostic prefers the API's error list over the raw body.
func pushoverDiagnostic(body []byte) string {
	var resp pushoverResponse
	if err := json.Unmarshal(body, &resp); err == nil && len(resp.Errors) > 0 {
		return strings.Join(resp.Errors, "; ")
	}
	return string(body)
}
