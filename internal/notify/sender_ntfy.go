package notify

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ariel-frischer/claude-notify/internal/build"
	clierrors "github.com/ariel-frischer/claude-notify/internal/errors"
)

const (
	// DefaultNtfyServer is used when no server is configured
	DefaultNtfyServer = "https://ntfy.sh"
	// DefaultHTTPTimeout bounds a push request when the backend sets no timeout
	DefaultHTTPTimeout = 10 * time.Second

	errorBodyLimit = 2048
)

var ntfyTypeTags = map[Type][]string{
	TypeInput:    {"question", "bell"},
	TypeComplete: {"checkmark"},
	TypeError:    {"warning", "exclamation"},
}

// ntfySender publishes to an ntfy topic over HTTP.
type ntfySender struct {
	settings NtfySettings
	client   *http.Client
	deps     Deps
}

func init() {
	register(KindNtfy, func(d Deps) Sender {
		return &ntfySender{settings: d.Settings.Ntfy, client: httpClient(d), deps: d}
	})
}

func (s *ntfySender) Kind() Kind { return KindNtfy }

func (s *ntfySender) Send(ctx context.Context, req Request) (Result, error) {
	endpoint, err := s.endpoint()
	if err != nil {
		return Result{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeoutOrDefault(s.settings.Timeout))
	defer cancel()

	httpReq, err := s.buildRequest(ctx, endpoint, req)
	if err != nil {
		return Result{}, clierrors.AdapterFailure(string(KindNtfy), err, "")
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return Result{}, clierrors.AdapterFailure(string(KindNtfy), err, "")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return Result{}, clierrors.AdapterFailure(string(KindNtfy),
			fmt.Errorf("server returned %d", resp.StatusCode), string(body))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	s.deps.Logger.Debug().Str("endpoint", endpoint).Int("status", resp.StatusCode).Msg("ntfy notification published")
	return Result{}, nil
}

// endpoint returns the topic URL. A topic that is already a full URL is used as is.
func (s *ntfySender) endpoint() (string, error) {
	topic := strings.TrimSpace(s.settings.Topic)
	if topic == "" {
		return "", clierrors.MissingCredentials(string(KindNtfy), "topic", "CLAUDE_NOTIFY_NTFY_TOPIC")
	}
	if strings.HasPrefix(topic, "http://") || strings.HasPrefix(topic, "https://") {
		return topic, nil
	}
	server := strings.TrimRight(strings.TrimSpace(s.settings.Server), "/")
	if server == "" {
		server = DefaultNtfyServer
	}
	return server + "/" + url.PathEscape(strings.Trim(topic, "/")), nil
}

func (s *ntfySender) buildRequest(ctx context.Context, endpoint string, req Request) (*http.Request, error) {
	method := http.MethodPost
	var body io.Reader = strings.NewReader(req.Message)
	header := http.Header{}

	switch {
	case req.Attachment == "":
	case isURL(req.Attachment):
		header.Set("Attach", sanitizeHeader(req.Attachment))
	default:
		// A local file becomes the request body and the message moves to a header.
		f, err := os.Open(req.Attachment)
		if err != nil {
			return nil, fmt.Errorf("opening attachment: %w", err)
		}
		method = http.MethodPut
		body = f
		header.Set("Filename", headerValue(filepath.Base(req.Attachment)))
		header.Set("Message", headerValue(req.Message))
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		if c, ok := body.(io.Closer); ok {
			_ = c.Close()
		}
		return nil, fmt.Errorf("build ntfy request: %w", err)
	}
	httpReq.Header = header
	httpReq.Header.Set("User-Agent", build.UserAgent())
	if method == http.MethodPost {
		httpReq.Header.Set("Content-Type", "text/plain; charset=utf-8")
	}
	httpReq.Header.Set("Title", headerValue(req.Title))
	if tags := s.tags(req.Type); len(tags) > 0 {
		httpReq.Header.Set("Tags", headerValue(strings.Join(tags, ",")))
	}
	if p := s.priority(req.Urgency); p != "default" {
		httpReq.Header.Set("Priority", p)
	}
	if s.settings.Click != "" {
		httpReq.Header.Set("Click", sanitizeHeader(s.settings.Click))
	}
	if s.settings.Actions != "" {
		httpReq.Header.Set("Actions", headerValue(s.settings.Actions))
	}
	if token := s.token(); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+sanitizeHeader(token))
	}
	return httpReq, nil
}

// tags merges configured tags with the type's tags, keeping first occurrences.
func (s *ntfySender) tags(t Type) []string {
	seen := map[string]bool{}
	var out []string
	for _, tag := range append(splitList(s.settings.Tags...), ntfyTypeTags[t]...) {
		if !seen[tag] {
			seen[tag] = true
			out = append(out, tag)
		}
	}
	return out
}

func (s *ntfySender) priority(u Urgency) string {
	if p := strings.ToLower(strings.TrimSpace(s.settings.Priority)); ValidNtfyPriority(p) {
		return p
	}
	switch u {
	case UrgencyLow:
		return "low"
	case UrgencyCritical:
		return "max"
	default:
		return "default"
	}
}

func (s *ntfySender) token() string {
	if s.settings.Token != "" {
		return s.settings.Token
	}
	return lookupSecret(s.deps, SecretNtfyToken)
}

// headerValue sanitizes s and RFC 2047-encodes it when it is not plain ASCII.
func headerValue(s string) string {
	s = sanitizeHeader(s)
	if isASCII(s) {
		return s
	}
	return mime.QEncoding.Encode("utf-8", s)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// lookupSecret reads a credential from the secret store. A missing store or a
// lookup failure yields "".
func lookupSecret(d Deps, account string) string {
	if d.Secrets == nil {
		return ""
	}
	v, err := d.Secrets.Secret(account)
	if err != nil {
		d.Logger.Debug().Err(err).Str("account", account).Msg("keyring lookup failed")
		return ""
	}
	return v
}

func httpClient(d Deps) *http.Client {
	if d.HTTPClient != nil {
		return d.HTTPClient
	}
	return &http.Client{}
}

func timeoutOrDefault(seconds int) time.Duration {
	if seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return DefaultHTTPTimeout
}
