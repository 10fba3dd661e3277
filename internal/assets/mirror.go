// internal/assets/mirror.go
//
// Remote content mirror, the last tier of the resolution chain.
// Responsibilities:
//   - GET <base>/images/answers/<file> and <base>/sounds/<file>.
//   - Authenticate with a static bearer token, or with a short-lived HS256
//     JWT minted per request when a signing key is configured.
//   - Bound every attempt with its own timeout.
//
// Non-2xx responses are a Miss; transport failures and timeouts are a
// TransportError. Neither stops the chain.

package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// DefaultMirrorTimeout bounds a single remote attempt.
	DefaultMirrorTimeout = 5 * time.Second

	maxMirrorBody = 16 << 20
	tokenLifetime = time.Minute
	tokenIssuer   = "puzzle-server"
)

var errBodyTooLarge = errors.New("mirror response too large")

// MirrorConfig locates and authenticates the remote mirror.
type MirrorConfig struct {
	BaseURL    string
	Token      string        // static bearer credential
	SigningKey string        // HS256 key; takes precedence over Token
	Timeout    time.Duration // per attempt; DefaultMirrorTimeout if zero
	Client     *http.Client  // http.DefaultClient if nil
}

// Mirror fetches media over HTTP.
type Mirror struct {
	base       *url.URL
	token      string
	signingKey []byte
	timeout    time.Duration
	client     *http.Client
	now        func() time.Time
}

// NewMirror validates cfg.BaseURL and builds a Mirror.
func NewMirror(cfg MirrorConfig) (*Mirror, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid mirror url %q", cfg.BaseURL)
	}
	m := &Mirror{
		base:    u,
		token:   cfg.Token,
		timeout: cfg.Timeout,
		client:  cfg.Client,
		now:     time.Now,
	}
	if cfg.SigningKey != "" {
		m.signingKey = []byte(cfg.SigningKey)
	}
	if m.timeout <= 0 {
		m.timeout = DefaultMirrorTimeout
	}
	if m.client == nil {
		m.client = http.DefaultClient
	}
	return m, nil
}

func (m *Mirror) Name() string { return "mirror" }

// Fetch requests one candidate from the mirror.
func (m *Mirror) Fetch(ctx context.Context, kind Kind, filename string) Result {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	target := m.base.JoinPath(mirrorPrefix(kind), filename)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return failed(err)
	}
	if err := m.authorize(req, "/"+strings.TrimPrefix(target.Path, "/")); err != nil {
		return failed(err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return failed(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return missed()
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxMirrorBody+1))
	if err != nil {
		return failed(err)
	}
	if len(b) > maxMirrorBody {
		return failed(errBodyTooLarge)
	}
	return found(b, responseContentType(resp, filename))
}

// authorize attaches the mirror credential, if any. path is the rooted
// request path and becomes the token subject.
func (m *Mirror) authorize(req *http.Request, path string) error {
	switch {
	case m.signingKey != nil:
		now := m.now()
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   path,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		})
		ss, err := tok.SignedString(m.signingKey)
		if err != nil {
			return fmt.Errorf("sign mirror token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+ss)
	case m.token != "":
		req.Header.Set("Authorization", "Bearer "+m.token)
	}
	return nil
}

func mirrorPrefix(kind Kind) string {
	if kind == KindSound {
		return "sounds"
	}
	return "images/answers"
}

// responseContentType prefers the mirror's header unless it is missing or
// generic.
func responseContentType(resp *http.Response, filename string) string {
	ct := resp.Header.Get("Content-Type")
	if mt, _, err := mime.ParseMediaType(ct); err == nil && mt != "application/octet-stream" && mt != "binary/octet-stream" {
		return ct
	}
	return ContentTypeFor(filename)
}
