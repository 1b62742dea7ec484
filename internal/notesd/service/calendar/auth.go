package calendar

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/kiosk404/echonote/pkg/logger"
	"github.com/kiosk404/echonote/pkg/utils/json"
)

var ErrNotAuthorized = errors.New("Google Calendar service not available. Please check credentials.")

// LoadOAuthConfig reads the client secrets file of an installed app.
func LoadOAuthConfig(credentialsFile string, scopes []string) (*oauth2.Config, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials %q: %w", credentialsFile, err)
	}
	cfg, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse credentials %q: %w", credentialsFile, err)
	}
	return cfg, nil
}

func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tok := &oauth2.Token{}
	if err := json.Unmarshal(data, tok); err != nil {
		return nil, fmt.Errorf("parse token %q: %w", path, err)
	}
	return tok, nil
}

// SaveToken writes tok readable by the owner only.
func SaveToken(path string, tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write token %q: %w", path, err)
	}
	return os.Chmod(path, 0o600)
}

// persistingTokenSource writes refreshed tokens back to disk so the next
// start does not need to refresh again.
type persistingTokenSource struct {
	path string
	src  oauth2.TokenSource

	mu   sync.Mutex
	last string
}

func newPersistingTokenSource(ctx context.Context, cfg *oauth2.Config, tok *oauth2.Token, path string) oauth2.TokenSource {
	return &persistingTokenSource{
		path: path,
		src:  cfg.TokenSource(ctx, tok),
		last: tok.AccessToken,
	}
}

func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := p.src.Token()
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if tok.AccessToken != p.last {
		p.last = tok.AccessToken
		if err := SaveToken(p.path, tok); err != nil {
			logger.Warn("[Calendar] could not persist refreshed token: %v", err)
		}
	}
	return tok, nil
}

// Authorize runs the installed-app flow: it listens on a loopback port for
// the redirect, hands the consent URL to prompt and exchanges the returned
// code for a token.
func Authorize(ctx context.Context, cfg *oauth2.Config, prompt func(url string)) (*oauth2.Token, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("listen for OAuth redirect: %w", err)
	}
	defer ln.Close()

	flow := *cfg
	flow.RedirectURL = fmt.Sprintf("http://%s/", ln.Addr().String())
	state := uuid.NewString()

	type result struct {
		code string
		err  error
	}
	results := make(chan result, 1)
	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("state") != state:
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		case q.Get("error") != "":
			results <- result{err: fmt.Errorf("authorization denied: %s", q.Get("error"))}
		default:
			results <- result{code: q.Get("code")}
		}
		fmt.Fprintln(w, "The authentication flow has completed. You may close this window.")
	})}
	go func() { _ = srv.Serve(ln) }()
	defer srv.Close()

	prompt(flow.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce))

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-results:
		if res.err != nil {
			return nil, res.err
		}
		tok, err := flow.Exchange(ctx, res.code)
		if err != nil {
			return nil, fmt.Errorf("exchange authorization code: %w", err)
		}
		return tok, nil
	}
}
