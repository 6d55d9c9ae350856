package gotrue

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"soycraft-insights/internal/platform/httpclient"
	"soycraft-insights/internal/ports/auth"
)

var (
	ErrGotrueNotConfigured = errors.New("gotrue client not configured")
	ErrGotrueUnauthorized  = errors.New("gotrue unauthorized")
	ErrGotrueUpstream      = errors.New("gotrue upstream error")
)

// Config del cliente GoTrue. BaseURL es la raíz del proyecto (el path
// /auth/v1 se agrega acá); APIKey es la anon/service key que GoTrue exige
// además del token de sesión.
type Config struct {
	BaseURL string
	APIKey  string

	// Timeout HTTP (si es cero, se usan 5s).
	Timeout time.Duration
}

type Client struct {
	apiKey string
	http   *httpclient.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), timeout)
	if err != nil {
		// base URL inválida => cliente no configurado; IsConfigured lo refleja
		hc = httpclient.New(timeout)
	}

	return &Client{
		apiKey: strings.TrimSpace(cfg.APIKey),
		http:   hc,
	}
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != "" && c.apiKey != ""
}

// GetUser resuelve el usuario dueño de un token de sesión contra
// GET /auth/v1/user. Se llama en cada request: sin cache, el IdP es la
// única fuente de verdad sobre sesiones vivas.
func (c *Client) GetUser(ctx context.Context, token string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrGotrueNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrGotrueUnauthorized
	}

	var out struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}

	headers := map[string]string{
		"Authorization": "Bearer " + token,
		"apikey":        c.apiKey,
	}
	err := c.http.DoJSON(ctx, http.MethodGet, "/auth/v1/user", headers, nil, &out)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden {
				return auth.Claims{}, ErrGotrueUnauthorized
			}
			return auth.Claims{}, fmt.Errorf("%w: status=%d", ErrGotrueUpstream, httpErr.StatusCode)
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrGotrueUpstream, err)
	}

	out.ID = strings.TrimSpace(out.ID)
	if out.ID == "" {
		return auth.Claims{}, errors.New("gotrue response missing user id")
	}

	return auth.Claims{
		UserID: out.ID,
		Email:  strings.TrimSpace(out.Email),
	}, nil
}
