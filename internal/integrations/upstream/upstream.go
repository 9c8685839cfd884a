package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Upstream wraps GET+JSON calls towards one external service.
// There is no retry: every call is a single request.
type Upstream struct {
	name   string
	client *http.Client
}

// New builds an Upstream. A zero timeout means no client-side timeout.
func New(name string, timeout time.Duration) *Upstream {
	return &Upstream{name: name, client: &http.Client{Timeout: timeout}}
}

// NewWithClient lets callers share an *http.Client (tests inject httptest clients).
func NewWithClient(name string, client *http.Client) *Upstream {
	if client == nil {
		client = http.DefaultClient
	}
	return &Upstream{name: name, client: client}
}

func (u *Upstream) Name() string { return u.name }

// GetJSON performs the GET and decodes the JSON body into out.
func (u *Upstream) GetJSON(ctx context.Context, url string, out any) error {
	resp, err := u.get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("%s upstream status %d: %s", u.name, resp.StatusCode, string(b))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s decode error: %w", u.name, err)
	}
	return nil
}

// GetRaw performs the GET and returns the status and the whole body, whatever the status.
// Only transport and read failures are errors.
func (u *Upstream) GetRaw(ctx context.Context, url string) (int, []byte, error) {
	resp, err := u.get(ctx, url)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%s read body: %w", u.name, err)
	}
	return resp.StatusCode, body, nil
}

func (u *Upstream) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s build request: %w", u.name, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request error: %w", u.name, err)
	}
	return resp, nil
}
