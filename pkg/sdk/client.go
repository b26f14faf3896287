// Package sdk provides the client-side library for talking to a Celerix Roster.
// It supports both remote daemons over HTTP and an embedded in-process roster.
package sdk

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/celerix-dev/celerix-roster/pkg/schema"
)

const maxAttempts = 3

// Client is a remote client for a roster daemon.
// It implements the RosterAPI interface.
type Client struct {
	baseURL string
	http    *http.Client
}

// Connect builds a client for addr ("host:port" or a full URL) and checks the
// daemon answers GET /status.
func Connect(addr string) (*Client, error) {
	c := NewClient(addr, &http.Client{Timeout: 10 * time.Second})
	if _, err := c.GetStatus(); err != nil {
		return nil, fmt.Errorf("connect %s: %w", addr, err)
	}
	return c, nil
}

// NewClient builds a client without probing the daemon.
func NewClient(addr string, hc *http.Client) *Client {
	if !strings.HasPrefix(addr, "http://") && !strings.HasPrefix(addr, "https://") {
		addr = "http://" + addr
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(addr, "/"), http: hc}
}

func (c *Client) ListUsers() ([]schema.User, error) {
	var users []schema.User
	if err := c.get("/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) AddUser(u schema.User) (schema.User, error) {
	body, err := json.Marshal(u)
	if err != nil {
		return schema.User{}, err
	}

	// not retried: a lost response must not append the user twice
	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/users", bytes.NewReader(body))
	if err != nil {
		return schema.User{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return schema.User{}, err
	}
	defer resp.Body.Close()

	var created schema.User
	if err := decode(resp, http.StatusCreated, &created); err != nil {
		return schema.User{}, err
	}
	return created, nil
}

func (c *Client) GetStatus() (schema.Status, error) {
	var status schema.Status
	if err := c.get("/status", &status); err != nil {
		return schema.Status{}, err
	}
	return status, nil
}

// get issues an idempotent GET, retrying transport failures with backoff.
func (c *Client) get(path string, out any) error {
	var err error
	for i := 0; i < maxAttempts; i++ {
		var resp *http.Response
		resp, err = c.http.Get(c.baseURL + path)
		if err == nil {
			err = decode(resp, http.StatusOK, out)
			resp.Body.Close()

			var apiErr *APIError
			if err == nil || errors.As(err, &apiErr) {
				// the daemon answered; retrying will not change its mind
				return err
			}
		}

		fmt.Fprintf(os.Stderr, "[Roster SDK] Attempt %d failed: %v\n", i+1, err)
		time.Sleep(time.Duration((i+1)*200) * time.Millisecond)
	}
	return fmt.Errorf("failed after %d attempts. last error: %w", maxAttempts, err)
}

// decode reads a response, turning any status other than want into an *APIError.
func decode(resp *http.Response, want int, out any) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != want {
		msg := strings.TrimSpace(string(body))
		var errBody struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &errBody) == nil && errBody.Error != "" {
			msg = errBody.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
