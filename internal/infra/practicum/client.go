// Package practicum talks to the homework review API.
package practicum

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// APIRequestError is returned for transport failures, non-2xx answers and
// bodies that cannot be decoded.
type APIRequestError struct {
	StatusCode int // zero unless the server answered
	Reason     string
	Err        error
}

func (e *APIRequestError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("homework API answered %d %s", e.StatusCode, e.Reason)
	case e.Err != nil:
		return fmt.Sprintf("homework API request failed: %s: %v", e.Reason, e.Err)
	default:
		return "homework API request failed: " + e.Reason
	}
}

func (e *APIRequestError) Unwrap() error { return e.Err }

type Client struct {
	endpoint string
	token    string
	http     *http.Client
	logger   *logrus.Entry
}

func NewClient(endpoint, token string, timeout time.Duration, logger *logrus.Entry) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// GetAPIAnswer fetches homework statuses changed since cursor (unix seconds).
// The decoded body is returned as is; shape checks belong to the caller.
// Numbers are kept as json.Number.
func (c *Client) GetAPIAnswer(ctx context.Context, cursor int64) (any, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, &APIRequestError{Reason: "bad endpoint", Err: err}
	}
	q := u.Query()
	q.Set("from_date", strconv.FormatInt(cursor, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &APIRequestError{Reason: "build request", Err: err}
	}
	req.Header.Set("Authorization", "OAuth "+c.token)

	c.logger.WithField("from_date", cursor).Debug("Requesting homework statuses")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIRequestError{Reason: "transport", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &APIRequestError{StatusCode: resp.StatusCode, Reason: reasonPhrase(resp)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIRequestError{Reason: "read body", Err: err}
	}

	var answer any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&answer); err != nil {
		return nil, &APIRequestError{Reason: "decode JSON", Err: err}
	}
	if dec.More() {
		return nil, &APIRequestError{Reason: "decode JSON", Err: errors.New("trailing data after JSON value")}
	}
	c.logger.Debug("Homework API answer received")
	return answer, nil
}

// reasonPhrase returns the phrase the server sent after the status code,
// falling back to the standard text when it sent none.
func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}
