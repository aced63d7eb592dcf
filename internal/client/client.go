// Package client talks to the dashboard API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/BerylCAtieno/growthpro-dashboard/internal/models"
)

const (
	fallbackBusinessData = "Failed to fetch business data"
	fallbackHeadline     = "Failed to regenerate headline"
)

// TransportError is a failure to reach the server or to read its answer.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Reason is the innermost cause, e.g. "connection refused", without the
// method and URL noise of the wrapping errors.
func (e *TransportError) Reason() string {
	err := e.Err
	if err == nil {
		return ""
	}
	for next := errors.Unwrap(err); next != nil; next = errors.Unwrap(next) {
		err = next
	}
	return err.Error()
}

// APIError is a non-2xx answer. Message is the server's error text, or a
// generic message when the body carried none.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsClientFault reports whether the server rejected the input (4xx).
func (e *APIError) IsClientFault() bool {
	return e.Status >= 400 && e.Status < 500
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for baseURL. No timeout is imposed unless
// httpClient carries one; callers bound calls through the context.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// GetBusinessData calls POST /business-data.
func (c *Client) GetBusinessData(ctx context.Context, id models.BusinessIdentity) (*models.Snapshot, error) {
	const op = "fetch business data"

	payload, err := json.Marshal(id)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/business-data", bytes.NewReader(payload))
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req, op, fallbackBusinessData)
	if err != nil {
		return nil, err
	}

	for _, field := range []string{"rating", "reviews", "headline"} {
		if !gjson.GetBytes(body, field).Exists() {
			return nil, &TransportError{Op: op, Err: fmt.Errorf("response is missing %q", field)}
		}
	}

	var snap models.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	return &snap, nil
}

// RegenerateHeadline calls GET /regenerate-headline.
func (c *Client) RegenerateHeadline(ctx context.Context, name, location string) (*models.HeadlineResponse, error) {
	const op = "regenerate headline"

	params := url.Values{}
	params.Set("name", name)
	params.Set("location", location)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/regenerate-headline?"+params.Encode(), nil)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	body, err := c.do(req, op, fallbackHeadline)
	if err != nil {
		return nil, err
	}

	headline := gjson.GetBytes(body, "headline")
	if headline.Type != gjson.String || headline.String() == "" {
		return nil, &TransportError{Op: op, Err: errors.New("response has no headline")}
	}
	return &models.HeadlineResponse{Headline: headline.String()}, nil
}

func (c *Client) do(req *http.Request, op, fallback string) ([]byte, error) {
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fallback
		if gjson.ValidBytes(body) {
			if e := gjson.GetBytes(body, "error"); e.Type == gjson.String && e.String() != "" {
				msg = e.String()
			}
		}
		return nil, &APIError{Status: resp.StatusCode, Message: msg}
	}

	if !gjson.ValidBytes(body) {
		return nil, &TransportError{Op: op, Err: errors.New("response is not valid JSON")}
	}
	return body, nil
}
