// Package api implements the domain-API capability: record CRUD against
// a REST endpoint. Page-object resolution never touches it; only keyword
// implementations do.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultVersion is the API version used when the project config does
// not set one.
const DefaultVersion = "v58.0"

// Client talks to the record API. It implements capability.RecordAPI.
type Client struct {
	baseURL string
	version string
	token   string
	http    *http.Client
}

// New builds a client for the given API base URL. token may be empty
// for endpoints that authenticate some other way (e.g. a local stub
// during tests).
func New(baseURL, version, token string) *Client {
	if version == "" {
		version = DefaultVersion
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		version: version,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// RequestError reports a non-2xx response from the record API.
type RequestError struct {
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("record API returned status %d: %s", e.Status, e.Body)
}

func (c *Client) recordURL(recordType, id string) string {
	u := fmt.Sprintf("%s/services/data/%s/sobjects/%s", c.baseURL, c.version, recordType)
	if id != "" {
		u += "/" + id
	}
	return u
}

func (c *Client) do(ctx context.Context, method, url string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{Status: resp.StatusCode, Body: strings.TrimSpace(string(payload))}
	}
	return payload, nil
}

// CreateRecord creates a record and returns its id.
func (c *Client) CreateRecord(ctx context.Context, recordType string, fields map[string]any) (string, error) {
	payload, err := c.do(ctx, http.MethodPost, c.recordURL(recordType, ""), fields)
	if err != nil {
		return "", err
	}
	var result struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(payload, &result); err != nil {
		return "", fmt.Errorf("failed to decode create response: %w", err)
	}
	return result.ID, nil
}

// GetRecord fetches a record by type and id.
func (c *Client) GetRecord(ctx context.Context, recordType, id string) (map[string]any, error) {
	payload, err := c.do(ctx, http.MethodGet, c.recordURL(recordType, id), nil)
	if err != nil {
		return nil, err
	}
	var record map[string]any
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return record, nil
}

// UpdateRecord patches the given fields onto a record.
func (c *Client) UpdateRecord(ctx context.Context, recordType, id string, fields map[string]any) error {
	_, err := c.do(ctx, http.MethodPatch, c.recordURL(recordType, id), fields)
	return err
}

// DeleteRecord deletes a record.
func (c *Client) DeleteRecord(ctx context.Context, recordType, id string) error {
	_, err := c.do(ctx, http.MethodDelete, c.recordURL(recordType, id), nil)
	return err
}
