package apper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client is the record-storage API. A returned error means the call never
// produced a backend answer; backend-level failures come back as
// Success=false with a Message.
type Client interface {
	FetchRecords(ctx context.Context, table string, params FetchParams) (*FetchResponse, error)
	GetRecordByID(ctx context.Context, table string, id int, params FetchParams) (*RecordResponse, error)
	CreateRecord(ctx context.Context, table string, records []Record) (*MutationResponse, error)
	UpdateRecord(ctx context.Context, table string, records []Record) (*MutationResponse, error)
	DeleteRecord(ctx context.Context, table string, ids []int) (*MutationResponse, error)
}

const (
	headerProjectID = "Apper-Project-Id"
	headerPublicKey = "Apper-Public-Key"
)

type HTTPClient struct {
	baseURL   string
	projectID string
	publicKey string
	http      *http.Client
}

func NewHTTPClient(baseURL, projectID, publicKey string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:   baseURL,
		projectID: projectID,
		publicKey: publicKey,
		http:      &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) FetchRecords(ctx context.Context, table string, params FetchParams) (*FetchResponse, error) {
	var out FetchResponse
	if err := c.do(ctx, http.MethodPost, c.path(table, "records", "fetch"), params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetRecordByID(ctx context.Context, table string, id int, params FetchParams) (*RecordResponse, error) {
	var out RecordResponse
	if err := c.do(ctx, http.MethodPost, c.path(table, "records", strconv.Itoa(id), "fetch"), params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateRecord(ctx context.Context, table string, records []Record) (*MutationResponse, error) {
	var out MutationResponse
	if err := c.do(ctx, http.MethodPost, c.path(table, "records"), mutationRequest{Records: records}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateRecord(ctx context.Context, table string, records []Record) (*MutationResponse, error) {
	var out MutationResponse
	if err := c.do(ctx, http.MethodPut, c.path(table, "records"), mutationRequest{Records: records}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteRecord(ctx context.Context, table string, ids []int) (*MutationResponse, error) {
	var out MutationResponse
	if err := c.do(ctx, http.MethodDelete, c.path(table, "records"), deleteRequest{RecordIDs: ids}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) path(table string, parts ...string) string {
	p := c.baseURL + "/tables/" + url.PathEscape(table)
	for _, part := range parts {
		p += "/" + part
	}
	return p
}

func (c *HTTPClient) do(ctx context.Context, method, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("apper: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("apper: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerProjectID, c.projectID)
	req.Header.Set(headerPublicKey, c.publicKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("apper: %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return fmt.Errorf("apper: read response: %w", err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("apper: %s %s: status %d", method, endpoint, resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("apper: decode response (status %d): %w", resp.StatusCode, err)
	}
	return nil
}
