// README: HTTP client for the order service (snapshot fetch, confirm receipt, customer directions).
package order

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"ordertrack/internal/types"
)

var (
	ErrNotFound         = errors.New("order not found")
	ErrBadRequest       = errors.New("bad request")
	ErrUnexpectedStatus = errors.New("unexpected status from order service")
	ErrDecode           = errors.New("cannot decode order service response")
)

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *slog.Logger
}

type ClientOption func(*Client)

func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

func NewClient(baseURL, token string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Get(ctx context.Context, id types.ID) (*Order, error) {
	if id == "" {
		return nil, ErrBadRequest
	}
	body, err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(string(id)), nil)
	if err != nil {
		return nil, err
	}
	o, err := decodeOrder(body)
	if err != nil {
		return nil, err
	}
	if o.ID == "" {
		o.ID = id
	}
	return o, nil
}

func (c *Client) ConfirmReceipt(ctx context.Context, id types.ID) error {
	if id == "" {
		return ErrBadRequest
	}
	_, err := c.do(ctx, http.MethodPatch, "/orders/"+url.PathEscape(string(id))+"/confirm-receipt", nil)
	return err
}

func (c *Client) CustomerDirections(ctx context.Context, id types.ID, req DirectionsRequest) (*RouteData, error) {
	if id == "" {
		return nil, ErrBadRequest
	}
	body, err := c.do(ctx, http.MethodPost, "/orders/"+url.PathEscape(string(id))+"/directions/customer", req)
	if err != nil {
		return nil, err
	}
	var resp DirectionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if resp.RouteData == nil {
		var env struct {
			Data *DirectionsResponse `json:"data"`
		}
		if err := json.Unmarshal(body, &env); err == nil && env.Data != nil {
			resp = *env.Data
		}
	}
	if resp.RouteData == nil {
		return nil, fmt.Errorf("%w: missing routeData", ErrDecode)
	}
	return resp.RouteData, nil
}

func (c *Client) do(ctx context.Context, method, path string, in any) ([]byte, error) {
	var reader io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.logger.Warn("order_service_status", "method", method, "path", path, "status", resp.StatusCode, "request_id", reqID)
		return nil, fmt.Errorf("%w: %s %s returned %d", ErrUnexpectedStatus, method, path, resp.StatusCode)
	}
	return body, nil
}

// decodeOrder accepts the bare order object as well as {"order": ...} and {"data": ...} envelopes.
func decodeOrder(body []byte) (*Order, error) {
	var env struct {
		Order *Order `json:"order"`
		Data  *Order `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if env.Order != nil {
		return env.Order, nil
	}
	if env.Data != nil {
		return env.Data, nil
	}
	var o Order
	if err := json.Unmarshal(body, &o); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &o, nil
}
