package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/models"
	"github.com/dmitrijs2005/sessionkeeper/internal/common"
	"github.com/dmitrijs2005/sessionkeeper/internal/logging"
	"github.com/google/uuid"
)

// DefaultBaseURL is used when New is given an empty base URL.
const DefaultBaseURL = "http://localhost:8080"

const contentTypeJSON = "application/json"

// HTTPClient implements Client over HTTP/JSON.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	log        logging.Logger
}

var _ Client = (*HTTPClient)(nil)

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) {
		if l != nil {
			c.log = l
		}
	}
}

// WithTimeout bounds every request. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

// New creates a gateway for baseURL. Trailing slashes are dropped so that
// endpoints can be appended verbatim.
func New(baseURL string, opts ...Option) *HTTPClient {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		log:        logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HTTPClient) BaseURL() string { return c.baseURL }

// RequestOptions describes a single call made through Request.
type RequestOptions struct {
	Method     string
	Body       any
	Header     http.Header
	Credential string
}

// Request performs one API call. endpoint is appended to the base URL as is.
//
// A 204 response leaves out untouched. Any other 2xx body is decoded into out
// when out is non-nil. Non-2xx responses and transport failures are returned
// as *Error.
func (c *HTTPClient) Request(ctx context.Context, endpoint string, opts RequestOptions, out any) error {
	op := opts.Method
	if op == "" {
		op = http.MethodGet
	}
	op = op + " " + endpoint

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if opts.Body != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(opts.Body); err != nil {
			return &Error{Op: op, Message: unknownErrorMessage, Err: fmt.Errorf("encode request body: %w", err)}
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, opts.Method, c.baseURL+endpoint, body)
	if err != nil {
		return &Error{Op: op, Message: unknownErrorMessage, Err: err}
	}

	req.Header.Set(common.ContentTypeHeaderName, contentTypeJSON)
	for k, vs := range opts.Header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if opts.Credential != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+opts.Credential)
	}
	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)

	log := c.log.With("method", req.Method, "endpoint", endpoint, "request_id", requestID)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug(ctx, "request failed", "error", err, "duration", time.Since(start))
		return transportError(op, err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, "request finished", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope models.ErrorResponse
		raw, err := io.ReadAll(resp.Body)
		if err == nil && len(raw) > 0 {
			// a body that is not an envelope is treated like an empty one
			_ = json.Unmarshal(raw, &envelope)
		}
		return statusError(op, resp.StatusCode, statusText(resp), envelope.Error, envelope.Code)
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return transportError(op, ctxErr)
		}
		return &Error{
			Op:      op,
			Status:  resp.StatusCode,
			Message: unknownErrorMessage,
			Err:     fmt.Errorf("%w: %w", ErrInvalidResponse, err),
		}
	}
	return nil
}

// statusText prefers the reason phrase sent by the server.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.Request(ctx, "/api/v1/auth/login", RequestOptions{Method: http.MethodPost, Body: req}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.Request(ctx, "/api/v1/auth/register", RequestOptions{Method: http.MethodPost, Body: req}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers fetches one page of users. Query parameters are sent as
// page then limit.
func (c *HTTPClient) ListUsers(ctx context.Context, page, limit int, credential string) (*models.UsersResponse, error) {
	var out models.UsersResponse
	endpoint := fmt.Sprintf("/api/v1/users?page=%d&limit=%d", page, limit)
	err := c.Request(ctx, endpoint, RequestOptions{Method: http.MethodGet, Credential: credential}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, id int64, credential string) (*models.User, error) {
	var out models.User
	err := c.Request(ctx, userEndpoint(id), RequestOptions{Method: http.MethodGet, Credential: credential}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id int64, req models.UpdateUserRequest, credential string) (*models.User, error) {
	var out models.User
	err := c.Request(ctx, userEndpoint(id), RequestOptions{Method: http.MethodPut, Body: req, Credential: credential}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id int64, credential string) error {
	return c.Request(ctx, userEndpoint(id), RequestOptions{Method: http.MethodDelete, Credential: credential}, nil)
}

// HealthCheck never sends a credential.
func (c *HTTPClient) HealthCheck(ctx context.Context) (*models.HealthResponse, error) {
	var out models.HealthResponse
	if err := c.Request(ctx, "/health", RequestOptions{Method: http.MethodGet}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func userEndpoint(id int64) string {
	return "/api/v1/users/" + strconv.FormatInt(id, 10)
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
