package backend

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/guonaihong/gout"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrEmptyBaseURL is returned when the backend link is not configured.
var ErrEmptyBaseURL = errors.New("backend base url is empty")

// APIError is a non-2xx answer from the backend.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d %s: %s", e.StatusCode, e.Status, e.Body)
}

// HTTPStatus lets callers outside this package classify the error without
// importing it.
func (e *APIError) HTTPStatus() int {
	return e.StatusCode
}

// Client issues JSON requests against {BackEndLink}/api.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a backend client. A zero timeout means requests run
// until the context ends.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, ErrEmptyBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) url(path string) string {
	return c.baseURL + "/api/" + strings.TrimLeft(path, "/")
}

// do sends one request and decodes a 2xx body into out when out is not nil.
// Non-2xx answers come back as *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	requestID := uuid.New().String()
	url := c.url(path)

	g := gout.New(c.http)
	open := g.GET
	switch method {
	case http.MethodGet:
	case http.MethodPost:
		open = g.POST
	case http.MethodPut:
		open = g.PUT
	case http.MethodDelete:
		open = g.DELETE
	default:
		return errors.Errorf("unsupported method %s", method)
	}

	var (
		raw  []byte
		code int
	)
	df := open(url).WithContext(ctx).SetHeader(gout.H{
		"Content-Type": "application/json",
		"X-Request-ID": requestID,
	})
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request body")
		}
		df = df.SetBody(payload)
	}

	start := time.Now()
	err := df.BindBody(&raw).Code(&code).Do()
	zap.L().Debug("backend request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", code),
		zap.Duration("took", time.Since(start)),
	)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}

	if code < 200 || code > 299 {
		return &APIError{
			StatusCode: code,
			Status:     http.StatusText(code),
			Body:       string(raw),
		}
	}

	if out == nil || len(strings.TrimSpace(string(raw))) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrapf(err, "decode %s %s response", method, path)
	}
	return nil
}
