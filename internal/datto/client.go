package datto

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/appclacks/datto-monitor/internal/validator"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTimeout = 60 * time.Second

const defaultTokenPath = "/v1/saas/domains"

type Client struct {
	config Configuration
	http   *http.Client
	logger *slog.Logger
	tracer trace.Tracer
}

func New(logger *slog.Logger, config Configuration) (*Client, error) {
	err := validator.Validator.Struct(config)
	if err != nil {
		return nil, err
	}
	timeout := defaultTimeout
	if config.Timeout != "" {
		timeout, err = time.ParseDuration(config.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid Datto API timeout %s: %w", config.Timeout, err)
		}
	}
	if config.TokenPath == "" {
		config.TokenPath = defaultTokenPath
	}
	config.URL = strings.TrimRight(config.URL, "/")
	return &Client{
		config: config,
		http: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
		tracer: otel.Tracer("github.com/appclacks/datto-monitor/internal/datto"),
	}, nil
}

// do sends an authenticated request and returns the response body.
// Non-success statuses are returned as *APIError.
func (c *Client) do(ctx context.Context, method string, path string) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, fmt.Sprintf("%s %s", method, path))
	defer span.End()
	url := c.config.URL + path
	request, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fail to build request %s %s: %w", method, url, err)
	}
	request.SetBasicAuth(c.config.ClientID, c.config.ClientSecret)
	request.Header.Set("Accept", "application/json")
	c.logger.Debug(fmt.Sprintf("sending request %s %s", method, url))
	response, err := c.http.Do(request)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("fail to send request %s %s: %w", method, url, err)
	}
	defer response.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", response.StatusCode))
	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("fail to read response body for %s %s: %w", method, url, err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		apiErr := newAPIError(response.StatusCode, string(body))
		span.SetStatus(codes.Error, apiErr.Error())
		return nil, apiErr
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	body, err := c.do(ctx, http.MethodGet, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("fail to decode response for %s: %w", path, err)
	}
	return nil
}
