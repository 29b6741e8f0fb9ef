package datto

import (
	"context"
	"net/http"
)

// RequestToken asks the Datto API for an access token using the client credentials.
// The raw response body is returned.
func (c *Client) RequestToken(ctx context.Context) (string, error) {
	body, err := c.do(ctx, http.MethodPost, c.config.TokenPath)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
