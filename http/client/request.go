package client

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gclaussn/go-bpmn-extract/http/common"
)

func (c *Client) newRequest(ctx context.Context, method string, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %v", method, err)
	}

	if c.options.Authorization != "" {
		req.Header.Set(common.HeaderAuthorization, c.options.Authorization)
	}

	return req, nil
}
