package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gclaussn/go-bpmn-extract/http/common"
	"github.com/gclaussn/go-bpmn-extract/model"
)

func New(url string, customizers ...func(*Options)) (*Client, error) {
	if url == "" {
		return nil, errors.New("URL is empty")
	}

	options := NewOptions()
	for _, customizer := range customizers {
		customizer(&options)
	}

	if err := options.Validate(); err != nil {
		return nil, err
	}

	httpClient := http.Client{}

	if options.Configure != nil {
		options.Configure(&httpClient)
	}

	client := Client{
		httpClient: &httpClient,
		url:        url,
		options:    options,
	}

	return &client, nil
}

func NewOptions() Options {
	return Options{
		Timeout: 40 * time.Second,
	}
}

type Options struct {
	Timeout time.Duration // Time limit for requests made by the HTTP client.

	// Optional value of the authorization header - for example: "Basic dGVzdHVzZXJuYW1lOnRlc3RwYXNzd29yZA==".
	Authorization string

	// OnRequest is an optional function that accepts a [*http.Request]. It is called before a HTTP request is send.
	OnRequest func(*http.Request) error
	// OnResponse is an optional function that accepts a [*http.Response]. It is called after a HTTP response is returned.
	OnResponse func(*http.Response) error

	Configure func(*http.Client) // Optional function, used to configure the underlying HTTP client.
}

func (o Options) Validate() error {
	if o.Timeout <= 0 {
		return errors.New("timeout must be greater than 0")
	}
	return nil
}

// Client extracts BPMN XML via the HTTP API of a bpmn-extractd server.
type Client struct {
	httpClient *http.Client
	url        string
	options    Options
}

// CheckHealth requests the health endpoint of the server.
func (c *Client) CheckHealth(ctx context.Context) (common.HealthRes, error) {
	ctx, cancel := context.WithTimeout(ctx, c.options.Timeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodGet, common.PathHealth, nil)
	if err != nil {
		return common.HealthRes{}, err
	}

	var resBody common.HealthRes
	if err := c.do(req, &resBody); err != nil {
		return common.HealthRes{}, err
	}
	return resBody, nil
}

// Extract sends the BPMN XML as raw request body.
//
// If the server is unable to extract a result, a [model.Error] is returned.
func (c *Client) Extract(ctx context.Context, bpmnXml []byte) (*model.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.options.Timeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodPost, common.PathExtract, bytes.NewReader(bpmnXml))
	if err != nil {
		return nil, err
	}

	req.Header.Set(common.HeaderContentType, common.ContentTypeXml)

	var result model.Result
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ExtractText sends the BPMN XML as content of a JSON request body.
func (c *Client) ExtractText(ctx context.Context, cmd common.ExtractTextCmd) (*model.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.options.Timeout)
	defer cancel()

	b, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to create JSON request body: %v", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, common.PathExtractText, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}

	req.Header.Set(common.HeaderContentType, common.ContentTypeJson)

	var result model.Result
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) do(req *http.Request, resBody any) error {
	if c.options.OnRequest != nil {
		if err := c.options.OnRequest(req); err != nil {
			return err
		}
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute %v", err)
	}

	if c.options.OnResponse != nil {
		if err := c.options.OnResponse(res); err != nil {
			res.Body.Close()
			return err
		}
	}

	return decodeJSONResponseBody(res, resBody)
}
