package client

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gclaussn/go-bpmn-extract/http/common"
	"github.com/gclaussn/go-bpmn-extract/http/server"
	"github.com/gclaussn/go-bpmn-extract/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientServer(t *testing.T) {
	assert := assert.New(t)

	s, err := server.New(func(o *server.Options) {
		o.BasicAuthUsername = "test"
		o.BasicAuthPassword = "test"
	})
	if err != nil {
		t.Fatalf("failed to create HTTP server: %v", err)
	}

	httpServer := httptest.NewServer(s.Handler())
	defer httpServer.Close()

	authorization := "Basic " + base64.StdEncoding.EncodeToString([]byte("test:test"))

	var (
		requestCount  int
		responseCount int
	)

	client, err := New(httpServer.URL, func(o *Options) {
		o.Authorization = authorization
		o.OnRequest = func(r *http.Request) error {
			requestCount++
			return nil
		}
		o.OnResponse = func(r *http.Response) error {
			responseCount++
			return nil
		}
	})
	if err != nil {
		t.Fatalf("failed to create HTTP client: %v", err)
	}

	t.Run("check health", func(t *testing.T) {
		res, err := client.CheckHealth(context.Background())
		require.NoError(t, err)
		assert.Equal("ok", res.Status)
	})

	t.Run("extract", func(t *testing.T) {
		result, err := client.Extract(context.Background(), mustReadBpmnFile(t, "simple.bpmn"))
		require.NoError(t, err)

		assert.Equal("Simple", result.Title)
		assert.Equal("Handle incoming orders", result.Objective)
		assert.Len(result.Elements, 5)
		assert.Len(result.Flows, 2)
		assert.Len(result.FlowOrder, 3)
		assert.Equal("startEvent", result.FlowOrder[0].Id)
	})

	t.Run("extract text", func(t *testing.T) {
		cmd := common.ExtractTextCmd{Content: string(mustReadBpmnFile(t, "lanes-data.bpmn"))}

		result, err := client.ExtractText(context.Background(), cmd)
		require.NoError(t, err)

		assert.NotEmpty(result.Lanes)
		assert.NotEmpty(result.DataStores)
	})

	t.Run("extract returns parse error", func(t *testing.T) {
		_, err := client.Extract(context.Background(), []byte("<definitions>"))
		require.Error(t, err)

		var modelErr model.Error
		require.True(t, errors.As(err, &modelErr), "expected model error")
		assert.Equal(model.ErrorParse, modelErr.Type)
		assert.Contains(modelErr.Detail, "failed to decode XML")
	})

	t.Run("extract returns structure error", func(t *testing.T) {
		_, err := client.Extract(context.Background(), mustReadBpmnFile(t, "no-process.bpmn"))
		require.Error(t, err)

		var modelErr model.Error
		require.True(t, errors.As(err, &modelErr), "expected model error")
		assert.Equal(model.ErrorStructure, modelErr.Type)
		assert.Equal("no process found", modelErr.Detail)
	})

	t.Run("extract text returns problem", func(t *testing.T) {
		_, err := client.ExtractText(context.Background(), common.ExtractTextCmd{})
		require.Error(t, err)

		assert.IsTypef(common.Problem{}, err, "expected problem")

		problem := err.(common.Problem)
		assert.Equal(http.StatusBadRequest, problem.Status)
		assert.Equal(common.ProblemValidation, problem.Type)
		assert.Len(problem.Errors, 1)
	})

	t.Run("unauthorized", func(t *testing.T) {
		unauthorizedClient, err := New(httpServer.URL)
		require.NoError(t, err)

		_, err = unauthorizedClient.Extract(context.Background(), mustReadBpmnFile(t, "simple.bpmn"))
		require.Error(t, err)
		assert.Contains(err.Error(), "POST /extract: HTTP 401")
	})

	t.Run("on request error", func(t *testing.T) {
		failingClient, err := New(httpServer.URL, func(o *Options) {
			o.OnRequest = func(r *http.Request) error {
				return errors.New("on request")
			}
		})
		require.NoError(t, err)

		_, err = failingClient.CheckHealth(context.Background())
		assert.EqualError(err, "on request")
	})

	assert.Equal(6, requestCount)
	assert.Equal(6, responseCount)
}

func TestNew(t *testing.T) {
	assert := assert.New(t)

	_, err := New("")
	assert.EqualError(err, "URL is empty")

	_, err = New("http://localhost:8080", func(o *Options) {
		o.Timeout = 0
	})
	assert.Error(err)
}

func mustReadBpmnFile(t *testing.T, fileName string) []byte {
	b, err := os.ReadFile("../../test/bpmn/" + fileName)
	if err != nil {
		t.Fatalf("failed to read BPMN file %s: %v", fileName, err)
	}
	return b
}
