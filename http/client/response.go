package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/gclaussn/go-bpmn-extract/http/common"
	"github.com/gclaussn/go-bpmn-extract/model"
)

func decodeJSONResponseBody(res *http.Response, v any) error {
	defer res.Body.Close()

	decoder := json.NewDecoder(res.Body)

	mediaType, _, _ := mime.ParseMediaType(res.Header.Get(common.HeaderContentType))
	if mediaType == common.ContentTypeProblemJson {
		var problem common.Problem
		if err := decoder.Decode(&problem); err != nil {
			return fmt.Errorf("failed to decode JSON problem response body: %v", err)
		}
		return problem
	}

	if mediaType == common.ContentTypeJson && (res.StatusCode == http.StatusBadRequest || res.StatusCode == http.StatusUnprocessableEntity) {
		var errorResult model.ErrorResult
		if err := decoder.Decode(&errorResult); err != nil {
			return fmt.Errorf("failed to decode JSON error result: %v", err)
		}

		errorType := model.ErrorParse
		if res.StatusCode == http.StatusUnprocessableEntity {
			errorType = model.ErrorStructure
		}

		return model.Error{
			Type:   errorType,
			Detail: errorResult.Error,
		}
	}

	if res.StatusCode >= 300 {
		text := fmt.Sprintf(
			"%s %s: HTTP %d",
			res.Request.Method,
			res.Request.URL.Path,
			res.StatusCode,
		)

		b, err := io.ReadAll(res.Body)
		if err != nil {
			return fmt.Errorf("%s: %v", text, err)
		} else if len(b) != 0 {
			return fmt.Errorf("%s: %s", text, string(b))
		} else {
			return errors.New(text)
		}
	}

	if v == nil {
		return nil
	}
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("failed to decode JSON response body: %v", err)
	}

	return nil
}
