package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gclaussn/go-bpmn-extract/http/common"
	"github.com/gclaussn/go-bpmn-extract/model"
)

// encodeJSONErrorResultBody responds with the error result of a failed extraction.
// Any other error is responded as problem.
func encodeJSONErrorResultBody(w http.ResponseWriter, r *http.Request, err error) {
	var modelErr model.Error
	if !errors.As(err, &modelErr) {
		encodeJSONProblemResponseBody(w, r, err)
		return
	}

	var status int
	switch modelErr.Type {
	case model.ErrorParse:
		status = http.StatusBadRequest
	case model.ErrorStructure:
		status = http.StatusUnprocessableEntity
	default:
		status = http.StatusInternalServerError
	}

	encodeJSONResponseBody(w, r, model.NewErrorResult(err), status)
}

func encodeJSONProblemResponseBody(w http.ResponseWriter, r *http.Request, err error) {
	problem, ok := err.(common.Problem)
	if !ok {
		log.Printf("%s %s [%s]: unexpected error occurred: %v", r.Method, r.RequestURI, requestId(r), err)

		problem = common.Problem{
			Status: http.StatusInternalServerError,
			Type:   common.ProblemUnexpected,
			Title:  "unexpected error occurred",
			Detail: "see server logs",
		}
	}

	w.Header().Set(common.HeaderContentType, common.ContentTypeProblemJson)
	w.WriteHeader(problem.Status)

	if err := json.NewEncoder(w).Encode(problem); err != nil {
		log.Printf("%s %s [%s]: failed to create JSON problem response body: %v", r.Method, r.RequestURI, requestId(r), err)
	}
}

func encodeJSONResponseBody(w http.ResponseWriter, r *http.Request, v any, statusCode int) {
	w.Header().Set(common.HeaderContentType, common.ContentTypeJson)
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("%s %s [%s]: failed to create JSON response body: %v", r.Method, r.RequestURI, requestId(r), err)
	}
}
