package server

import (
	"context"
	"log"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/gclaussn/go-bpmn-extract/http/common"
	"github.com/google/uuid"
)

var (
	corsAllowedHeaders = strings.Join([]string{common.HeaderAuthorization, common.HeaderContentType, common.HeaderRequestId}, ", ")
	corsAllowedMethods = strings.Join([]string{http.MethodGet, http.MethodPost, http.MethodOptions}, ", ")
)

// requestIdKey is used as context value key by the requestIdHandler.
type requestIdKey struct{}

// requestIdHandler ensures that each request has an ID, which is echoed via response header and used for logging.
type requestIdHandler struct {
	handler http.Handler
}

func (h *requestIdHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(common.HeaderRequestId)
	if id == "" || len(id) > 128 {
		id = uuid.NewString()
	}

	w.Header().Set(common.HeaderRequestId, id)

	ctx := context.WithValue(r.Context(), requestIdKey{}, id)
	h.handler.ServeHTTP(w, r.WithContext(ctx))
}

func requestId(r *http.Request) string {
	id, _ := r.Context().Value(requestIdKey{}).(string)
	return id
}

// corsHandler adds CORS headers for allowed origins and answers preflight requests.
type corsHandler struct {
	allowedOrigins []string
	handler        http.Handler
}

func (h *corsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if origin == "" || len(h.allowedOrigins) == 0 {
		h.handler.ServeHTTP(w, r)
		return
	}

	allowAny := slices.Contains(h.allowedOrigins, "*")
	if !allowAny && !slices.Contains(h.allowedOrigins, origin) {
		h.handler.ServeHTTP(w, r)
		return
	}

	header := w.Header()
	if allowAny {
		header.Set("Access-Control-Allow-Origin", "*")
	} else {
		header.Set("Access-Control-Allow-Origin", origin)
		header.Add("Vary", "Origin")
	}
	header.Set("Access-Control-Expose-Headers", common.HeaderRequestId)

	if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
		header.Set("Access-Control-Allow-Headers", corsAllowedHeaders)
		header.Set("Access-Control-Allow-Methods", corsAllowedMethods)
		header.Set("Access-Control-Max-Age", "600")
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.handler.ServeHTTP(w, r)
}

// recoverHandler responds with HTTP 500, when a handler panics.
type recoverHandler struct {
	handler http.Handler
}

func (h *recoverHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		if v == http.ErrAbortHandler {
			panic(v)
		}

		log.Printf("%s %s [%s]: panic: %v\n%s", r.Method, r.RequestURI, requestId(r), v, debug.Stack())

		encodeJSONProblemResponseBody(w, r, common.Problem{
			Status: http.StatusInternalServerError,
			Type:   common.ProblemUnexpected,
			Title:  "unexpected error occurred",
			Detail: "see server logs",
		})
	}()

	h.handler.ServeHTTP(w, r)
}
