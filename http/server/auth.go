package server

import (
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/gclaussn/go-bpmn-extract/http/common"
)

type basicAuthHandler struct {
	username string
	password string
	handler  http.Handler
}

func (h *basicAuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == common.PathReadiness || r.URL.Path == common.PathHealth {
		h.handler.ServeHTTP(w, r)
		return
	}

	username, password, ok := r.BasicAuth()
	if !ok || !equal(username, h.username) || !equal(password, h.password) {
		log.Printf("%s %s [%s]: authentication failed for %s", r.Method, r.RequestURI, requestId(r), r.RemoteAddr)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	h.handler.ServeHTTP(w, r)
}

func equal(a string, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
