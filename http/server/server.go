package server

import (
	"context"
	"encoding/base64"
	"errors"
	"log"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gclaussn/go-bpmn-extract/http/common"
	"github.com/gclaussn/go-bpmn-extract/model"
)

func New(customizers ...func(*Options)) (*Server, error) {
	options := NewOptions()
	for _, customizer := range customizers {
		customizer(&options)
	}

	if err := options.Validate(); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	var handler http.Handler = mux
	if options.BasicAuthUsername != "" {
		handler = &basicAuthHandler{
			username: options.BasicAuthUsername,
			password: options.BasicAuthPassword,
			handler:  handler,
		}
	}

	handler = &recoverHandler{handler: handler}
	handler = http.TimeoutHandler(handler, options.HandlerTimeout, "handler timed out")
	handler = &corsHandler{allowedOrigins: options.CorsAllowedOrigins, handler: handler}
	handler = &requestIdHandler{handler: handler}

	// server-wide context for incoming requests
	httpServerCtx, httpServerCancel := context.WithCancel(context.Background())

	httpServer := http.Server{
		Addr: options.BindAddress,
		BaseContext: func(_ net.Listener) context.Context {
			return httpServerCtx
		},
		Handler:      handler,
		IdleTimeout:  options.IdleTimeout,
		ReadTimeout:  options.ReadTimeout,
		WriteTimeout: options.WriteTimeout,
	}

	if options.Configure != nil {
		options.Configure(&httpServer)
	}

	server := Server{
		httpServer:       &httpServer,
		httpServerCtx:    httpServerCtx,
		httpServerCancel: httpServerCancel,
		options:          options,
	}

	// operations:start
	mux.HandleFunc("POST "+common.PathExtract, server.extract)
	mux.HandleFunc("POST "+common.PathExtractBase64, server.extractBase64)
	mux.HandleFunc("POST "+common.PathExtractText, server.extractText)

	mux.HandleFunc("GET "+common.PathHealth+"{$}", server.checkHealth)
	mux.HandleFunc("GET "+common.PathReadiness, server.checkReadiness)
	// operations:end

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	return &server, nil
}

func NewOptions() Options {
	return Options{
		BindAddress: "127.0.0.1:8080",

		HandlerTimeout: 30 * time.Second,
		IdleTimeout:    60 * time.Second,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   35 * time.Second,

		ShutdownDelay:       5 * time.Second,
		ShutdownPeriod:      30 * time.Second,
		ShutdownForcePeriod: 5 * time.Second,

		MaxBodySize: 10485760, // 10mb = 10 * 1024 * 1024
		Model:       model.NewOptions(),
	}
}

type Options struct {
	BindAddress string // TCP address for the server to listen on.

	HandlerTimeout time.Duration // Time limit for HTTP handler - when reached, the handler responds with HTTP 503.
	IdleTimeout    time.Duration // Maximum amount of time to wait for the next request, when keep-alives are enabled - see http.Server#IdleTimeout
	ReadTimeout    time.Duration // Maximum duration for reading the entire request - see http.Server#ReadTimeout
	WriteTimeout   time.Duration // Maximum duration before timing out writing the response - see http.Server#WriteTimeout

	ShutdownDelay       time.Duration // Delay between the shutdown signal and the actual shutdown, used to propagate readiness.
	ShutdownPeriod      time.Duration // Period for a graceful shutdown without interrupting ongoing requests.
	ShutdownForcePeriod time.Duration // Period for a forced shutdown, where ongoing requests are canceled.

	MaxBodySize int64         // Maximum size of a request body in bytes.
	Model       model.Options // Options, used for each extraction.

	BasicAuthUsername string // Optional username, enables basic authentication together with BasicAuthPassword.
	BasicAuthPassword string // Optional password, enables basic authentication together with BasicAuthUsername.

	CorsAllowedOrigins []string // Origins, which are allowed to make cross-origin requests - "*" allows any origin.

	Configure func(*http.Server) // Optional function, used to configure the underlying HTTP server if needed.
}

func (o Options) Validate() error {
	if (o.BasicAuthUsername == "") != (o.BasicAuthPassword == "") {
		return errors.New("basic auth username and password must be provided together")
	}
	if o.MaxBodySize <= 0 {
		return errors.New("max body size must be greater than 0")
	}
	if o.HandlerTimeout <= 0 {
		return errors.New("handler timeout must be greater than 0")
	}

	return o.Model.Validate()
}

type Server struct {
	httpServer       *http.Server
	httpServerCtx    context.Context    // server-wide base context for incoming requests
	httpServerCancel context.CancelFunc // invoked after server shutdown to cancel to ongoing requests
	isShuttingDown   atomic.Bool
	options          Options
}

// Handler returns the root handler, including authentication, CORS and request ID handling.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) ListenAndServe() {
	go func() {
		log.Printf("server listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("failed to listen and serve HTTP: %v", err)
		}
	}()
}

func (s *Server) Shutdown() {
	s.isShuttingDown.Store(true)
	log.Println("server is shutting down")

	time.Sleep(s.options.ShutdownDelay)
	log.Println("server is shutting down gracefully")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.options.ShutdownPeriod)
	defer shutdownCancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.httpServerCancel()
	if err != nil {
		log.Printf("failed to shutdown HTTP server: %v", err)
		time.Sleep(s.options.ShutdownForcePeriod)
	}

	log.Println("server shut down")
}

// extraction handler

func (s *Server) extract(w http.ResponseWriter, r *http.Request) {
	bpmnXml, err := readBpmnXml(w, r, s.options.MaxBodySize)
	if err != nil {
		encodeJSONProblemResponseBody(w, r, err)
		return
	}

	s.doExtract(w, r, bpmnXml)
}

func (s *Server) extractBase64(w http.ResponseWriter, r *http.Request) {
	var cmd common.ExtractBase64Cmd
	if err := decodeJSONRequestBody(w, r, &cmd, s.options.MaxBodySize); err != nil {
		encodeJSONProblemResponseBody(w, r, err)
		return
	}

	bpmnXml, err := base64.StdEncoding.DecodeString(cmd.Content)
	if err != nil {
		encodeJSONProblemResponseBody(w, r, common.Problem{
			Status: http.StatusBadRequest,
			Type:   common.ProblemHttpRequestBody,
			Title:  "invalid request body",
			Detail: "failed to decode base64 content",
		})
		return
	}

	s.doExtract(w, r, bpmnXml)
}

func (s *Server) extractText(w http.ResponseWriter, r *http.Request) {
	var cmd common.ExtractTextCmd
	if err := decodeJSONRequestBody(w, r, &cmd, s.options.MaxBodySize); err != nil {
		encodeJSONProblemResponseBody(w, r, err)
		return
	}

	s.doExtract(w, r, []byte(cmd.Content))
}

func (s *Server) doExtract(w http.ResponseWriter, r *http.Request, bpmnXml []byte) {
	result, err := model.New(bpmnXml, func(o *model.Options) {
		*o = s.options.Model
	})
	if err != nil {
		encodeJSONErrorResultBody(w, r, err)
		return
	}

	encodeJSONResponseBody(w, r, result, http.StatusOK)
}

// other handler

func (s *Server) checkHealth(w http.ResponseWriter, r *http.Request) {
	encodeJSONResponseBody(w, r, common.HealthRes{Status: "ok"}, http.StatusOK)
}

func (s *Server) checkReadiness(w http.ResponseWriter, r *http.Request) {
	if s.isShuttingDown.Load() {
		http.Error(w, "server is shutting down", http.StatusServiceUnavailable)
		return
	}
	w.Write([]byte("ready"))
}
