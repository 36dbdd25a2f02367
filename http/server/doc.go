// Package server implements the extractor's HTTP API.
/*
server implements handlers for the extraction of BPMN XML, using the [net/http] package.

Extract BPMN XML

BPMN XML can be posted as raw request body or multipart form (field "file") to "/extract".
Alternatively it can be posted as JSON, either base64 encoded to "/extract/base64" or as plain string to "/extract/text".

A successful extraction is responded with HTTP 200 and the extracted model.
If the XML is not well-formed, HTTP 400 is responded. If the XML contains no suitable process, HTTP 422 is responded.
In both cases the response body contains only an "error" field.

Run a Server

A server is listening on "127.0.0.1:8080".
The TCP bind address, various timeouts, basic authentication and CORS can be configured by customizing the configuration.

	server, err := server.New(func(o *server.Options) {
		o.CorsAllowedOrigins = []string{"https://example.org"}
	})
	if err != nil {
		log.Fatalf("failed to create HTTP server: %v", err)
	}

	server.ListenAndServe()

	signalC := make(chan os.Signal, 1)
	signal.Notify(signalC, os.Interrupt, syscall.SIGTERM)

	<-signalC

	server.Shutdown()
*/
package server
