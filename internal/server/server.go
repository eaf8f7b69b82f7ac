// Package server fronts the router with a plain net/http server for running
// the service outside of API Gateway.
package server

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"
	"philcali.me/inventory/internal/config"
	"philcali.me/inventory/internal/dynamodb/connection"
)

// Invoker is satisfied by *routes.Router.
type Invoker interface {
	Invoke(event events.APIGatewayV2HTTPRequest, ctx context.Context) events.APIGatewayV2HTTPResponse
}

// NewRequestEvent translates an HTTP request into the API Gateway v2 shape the
// router expects. Header names are lower cased like API Gateway does.
func NewRequestEvent(r *http.Request) (events.APIGatewayV2HTTPRequest, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return events.APIGatewayV2HTTPRequest{}, err
	}
	headers := make(map[string]string, len(r.Header))
	for name, values := range r.Header {
		headers[strings.ToLower(name)] = strings.Join(values, ",")
	}
	var params map[string]string
	if query := r.URL.Query(); len(query) > 0 {
		params = make(map[string]string, len(query))
		for name, values := range query {
			params[name] = strings.Join(values, ",")
		}
	}
	sourceIp := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		sourceIp = host
	}
	event := events.APIGatewayV2HTTPRequest{
		Version:               "2.0",
		RouteKey:              "$default",
		RawPath:               r.URL.Path,
		RawQueryString:        r.URL.RawQuery,
		Headers:               headers,
		QueryStringParameters: params,
		Body:                  string(body),
	}
	event.RequestContext.HTTP = events.APIGatewayV2HTTPRequestContextHTTPDescription{
		Method:    r.Method,
		Path:      r.URL.Path,
		Protocol:  r.Proto,
		SourceIP:  sourceIp,
		UserAgent: r.UserAgent(),
	}
	event.RequestContext.TimeEpoch = time.Now().UnixMilli()
	return event, nil
}

func WriteResponse(w http.ResponseWriter, response events.APIGatewayV2HTTPResponse) error {
	for name, value := range response.Headers {
		w.Header().Set(name, value)
	}
	for name, values := range response.MultiValueHeaders {
		for _, value := range values {
			w.Header().Add(name, value)
		}
	}
	statusCode := response.StatusCode
	if statusCode == 0 {
		statusCode = http.StatusOK
	}
	w.WriteHeader(statusCode)
	if response.Body == "" {
		return nil
	}
	body := []byte(response.Body)
	if response.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(response.Body)
		if err != nil {
			return err
		}
		body = decoded
	}
	_, err := w.Write(body)
	return err
}

// Handler adapts the router to net/http.
func Handler(router Invoker, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		event, err := NewRequestEvent(r)
		if err != nil {
			http.Error(w, `{"message": "Could not read request body"}`, http.StatusBadRequest)
			return
		}
		response := router.Invoke(event, r.Context())
		if err := WriteResponse(w, response); err != nil {
			logger.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write response")
		}
		logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", response.StatusCode).
			Dur("latency", time.Since(started)).
			Msg("handled request")
	})
}

type Server struct {
	Config     *config.Config
	Logger     zerolog.Logger
	Handle     *connection.Handle
	httpServer *http.Server
}

func New(cfg *config.Config, logger zerolog.Logger, handle *connection.Handle) *Server {
	return &Server{
		Config: cfg,
		Logger: logger,
		Handle: handle,
	}
}

func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start blocks until the server stops. A graceful Shutdown is not an error.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}
	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("table", s.Config.Database.Name).
		Msg("starting server")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in flight requests and then closes the store connection.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}
	if s.Handle != nil {
		if err := s.Handle.Close(); err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}
	return nil
}
