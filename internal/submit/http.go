package submit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oakwood-commons/hris/internal/routes"
	"github.com/oakwood-commons/hris/pkg/logger"
	"github.com/oakwood-commons/hris/pkg/settings"
)

// maxBody bounds how much of a response body is read.
const maxBody = 1 << 20

// HTTPConfig configures an HTTPSubmitter.
type HTTPConfig struct {
	BaseURL    string
	Timeout    time.Duration
	CSRFHeader string
	CSRFToken  string
	Client     *http.Client // optional; built from Timeout when nil
}

// HTTPSubmitter posts url-encoded forms to the server.
type HTTPSubmitter struct {
	base   string
	csrfH  string
	csrfV  string
	routes *routes.Table
	client *http.Client
}

// NewHTTPSubmitter builds a submitter that resolves route names with table.
func NewHTTPSubmitter(cfg HTTPConfig, table *routes.Table) (*HTTPSubmitter, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("server base URL is empty")
	}
	if !strings.HasPrefix(cfg.BaseURL, "http://") && !strings.HasPrefix(cfg.BaseURL, "https://") {
		return nil, fmt.Errorf("server base URL %q must be http or https", cfg.BaseURL)
	}
	if table == nil {
		return nil, fmt.Errorf("route table is nil")
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &HTTPSubmitter{
		base:   strings.TrimRight(cfg.BaseURL, "/"),
		csrfH:  cfg.CSRFHeader,
		csrfV:  cfg.CSRFToken,
		routes: table,
		client: client,
	}, nil
}

// Submit resolves req.Route and POSTs req.Form.
func (s *HTTPSubmitter) Submit(ctx context.Context, req Request) (Response, error) {
	path, err := s.routes.URL(req.Route, req.Params)
	if err != nil {
		return Response{}, err
	}
	reqID := uuid.NewString()
	lgr := logger.FromContext(ctx).WithValues(logger.RouteKey, req.Route, logger.RequestIDKey, reqID)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.base+path, strings.NewReader(req.Form.Encode()))
	if err != nil {
		return Response{}, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", reqID)
	httpReq.Header.Set("User-Agent", settings.CliBinaryName+"/"+settings.VersionInformation.BuildVersion)
	if s.csrfH != "" && s.csrfV != "" {
		httpReq.Header.Set(s.csrfH, s.csrfV)
	}

	lgr.V(1).Info("submitting form", "path", path)
	resp, err := s.client.Do(httpReq)
	if err != nil {
		lgr.Error(err, "form submission failed")
		return Response{}, fmt.Errorf("submit %s: %w", req.Route, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return Response{}, fmt.Errorf("read response: %w", err)
	}
	lgr.V(1).Info("form submitted", logger.StatusKey, resp.StatusCode)

	return decodeResponse(req.Route, resp.StatusCode, body)
}

// Close releases idle connections.
func (s *HTTPSubmitter) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

// serverBody is the JSON the server answers form posts with.
type serverBody struct {
	Message  string              `json:"message"`
	Redirect string              `json:"redirect"`
	Errors   map[string][]string `json:"errors"`
}

func decodeResponse(route string, status int, body []byte) (Response, error) {
	var sb serverBody
	if len(body) > 0 {
		// Non-JSON bodies are fine on success; the status decides.
		_ = json.Unmarshal(body, &sb)
	}

	switch {
	case status >= 200 && status < 300:
		return Response{Status: status, Message: sb.Message, Redirect: sb.Redirect}, nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return Response{Status: status}, fmt.Errorf("submit %s: %w", route, ErrUnauthorized)
	case status == http.StatusNotFound:
		return Response{Status: status}, fmt.Errorf("submit %s: %w", route, ErrNotFound)
	case status == http.StatusUnprocessableEntity:
		verr := &ValidationError{Message: sb.Message, Fields: make(map[string]string, len(sb.Errors))}
		for field, msgs := range sb.Errors {
			if len(msgs) > 0 {
				verr.Fields[field] = msgs[0]
			}
		}
		return Response{Status: status}, verr
	default:
		msg := sb.Message
		if msg == "" {
			msg = http.StatusText(status)
		}
		return Response{Status: status}, fmt.Errorf("submit %s: server returned %d: %s", route, status, msg)
	}
}

// IsValidation unwraps a *ValidationError from err.
func IsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
