package submit

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/hris/internal/routes"
)

func testRoutes(t *testing.T) *routes.Table {
	t.Helper()
	tbl, err := routes.New(map[string]string{
		"accounts.store":  "/accounts",
		"letters.archive": "/letters/{letter}/archive",
	})
	require.NoError(t, err)
	return tbl
}

func newServer(t *testing.T, h http.HandlerFunc) *HTTPSubmitter {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	s, err := NewHTTPSubmitter(HTTPConfig{
		BaseURL:    srv.URL + "/",
		Timeout:    5 * time.Second,
		CSRFHeader: "X-CSRF-TOKEN",
		CSRFToken:  "tok",
	}, testRoutes(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSubmitPostsForm(t *testing.T) {
	var got *http.Request
	var body string
	s := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"message": "Account created.", "redirect": "/accounts"}`)
	})

	resp, err := s.Submit(context.Background(), Request{
		Route: "accounts.store",
		Form:  url.Values{"name": {"Ada"}, "division_id": {"eng"}},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "Account created.", resp.Message)
	assert.Equal(t, "/accounts", resp.Redirect)

	require.NotNil(t, got)
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/accounts", got.URL.Path)
	assert.Equal(t, "application/x-www-form-urlencoded", got.Header.Get("Content-Type"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	assert.Equal(t, "tok", got.Header.Get("X-CSRF-TOKEN"))
	assert.NotEmpty(t, got.Header.Get("X-Request-ID"))
	assert.Equal(t, "division_id=eng&name=Ada", body)
}

func TestSubmitExpandsRouteParams(t *testing.T) {
	var path string
	s := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})
	resp, err := s.Submit(context.Background(), Request{Route: "letters.archive", Params: map[string]string{"letter": "l7"}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.Status)
	assert.Equal(t, "/letters/l7/archive", path)
}

func TestSubmitStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			check:  func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrUnauthorized) },
		},
		{
			name:   "forbidden",
			status: http.StatusForbidden,
			check:  func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrUnauthorized) },
		},
		{
			name:   "not found",
			status: http.StatusNotFound,
			check:  func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrNotFound) },
		},
		{
			name:   "validation",
			status: http.StatusUnprocessableEntity,
			body:   `{"message": "The given data was invalid.", "errors": {"email": ["The email has already been taken.", "second"], "division_id": ["Pick a division."]}}`,
			check: func(t *testing.T, err error) {
				verr, ok := IsValidation(err)
				require.True(t, ok)
				assert.Equal(t, "The given data was invalid.", verr.Message)
				assert.Equal(t, "The email has already been taken.", verr.Field("email"))
				assert.Equal(t, "Pick a division.", verr.Field("division_id"))
				assert.Equal(t, "", verr.Field("name"))
				assert.Equal(t, "The given data was invalid. (division_id, email)", verr.Error())
			},
		},
		{
			name:   "server error with message",
			status: http.StatusInternalServerError,
			body:   `{"message": "database down"}`,
			check:  func(t *testing.T, err error) { assert.ErrorContains(t, err, "server returned 500: database down") },
		},
		{
			name:   "server error without body",
			status: http.StatusBadGateway,
			check:  func(t *testing.T, err error) { assert.ErrorContains(t, err, "Bad Gateway") },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			resp, err := s.Submit(context.Background(), Request{Route: "accounts.store"})
			require.Error(t, err)
			assert.Equal(t, tt.status, resp.Status)
			tt.check(t, err)
		})
	}
}

func TestSubmitUnknownRoute(t *testing.T) {
	s := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("server must not be called")
	})
	_, err := s.Submit(context.Background(), Request{Route: "payroll.run"})
	assert.ErrorIs(t, err, routes.ErrUnknownRoute)
}

func TestSubmitHonorsContext(t *testing.T) {
	s := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Submit(ctx, Request{Route: "accounts.store"})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNewHTTPSubmitterValidates(t *testing.T) {
	tbl := testRoutes(t)
	_, err := NewHTTPSubmitter(HTTPConfig{}, tbl)
	assert.ErrorContains(t, err, "empty")
	_, err = NewHTTPSubmitter(HTTPConfig{BaseURL: "ftp://x"}, tbl)
	assert.ErrorContains(t, err, "http or https")
	_, err = NewHTTPSubmitter(HTTPConfig{BaseURL: "http://x"}, nil)
	assert.ErrorContains(t, err, "route table")
}

func TestDryRunSubmitter(t *testing.T) {
	d := NewDryRunSubmitter(testRoutes(t))
	resp, err := d.Submit(context.Background(), Request{Route: "accounts.store", Form: url.Values{"name": {"Ada"}}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Contains(t, resp.Message, "Dry run")

	_, err = d.Submit(context.Background(), Request{Route: "letters.archive"})
	assert.ErrorContains(t, err, "missing parameter")

	sent := d.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Ada", sent[0].Form.Get("name"))
	assert.NoError(t, d.Close())
}
