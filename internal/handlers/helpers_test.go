package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

// argFunc adapts a predicate to pgxmock.Argument.
type argFunc func(v any) bool

func (f argFunc) Match(v any) bool { return f(v) }

// strArg matches a *string argument holding want.
func strArg(want string) argFunc {
	return func(v any) bool {
		p, ok := v.(*string)
		return ok && p != nil && *p == want
	}
}

// nilStrArg matches a nil *string argument.
func nilStrArg() argFunc {
	return func(v any) bool {
		p, ok := v.(*string)
		return ok && p == nil
	}
}

func timeArg(want time.Time) argFunc {
	return func(v any) bool {
		t, ok := v.(time.Time)
		return ok && t.Equal(want)
	}
}
