package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHTTPApprox(t *testing.T) {
	h := NewHTTPHandler(newSearcher(t))

	rec := get(t, h, "/approx/1/test")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "4", rec.Header().Get("X-Result-Count"))
	assert.Equal(t,
		`[{"word":"test","freq":10,"distance":0},{"word":"text","freq":5,"distance":1},{"word":"tests","freq":2,"distance":1},{"word":"tent","freq":1,"distance":1}]`+"\n",
		rec.Body.String())

	rec = get(t, h, "/approx/0/dog")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestHTTPApproxErrors(t *testing.T) {
	h := NewHTTPHandler(newSearcher(t))

	tests := []struct {
		path string
		code int
	}{
		{"/approx/x/test", http.StatusBadRequest},
		{"/approx/-1/test", http.StatusBadRequest},
		{"/approx/4294967295/test", http.StatusBadRequest},
		{"/approx/1/" + strings.Repeat("a", 17), http.StatusUnprocessableEntity},
		{"/approx/1", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(t, h, tt.path)
			assert.Equal(t, tt.code, rec.Code)
			if tt.code != http.StatusNotFound {
				var resp ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tt.code, resp.Code)
				assert.NotEmpty(t, resp.Error)
			}
		})
	}
}

func TestHTTPEscapedWord(t *testing.T) {
	h := NewHTTPHandler(newSearcher(t))
	rec := get(t, h, "/approx/1/te%20t")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"word":"test"`)
}

func TestHTTPHealthAndInfo(t *testing.T) {
	h := NewHTTPHandler(newSearcher(t))

	rec := get(t, h, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = get(t, h, "/info")
	require.Equal(t, http.StatusOK, rec.Code)
	var info DictInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "test.bin", info.Path)
	assert.Equal(t, 4, info.Words)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
