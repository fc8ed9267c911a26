package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputValidation(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		header map[string]string
		want   int
	}{
		{"ok", "/posts", map[string]string{"Authorization": "Bearer abc", "Accept-Language": "de-DE,de;q=0.9"}, http.StatusOK},
		{"huge token", "/posts", map[string]string{"Authorization": "Bearer " + strings.Repeat("a", maxAuthorizationHeader)}, http.StatusRequestHeaderFieldsTooLarge},
		{"huge accept-language", "/posts", map[string]string{"Accept-Language": strings.Repeat("en,", maxAcceptLanguage)}, http.StatusRequestHeaderFieldsTooLarge},
		{"long path", "/" + strings.Repeat("p", maxPathLength), nil, http.StatusRequestURITooLong},
	}

	h := InputValidation()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
