package http

import (
	"net/http"

	"lingua-cms/internal/handler/http/respond"
)

// Header and URI limits applied before routing.
const (
	maxAuthorizationHeader = 8 << 10
	maxAcceptLanguage      = 1 << 10
	maxPathLength          = 2 << 10
)

// InputValidation rejects requests whose Authorization or Accept-Language headers or
// path exceed fixed limits. Accept-Language is parsed for preferred content lookups,
// so its size is bounded as well.
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case len(r.Header.Get("Authorization")) > maxAuthorizationHeader:
				respond.JSON(w, http.StatusRequestHeaderFieldsTooLarge, respond.ErrorBody{Error: "authorization header too large"})
			case len(r.Header.Get("Accept-Language")) > maxAcceptLanguage:
				respond.JSON(w, http.StatusRequestHeaderFieldsTooLarge, respond.ErrorBody{Error: "Accept-Language header too large"})
			case len(r.URL.Path) > maxPathLength:
				respond.JSON(w, http.StatusRequestURITooLong, respond.ErrorBody{Error: "URI too long"})
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
