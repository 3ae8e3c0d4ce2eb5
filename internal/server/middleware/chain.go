package middleware

import "net/http"

// Chain применяет middleware в порядке перечисления: первый становится внешним.
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
