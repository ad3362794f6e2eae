// AngelaMos | 2026
// recover.go

package middleware

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Recover reports a panic to Sentry, then answers 500. The Sentry handler
// re-panics after capturing, so chi's Recoverer has to sit outside it.
func Recover(next http.Handler) http.Handler {
	reporter := sentryhttp.New(sentryhttp.Options{Repanic: true})
	return chimw.Recoverer(reporter.Handle(next))
}
