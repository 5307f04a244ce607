package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"poskernel/core"
)

// statusRecorder captures the response code for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs every façade request with the bound terminal and
// the response status, so fleet operators can attribute traffic per
// till. The kernel itself never logs; this is host plumbing.
func RequestLogger(reg *core.Registry) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			terminal, err := reg.TerminalID()
			if err != nil {
				terminal = "-"
			}
			logrus.WithFields(logrus.Fields{
				"terminal": terminal,
				"status":   rec.status,
			}).Infof("%s %s %s", r.Method, r.RequestURI, time.Since(start))
		})
	}
}
