// Package logging builds the process logger and derives request-scoped loggers from it.
//
//	logger := logging.New(logging.LoadConfig())
//	slog.SetDefault(logger)
//
//	func (h handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
//	    log := logging.Request(r.Context(), h.logger)
//	    log.Info("processing request")
//	}
package logging
