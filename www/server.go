package www

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/angas/stromradar/config"
)

type Server struct {
	logger *slog.Logger
	config config.AppConfigApi
	mux    *http.ServeMux
}

func NewServer(querier Querier, db LogReader, config config.AppConfigApi, version string) *Server {
	logger := slog.Default().With("module", "www")

	s := &Server{
		logger: logger,
		config: config,
		mux:    http.NewServeMux(),
	}

	logReqMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.logger.Debug("http request",
				slog.String("method", r.Method),
				slog.String("url", r.URL.String()),
				slog.String("remoteAddr", r.RemoteAddr))
			next.ServeHTTP(w, r)
		})
	}

	s.mux.Handle("/skill", logReqMW(NewSkillHandler(
		logger.With(slog.String("handler", "skill")),
		querier)))

	s.mux.Handle("/log", logReqMW(NewLogHandler(
		logger.With(slog.String("handler", "log")),
		db)))

	s.mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprintf(w, "ok %s\n", version)
	})

	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) Run(ctx context.Context) {
	s.logger.Info("starting server...", "port", s.config.GetPort())
	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.config.Address, s.config.GetPort()),
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	srvErrors := make(chan error, 1)

	go func() {
		srvErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-srvErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", slog.Any("error", err))
		}

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown failed", slog.Any("error", err))
		}
	}
}
