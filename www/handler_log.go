package www

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/angas/stromradar/database"
	"github.com/angas/stromradar/logging"
)

type LogReader interface {
	GetLogEntries(ctx context.Context, minLvl slog.Level, page, pageSize int) ([]database.LogEntryRow, error)
}

func NewLogHandler(logger *slog.Logger, db LogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		page := intOrDefault(r.URL, "page", 1)
		pageSize := intOrDefault(r.URL, "pageSize", 25)
		level := slog.LevelDebug
		if l := r.URL.Query().Get("level"); l != "" {
			level = logging.LevelFromString(&l)
		}

		entries, err := db.GetLogEntries(r.Context(), level, page, pageSize)
		if err != nil {
			logger.Error("handling log request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(struct {
			Page     int                    `json:"page"`
			PageSize int                    `json:"pageSize"`
			Entries  []database.LogEntryRow `json:"entries"`
		}{page, pageSize, entries}); err != nil {
			logger.Error("handling log request", slog.Any("error", err))
		}
	}
}

func intOrDefault(u *url.URL, key string, defaultValue int) int {
	if v := u.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}
