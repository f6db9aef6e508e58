package www

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/angas/stromradar/query"
	"github.com/angas/stromradar/speech"
	"github.com/angas/stromradar/types"
	"github.com/google/uuid"
)

type Querier interface {
	Execute(ctx context.Context, req query.Request) (query.Result, error)
}

var priceIntents = map[string]query.Query{
	"AktuellerPreis":        query.QueryCurrentPrice,
	"ZusammenfassungHeute":  query.QueryTodaySummary,
	"ZusammenfassungMorgen": query.QueryTomorrowSummary,
	"ZeitraumHeute":         query.QueryCheapestToday,
	"ZeitraumMorgen":        query.QueryCheapestTomorrow,
}

const hoursSlot = "stunden"

func NewSkillHandler(logger *slog.Logger, querier Querier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req skillRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			logger.Warn("invalid skill request", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		reqLogger := logger.With(
			slog.String("requestId", uuid.NewString()),
			slog.String("type", req.Request.Type),
			slog.String("intent", req.Request.Intent.Name))

		start := time.Now()
		res := handleSkillRequest(r.Context(), reqLogger, querier, req)
		reqLogger.Info("skill request handled", slog.Duration("duration", time.Since(start)))

		w.Header().Set("Content-Type", "application/json;charset=UTF-8")
		if err := json.NewEncoder(w).Encode(res); err != nil {
			reqLogger.Error("writing skill response", slog.Any("error", err))
		}
	}
}

func handleSkillRequest(ctx context.Context, logger *slog.Logger, querier Querier, req skillRequest) (res skillResponse) {
	defer func() {
		if err := recover(); err != nil {
			logger.Error("skill request panicked", slog.Any("error", fmt.Errorf("%v", err)))
			res = ask(speech.RequestFailed, speech.RequestFailed)
		}
	}()

	switch req.Request.Type {
	case requestLaunch:
		return ask(speech.Launch, speech.Launch)
	case requestSessionEnded:
		return empty()
	case requestIntent:
		// handled below
	default:
		logger.Warn("unsupported request type")
		return ask(speech.RequestFailed, speech.RequestFailed)
	}

	intent := req.Request.Intent.Name
	if q, ok := priceIntents[intent]; ok {
		return tell(answer(ctx, logger, querier, query.Request{Query: q, Hours: req.slotValue(hoursSlot)}))
	}

	switch intent {
	case "AMAZON.HelpIntent":
		return ask(speech.Help, speech.Help)
	case "AMAZON.CancelIntent", "AMAZON.StopIntent":
		return tell(speech.Goodbye)
	case "AMAZON.FallbackIntent":
		logger.Info("fallback intent")
		return ask(speech.Fallback, speech.FallbackReprompt)
	default:
		return tell(speech.Reflect(intent))
	}
}

func answer(ctx context.Context, logger *slog.Logger, querier Querier, req query.Request) string {
	res, err := querier.Execute(ctx, req)
	if err != nil {
		if types.IsExpected(err) {
			logger.Warn("price query failed", slog.String("query", req.Query.String()), slog.Any("error", err))
		} else {
			logger.Error("unexpected error in price query", slog.String("query", req.Query.String()), slog.Any("error", err))
		}
		return speech.ForError(req.Query, err)
	}
	return speech.ForResult(res)
}
