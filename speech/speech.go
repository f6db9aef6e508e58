package speech

import (
	"errors"
	"fmt"

	"github.com/angas/stromradar/query"
	"github.com/angas/stromradar/types"
)

const (
	Launch           = "Willkommen beim Stromradar, du kannst mich nach dem Strompreis fragen."
	Help             = "Du kannst mich nach dem aktuellen, dem heutigen oder dem morgigen Strompreis fragen. Wie kann ich dir helfen?"
	Goodbye          = "Ich wünsche einen spannenden Tag!"
	Fallback         = "Hmm, ich bin mir nicht sicher. Du kannst Hallo sagen oder um Hilfe bitten. Was möchtest du tun?"
	FallbackReprompt = "Das habe ich nicht verstanden. Wobei kann ich dir helfen?"
	RequestFailed    = "Entschuldigung, ich hatte Schwierigkeiten, deine Anfrage zu bearbeiten. Bitte versuche es erneut."

	remoteUnavailable = "Entschuldigung, ich konnte die Strompreis-Datenbank gerade nicht erreichen. Bitte versuche es später erneut."
	malformedData     = "Entschuldigung, die erhaltenen Preisdaten waren fehlerhaft oder konnten nicht gelesen werden."
	unexpected        = "Es ist ein unerwarteter technischer Fehler aufgetreten."
)

func Reflect(intent string) string {
	return fmt.Sprintf("Du hast %s ausgelöst.", intent)
}

func dayWord(day query.Day) string {
	if day == query.Tomorrow {
		return "morgen"
	}
	return "heute"
}

func capitalized(day query.Day) string {
	if day == query.Tomorrow {
		return "Morgen"
	}
	return "Heute"
}

// ForResult renders a successful query result.
func ForResult(res query.Result) string {
	day := res.Query.Day()
	switch {
	case res.Current != nil:
		return fmt.Sprintf("Im Augenblick beträgt der Strompreis %s Cent pro Kilowattstunde.",
			FormatPrice(res.Current.Price))

	case res.Summary != nil:
		return fmt.Sprintf("%s ist der niedrigste Preis %s Cent pro Kilowattstunde um %s. "+
			"Der teuerste Preis ist %s Cent um %s.",
			capitalized(day),
			FormatPrice(res.Summary.Min.Price), FormatTime(res.Summary.Min.From),
			FormatPrice(res.Summary.Max.Price), FormatTime(res.Summary.Max.From))

	case res.Block != nil:
		phrase := "günstigste Stunde ist"
		if res.Block.Hours != 1 {
			phrase = fmt.Sprintf("%d günstigsten Stunden sind", res.Block.Hours)
		}
		return fmt.Sprintf("Die %s %s von %s bis %s mit einem durchschnittlichen Preis von %s Cent pro Kilowattstunde.",
			phrase, dayWord(day),
			FormatTime(res.Block.Start), FormatTime(res.Block.End),
			FormatPrice(res.Block.Average))

	default:
		return unexpected
	}
}

// ForError renders a failed query. Unclassified errors get a generic answer.
func ForError(q query.Query, err error) string {
	var nya *types.NotYetAvailableError
	switch {
	case errors.As(err, &nya):
		return fmt.Sprintf("Die morgigen Preise sind noch nicht verfügbar. Bitte frage nach %d Uhr wieder.", nya.Hour)
	case errors.Is(err, types.ErrRemoteUnavailable):
		return remoteUnavailable
	case errors.Is(err, types.ErrMalformedData):
		return malformedData
	case errors.Is(err, types.ErrNotFound):
		return fmt.Sprintf("Ich habe für %s leider keine Preisdaten gefunden.", dayWord(q.Day()))
	default:
		return unexpected
	}
}
