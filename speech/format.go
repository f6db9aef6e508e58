package speech

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatTime renders a spoken clock time, "10 Uhr" or "10 Uhr 5".
func FormatTime(t time.Time) string {
	if t.Minute() == 0 {
		return fmt.Sprintf("%d Uhr", t.Hour())
	}
	return fmt.Sprintf("%d Uhr %d", t.Hour(), t.Minute())
}

// FormatPrice renders a price with at most two decimals, 10.5 as "10 Komma 5".
func FormatPrice(price float64) string {
	d := decimal.NewFromFloat(price).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "minus "
		d = d.Neg()
	}
	return sign + strings.Replace(d.String(), ".", " Komma ", 1)
}
