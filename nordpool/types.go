package nordpool

import "time"

type dayAheadPrices struct {
	DeliveryDateCET  string           `json:"deliveryDateCET"`
	Version          int              `json:"version"`
	UpdatedAt        string           `json:"updatedAt"`
	DeliveryAreas    []string         `json:"deliveryAreas"`
	Market           string           `json:"market"`
	Currency         string           `json:"currency"`
	MultiAreaEntries []multiAreaEntry `json:"multiAreaEntries"`
}

type multiAreaEntry struct {
	DeliveryStart time.Time          `json:"deliveryStart"`
	DeliveryEnd   time.Time          `json:"deliveryEnd"`
	EntryPerArea  map[string]float64 `json:"entryPerArea"`
}
