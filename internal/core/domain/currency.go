package domain

// Currency represents a supported currency.
type Currency struct {
	CurrencyCode  string `json:"currencyCode"`  // Primary Key (ISO 4217, e.g. "USD")
	Symbol        string `json:"symbol"`        // e.g. "$"
	Name          string `json:"name"`          // e.g. "US Dollar"
	DecimalPlaces int    `json:"decimalPlaces"` // minor-unit precision, 2 for USD, 0 for JPY
	IsActive      bool   `json:"isActive"`
	AuditFields
}
