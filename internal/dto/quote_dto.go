package dto

type DailyQuoteResponse struct {
	Quote string `json:"quote"`
}
