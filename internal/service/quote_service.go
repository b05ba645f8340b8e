package service

import (
	"time"

	"irene-companion-be/internal/dto"
)

// FallbackQuote is returned whenever no rotation entry applies.
const FallbackQuote = "Every day is a new beginning."

// dailyQuotes rotates by day of year, so every session sees the same quote on
// a given day without any storage.
var dailyQuotes = []string{
	"Every day is a new beginning.",
	"You are stronger than you think.",
	"Small steps still move you forward.",
	"Be kind to yourself today.",
	"Storms make trees take deeper roots.",
	"Your feelings are valid, and so are you.",
	"Progress, not perfection.",
	"Rest is productive too.",
	"You have survived all of your hardest days.",
	"One breath at a time is enough.",
	"Growth is quiet work.",
	"You matter more than you know.",
	"It's okay to ask for help.",
	"Today is a fresh page.",
}

type IQuoteService interface {
	GetDailyQuote(now time.Time) *dto.DailyQuoteResponse
}

type quoteService struct{}

func NewQuoteService() IQuoteService {
	return &quoteService{}
}

func (qs *quoteService) GetDailyQuote(now time.Time) *dto.DailyQuoteResponse {
	quote := FallbackQuote
	if len(dailyQuotes) > 0 {
		quote = dailyQuotes[now.YearDay()%len(dailyQuotes)]
	}
	return &dto.DailyQuoteResponse{Quote: quote}
}
