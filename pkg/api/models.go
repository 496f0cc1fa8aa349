package api

import "time"

// Feedback sentiment labels.
const (
	SentimentPositive = "Positive"
	SentimentNegative = "Negative"
	SentimentNeutral  = "Neutral"
)

type ChatRequest struct {
	Message string `json:"message" schema:"message"`
}

type ChatResponse struct {
	Reply     string `json:"reply"`
	Sentiment string `json:"sentiment"`
	Question  string `json:"question"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type LoginForm struct {
	Email    string `schema:"email"`
	Password string `schema:"password"`
}

type SignupForm struct {
	FullName string `schema:"full_name"`
	Email    string `schema:"email"`
	Password string `schema:"password"`
}

type FeedbackForm struct {
	Question string `schema:"question"`
	Feedback string `schema:"feedback"`
}

type FeedbackStats struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
	Total    int `json:"total"`
}

type FeedbackEntry struct {
	Question     string    `json:"question"`
	FeedbackText string    `json:"feedback_text"`
	Sentiment    string    `json:"sentiment"`
	Timestamp    time.Time `json:"timestamp"`
}

type Notice struct {
	Kind    string
	Message string
}

// Page is the view model every HTML page is rendered with.
type Page struct {
	Title    string
	UserName string
	Notice   *Notice

	// Populated by the pages that need them.
	Error          string
	Form           SignupForm
	Stats          FeedbackStats
	RecentFeedback []FeedbackEntry
}
