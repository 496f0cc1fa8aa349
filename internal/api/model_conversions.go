package api

import (
	"citizenai-backend/internal/database"
	"citizenai-backend/pkg/api"
)

func convertFeedbackStats(s database.FeedbackStats) api.FeedbackStats {
	return api.FeedbackStats{
		Positive: s.Positive,
		Neutral:  s.Neutral,
		Negative: s.Negative,
		Total:    s.Total,
	}
}

func convertFeedbackEntry(f database.Feedback) api.FeedbackEntry {
	return api.FeedbackEntry{
		Question:     f.Question,
		FeedbackText: f.FeedbackText,
		Sentiment:    f.Sentiment,
		Timestamp:    f.Timestamp,
	}
}

func convertFeedbackEntries(fs []database.Feedback) []api.FeedbackEntry {
	entries := make([]api.FeedbackEntry, 0, len(fs))
	for _, f := range fs {
		entries = append(entries, convertFeedbackEntry(f))
	}
	return entries
}
