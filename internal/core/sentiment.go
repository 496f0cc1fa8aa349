package core

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"citizenai-backend/pkg/api"

	"github.com/jonreiter/govader"
)

const polarityThreshold = 0.1

// PolarityScorer returns a polarity score in [-1, 1] for a piece of text.
type PolarityScorer interface {
	Polarity(text string) (float64, error)
}

type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VaderScorer) Polarity(text string) (float64, error) {
	return v.analyzer.PolarityScores(text).Compound, nil
}

type FeedbackClassifier struct {
	scorer PolarityScorer
}

func NewFeedbackClassifier(scorer PolarityScorer) *FeedbackClassifier {
	if scorer == nil {
		scorer = NewVaderScorer()
	}
	return &FeedbackClassifier{scorer: scorer}
}

// Classify labels feedback Positive, Negative or Neutral. Any scoring failure
// yields Neutral.
func (c *FeedbackClassifier) Classify(text string) string {
	score, err := c.score(text)
	if err != nil {
		slog.Error("error analyzing sentiment", "error", err)
		return api.SentimentNeutral
	}

	switch {
	case score > polarityThreshold:
		return api.SentimentPositive
	case score < -polarityThreshold:
		return api.SentimentNegative
	default:
		return api.SentimentNeutral
	}
}

func (c *FeedbackClassifier) score(text string) (score float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("polarity scorer panicked: %v", r)
		}
	}()

	score, err = c.scorer.Polarity(text)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(score) {
		return 0, fmt.Errorf("polarity scorer returned NaN")
	}
	return score, nil
}

const (
	ChatSentimentPositive = "positive"
	ChatSentimentNegative = "negative"
	ChatSentimentNeutral  = "neutral"
)

var (
	negativeChatWords = []string{"angry", "frustrated", "upset", "hate", "terrible", "awful", "disappointed", "bad"}
	positiveChatWords = []string{"happy", "great", "excellent", "love", "amazing", "wonderful", "good", "satisfied"}
)

// ClassifyChatTurn tags a chat message by keyword. Negative words take
// precedence over positive ones.
func ClassifyChatTurn(text string) string {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, negativeChatWords):
		return ChatSentimentNegative
	case containsAny(lower, positiveChatWords):
		return ChatSentimentPositive
	default:
		return ChatSentimentNeutral
	}
}
