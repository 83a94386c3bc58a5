package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/analytics"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/config"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/model"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/repository"
)

// TrendQuery are the caller-supplied parameters of a mood-trend request.
// Zero values mean "use the configured default".
type TrendQuery struct {
	Window int
	LastN  int
	Sender string // "", "user" or "bot"
}

// MoodService glues the store to the analytics engine
type MoodService struct {
	users          repository.UserRepo
	messages       repository.MessageRepo
	analyses       repository.AnalysisRepo
	analysis       *AnalysisService
	summarizer     Summarizer
	trend          *config.TrendConfig
	summaryTimeout time.Duration
}

// NewMoodService creates a new mood service. summarizer may be nil.
func NewMoodService(users repository.UserRepo, messages repository.MessageRepo, analyses repository.AnalysisRepo, analysis *AnalysisService, summarizer Summarizer, trend *config.TrendConfig, summaryTimeout time.Duration) *MoodService {
	if summaryTimeout <= 0 {
		summaryTimeout = 5 * time.Second
	}
	return &MoodService{
		users:          users,
		messages:       messages,
		analyses:       analyses,
		analysis:       analysis,
		summarizer:     summarizer,
		trend:          trend,
		summaryTimeout: summaryTimeout,
	}
}

// MoodTrend computes the smoothed mood trend over the user's latest messages
func (s *MoodService) MoodTrend(ctx context.Context, userID int64, q TrendQuery) (*model.MoodTrendResponse, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	lastN := q.LastN
	if lastN <= 0 {
		lastN = s.trend.LastN
	}
	window := q.Window
	if window == 0 {
		window = s.trend.Window
	}

	msgs, err := s.messages.GetRecentByUser(ctx, userID, lastN)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	msgs = filterSender(msgs, q.Sender)

	ids := make([]int64, len(msgs))
	for i, m := range msgs {
		ids[i] = m.ID
	}
	records, err := s.analysis.RecordsFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	series := analytics.BuildSeries(msgs, records)
	result := analytics.Analyze(series, analytics.Options{
		Window: window,
		Thresholds: analytics.Thresholds{
			SlopeSmall: s.trend.SlopeSmall,
			DeltaBig:   s.trend.DeltaBig,
		},
		LargeJump: s.trend.LargeJump,
	})

	resp := &model.MoodTrendResponse{
		UserID:       userID,
		Count:        series.Len(),
		TrendResult:  result,
		Summary:      analytics.Summary(result),
		SummaryLabel: analytics.SummaryLabel(result),
	}
	if !series.Empty() {
		if text := s.llmSummary(ctx, userID, result); text != "" {
			resp.Summary = text
		}
	}
	return resp, nil
}

// ConversationSentiment averages the polarity of every record the user has
func (s *MoodService) ConversationSentiment(ctx context.Context, userID int64) (*model.ConversationSentimentResponse, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	records, err := s.analyses.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load sentiment records: %w", err)
	}

	return &model.ConversationSentimentResponse{
		UserID:                userID,
		ConversationSentiment: analytics.Aggregate(records),
	}, nil
}

// llmSummary asks the summarizer for a friendlier text. Errors, timeouts,
// panics and blank answers all yield "". The call runs in its own goroutine
// so a provider that ignores ctx cannot hold the request past the timeout.
func (s *MoodService) llmSummary(ctx context.Context, userID int64, result model.TrendResult) string {
	if s.summarizer == nil {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, s.summaryTimeout)
	defer cancel()

	type outcome struct {
		text string
		err  error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("summarizer panicked: %v", r)}
			}
		}()
		text, err := s.summarizer.Summarize(ctx, result)
		done <- outcome{text: text, err: err}
	}()

	log := logrus.WithField("user_id", userID)
	select {
	case <-ctx.Done():
		log.WithError(ctx.Err()).Warn("Summarizer timed out, keeping templated summary")
		return ""
	case out := <-done:
		if out.err != nil {
			if !errors.Is(out.err, ErrLLMDisabled) {
				log.WithError(out.err).Warn("Summarizer failed, keeping templated summary")
			}
			return ""
		}
		return strings.TrimSpace(out.text)
	}
}

func (s *MoodService) requireUser(ctx context.Context, userID int64) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("lookup user %d: %w", userID, err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	return nil
}

func filterSender(msgs []*model.Message, sender string) []*model.Message {
	if sender == "" {
		return msgs
	}
	out := make([]*model.Message, 0, len(msgs))
	for _, m := range msgs {
		if m.Sender == sender {
			out = append(out, m)
		}
	}
	return out
}
