package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/cache"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/model"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/repository"
)

// AnalysisService classifies messages and serves their sentiment records
type AnalysisService struct {
	messages   repository.MessageRepo
	analyses   repository.AnalysisRepo
	cache      cache.AnalysisCache
	classifier Classifier
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(messages repository.MessageRepo, analyses repository.AnalysisRepo, analysisCache cache.AnalysisCache, classifier Classifier) *AnalysisService {
	if analysisCache == nil {
		analysisCache = cache.NewNoopAnalysisCache()
	}
	return &AnalysisService{
		messages:   messages,
		analyses:   analyses,
		cache:      analysisCache,
		classifier: classifier,
	}
}

// AnalyzeAndStore classifies msg and stores its record. If the record cannot
// be stored a neutral fallback is tried; the returned error is non-nil only
// when neither could be written.
func (s *AnalysisService) AnalyzeAndStore(ctx context.Context, msg *model.Message) (*model.SentimentRecord, error) {
	rec := model.NewSentimentRecord(msg, s.classifier.Classify(ctx, msg.Text))

	err := s.analyses.Create(ctx, rec)
	if err == nil {
		s.cacheRecord(ctx, rec)
		return rec, nil
	}
	if errors.Is(err, repository.ErrDuplicateAnalysis) {
		return s.analyses.GetByMessageID(ctx, msg.ID)
	}

	logrus.WithError(err).WithField("message_id", msg.ID).Warn("Failed to store sentiment record, storing neutral fallback")

	fallback := model.FallbackSentimentRecord(msg)
	if ferr := s.analyses.Create(ctx, fallback); ferr != nil {
		return nil, fmt.Errorf("store fallback sentiment record: %w", ferr)
	}
	s.cacheRecord(ctx, fallback)
	return fallback, nil
}

// GetMessageAnalysis returns the record of one message
func (s *AnalysisService) GetMessageAnalysis(ctx context.Context, messageID int64) (*model.SentimentRecord, error) {
	msg, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("lookup message %d: %w", messageID, err)
	}
	if msg == nil {
		return nil, ErrMessageNotFound
	}

	rec, err := s.cache.Get(ctx, messageID)
	if err != nil {
		logrus.WithError(err).WithField("message_id", messageID).Warn("Analysis cache read failed, falling back to store")
	}
	if rec != nil {
		return rec, nil
	}

	rec, err = s.analyses.GetByMessageID(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("load sentiment record %d: %w", messageID, err)
	}
	if rec == nil {
		return nil, ErrAnalysisNotFound
	}
	s.cacheRecord(ctx, rec)
	return rec, nil
}

// RecordsFor fetches the records of the given messages, cache first.
// Messages without a record are absent from the map.
func (s *AnalysisService) RecordsFor(ctx context.Context, messageIDs []int64) (map[int64]*model.SentimentRecord, error) {
	found, err := s.cache.GetMany(ctx, messageIDs)
	if err != nil {
		logrus.WithError(err).Warn("Analysis cache read failed, falling back to store")
		found = map[int64]*model.SentimentRecord{}
	}

	var missing []int64
	for _, id := range messageIDs {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return found, nil
	}

	stored, err := s.analyses.GetByMessageIDs(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("load sentiment records: %w", err)
	}

	fill := make([]*model.SentimentRecord, 0, len(stored))
	for id, rec := range stored {
		found[id] = rec
		fill = append(fill, rec)
	}
	s.cacheRecords(ctx, fill...)
	return found, nil
}

// RecentWithAnalysis returns the user's latest messages, newest first, each
// paired with its record when one exists.
func (s *AnalysisService) RecentWithAnalysis(ctx context.Context, userID int64, limit int) ([]model.MessageWithAnalysis, error) {
	msgs, err := s.messages.GetRecentByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}

	ids := make([]int64, len(msgs))
	for i, m := range msgs {
		ids[i] = m.ID
	}
	records, err := s.RecordsFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]model.MessageWithAnalysis, len(msgs))
	for i, m := range msgs {
		out[i] = model.MessageWithAnalysis{Message: m, Analysis: records[m.ID]}
	}
	return out, nil
}

// Backfill classifies up to batch user messages that have no record yet and
// returns how many records were written.
func (s *AnalysisService) Backfill(ctx context.Context, batch int) (int, error) {
	pending, err := s.messages.ListWithoutAnalysis(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("list unanalysed messages: %w", err)
	}

	analysed := 0
	for _, msg := range pending {
		if ctx.Err() != nil {
			return analysed, ctx.Err()
		}
		rec := model.NewSentimentRecord(msg, s.classifier.Classify(ctx, msg.Text))
		if err := s.analyses.Create(ctx, rec); err != nil {
			if errors.Is(err, repository.ErrDuplicateAnalysis) {
				continue
			}
			logrus.WithError(err).WithField("message_id", msg.ID).Warn("Backfill failed to store sentiment record")
			continue
		}
		s.cacheRecord(ctx, rec)
		analysed++
	}
	return analysed, nil
}

func (s *AnalysisService) cacheRecord(ctx context.Context, rec *model.SentimentRecord) {
	if err := s.cache.Set(ctx, rec); err != nil {
		logrus.WithError(err).WithField("message_id", rec.MessageID).Warn("Failed to cache sentiment record")
	}
}

func (s *AnalysisService) cacheRecords(ctx context.Context, records ...*model.SentimentRecord) {
	if len(records) == 0 {
		return
	}
	if err := s.cache.SetMany(ctx, records); err != nil {
		logrus.WithError(err).WithField("count", len(records)).Warn("Failed to cache sentiment records")
	}
}
