package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/cache"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/model"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/repository"
)

// ChatService runs one chat turn: store, classify, reply
type ChatService struct {
	users      repository.UserRepo
	messages   repository.MessageRepo
	analysis   *AnalysisService
	history    cache.HistoryCache
	generator  ReplyGenerator
	maxHistory int
}

// NewChatService creates a new chat service
func NewChatService(users repository.UserRepo, messages repository.MessageRepo, analysis *AnalysisService, history cache.HistoryCache, generator ReplyGenerator, maxHistory int) *ChatService {
	if history == nil {
		history = cache.NewNoopHistoryCache()
	}
	if maxHistory < 1 {
		maxHistory = 12
	}
	return &ChatService{
		users:      users,
		messages:   messages,
		analysis:   analysis,
		history:    history,
		generator:  generator,
		maxHistory: maxHistory,
	}
}

// ProcessChat saves the user message, analyses it, generates and saves the
// bot reply. Classifier and LLM failures never fail the turn.
func (s *ChatService) ProcessChat(ctx context.Context, userID int64, text string) (*model.ChatResponse, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup user %d: %w", userID, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	userMsg := &model.Message{UserID: userID, Sender: model.SenderUser, Text: text}
	if err := s.messages.Create(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("save user message: %w", err)
	}

	rec, err := s.analysis.AnalyzeAndStore(ctx, userMsg)
	if err != nil {
		logrus.WithError(err).WithField("message_id", userMsg.ID).Error("No sentiment record stored, backfill will retry")
	}

	history := s.historyText(ctx, userID, text)
	reply, err := s.generator.GenerateReply(ctx, history, text)
	switch {
	case err != nil:
		logrus.WithError(err).WithField("user_id", userID).Warn("LLM generation failed")
		reply = fmt.Sprintf("(llm-error) You said: %s", text)
	case strings.TrimSpace(reply) == "":
		reply = fmt.Sprintf("(llm-empty) You said: %s", text)
	}

	botMsg := &model.Message{UserID: userID, Sender: model.SenderBot, Text: reply}
	if err := s.messages.Create(ctx, botMsg); err != nil {
		return nil, fmt.Errorf("save bot message: %w", err)
	}

	if err := s.history.Append(ctx, userID,
		model.HistoryTurn{Sender: model.SenderUser, Text: text},
		model.HistoryTurn{Sender: model.SenderBot, Text: reply},
	); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("Failed to update history cache")
	}

	return &model.ChatResponse{
		UserMessageID: userMsg.ID,
		BotMessageID:  botMsg.ID,
		BotReply:      reply,
		Analysis:      rec,
	}, nil
}

// historyText renders the last turns oldest to newest, including the message
// just saved, as "User: ..." and "Assistant: ..." lines.
func (s *ChatService) historyText(ctx context.Context, userID int64, current string) string {
	turns, err := s.recentTurns(ctx, userID, current)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("Failed to load chat history")
		return ""
	}
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		role := "User"
		if t.Sender != model.SenderUser {
			role = "Assistant"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", role, strings.TrimSpace(t.Text)))
	}
	return strings.Join(lines, "\n")
}

// recentTurns prefers the cached window. The cache does not yet hold the
// current message, and a short window means the cache started after the
// conversation did, so the store is used instead.
func (s *ChatService) recentTurns(ctx context.Context, userID int64, current string) ([]model.HistoryTurn, error) {
	cached, err := s.history.Recent(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("History cache read failed")
	}
	if err == nil && len(cached) >= s.maxHistory-1 {
		turns := append(cached, model.HistoryTurn{Sender: model.SenderUser, Text: current})
		return turns[len(turns)-s.maxHistory:], nil
	}

	msgs, err := s.messages.GetRecentByUser(ctx, userID, s.maxHistory)
	if err != nil {
		return nil, err
	}

	turns := make([]model.HistoryTurn, len(msgs))
	for i, m := range msgs {
		// newest first from the store
		turns[len(msgs)-1-i] = model.HistoryTurn{Sender: m.Sender, Text: m.Text}
	}
	return turns, nil
}
