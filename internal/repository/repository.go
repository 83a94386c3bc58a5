package repository

import (
	"context"
	"errors"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/model"
)

// ErrDuplicateAnalysis is returned when a message already has a sentiment record
var ErrDuplicateAnalysis = errors.New("message already has a sentiment record")

// UserRepo handles persistence of users
type UserRepo interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

// MessageRepo handles persistence of chat messages
type MessageRepo interface {
	Create(ctx context.Context, msg *model.Message) error
	GetByID(ctx context.Context, id int64) (*model.Message, error)
	// GetRecentByUser returns at most limit messages, newest first
	GetRecentByUser(ctx context.Context, userID int64, limit int) ([]*model.Message, error)
	// ListWithoutAnalysis returns user-sent messages that have no sentiment record, oldest first
	ListWithoutAnalysis(ctx context.Context, limit int) ([]*model.Message, error)
}

// AnalysisRepo handles persistence of per-message sentiment records
type AnalysisRepo interface {
	Create(ctx context.Context, rec *model.SentimentRecord) error
	GetByMessageID(ctx context.Context, messageID int64) (*model.SentimentRecord, error)
	GetByMessageIDs(ctx context.Context, messageIDs []int64) (map[int64]*model.SentimentRecord, error)
	// ListByUser returns every record of the user's messages
	ListByUser(ctx context.Context, userID int64) ([]*model.SentimentRecord, error)
}

// Store bundles the repositories of one backend
type Store struct {
	Users    UserRepo
	Messages MessageRepo
	Analyses AnalysisRepo
	Close    func(ctx context.Context) error
}
