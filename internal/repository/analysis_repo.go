package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/model"
)

const analysisCollection = "message_analysis"

type analysisRepo struct {
	collection *mongo.Collection
	seq        *sequence
}

// NewAnalysisRepo creates a MongoDB sentiment record repository
func NewAnalysisRepo(db *mongo.Database) AnalysisRepo {
	return &analysisRepo{
		collection: db.Collection(analysisCollection),
		seq:        newSequence(db, analysisCollection),
	}
}

func (r *analysisRepo) ensureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "messageId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "userId", Value: 1}},
		},
	})
	return err
}

func (r *analysisRepo) Create(ctx context.Context, rec *model.SentimentRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	id, err := r.seq.next(ctx)
	if err != nil {
		return err
	}
	rec.ID = id

	_, err = r.collection.InsertOne(ctx, rec)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateAnalysis
	}
	return err
}

func (r *analysisRepo) GetByMessageID(ctx context.Context, messageID int64) (*model.SentimentRecord, error) {
	var rec model.SentimentRecord
	err := r.collection.FindOne(ctx, bson.M{"messageId": messageID}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *analysisRepo) GetByMessageIDs(ctx context.Context, messageIDs []int64) (map[int64]*model.SentimentRecord, error) {
	out := make(map[int64]*model.SentimentRecord, len(messageIDs))
	if len(messageIDs) == 0 {
		return out, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"messageId": bson.M{"$in": messageIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*model.SentimentRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	for _, rec := range records {
		out[rec.MessageID] = rec
	}
	return out, nil
}

func (r *analysisRepo) ListByUser(ctx context.Context, userID int64) ([]*model.SentimentRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []*model.SentimentRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
