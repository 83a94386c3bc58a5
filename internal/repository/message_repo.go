package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/model"
)

type messageRepo struct {
	collection *mongo.Collection
	seq        *sequence
}

// NewMessageRepo creates a MongoDB message repository
func NewMessageRepo(db *mongo.Database) MessageRepo {
	return &messageRepo{
		collection: db.Collection("messages"),
		seq:        newSequence(db, "messages"),
	}
}

func (r *messageRepo) ensureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}

func (r *messageRepo) Create(ctx context.Context, msg *model.Message) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	id, err := r.seq.next(ctx)
	if err != nil {
		return err
	}
	msg.ID = id

	_, err = r.collection.InsertOne(ctx, msg)
	return err
}

func (r *messageRepo) GetByID(ctx context.Context, id int64) (*model.Message, error) {
	var msg model.Message
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&msg)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepo) GetRecentByUser(ctx context.Context, userID int64, limit int) ([]*model.Message, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	messages := []*model.Message{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepo) ListWithoutAnalysis(ctx context.Context, limit int) ([]*model.Message, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"sender": model.SenderUser}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         analysisCollection,
			"localField":   "_id",
			"foreignField": "messageId",
			"as":           "analysis",
		}}},
		{{Key: "$match", Value: bson.M{"analysis": bson.M{"$size": 0}}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: int64(limit)}},
		{{Key: "$project", Value: bson.M{"analysis": 0}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	messages := []*model.Message{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
