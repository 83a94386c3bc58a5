package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OpenMongo connects to MongoDB, pings it and ensures the indexes the
// repositories rely on.
func OpenMongo(ctx context.Context, uri, database string) (*Store, error) {
	// Nested score documents decode as maps so they serialise as JSON objects.
	opts := options.Client().
		ApplyURI(uri).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	db := client.Database(database)
	users := NewUserRepo(db).(*userRepo)
	messages := NewMessageRepo(db).(*messageRepo)
	analyses := NewAnalysisRepo(db).(*analysisRepo)

	for name, ensure := range map[string]func(context.Context) error{
		"users":            users.ensureIndexes,
		"messages":         messages.ensureIndexes,
		analysisCollection: analyses.ensureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			client.Disconnect(ctx)
			return nil, fmt.Errorf("create %s indexes: %w", name, err)
		}
	}

	logrus.WithField("database", database).Info("Connected to MongoDB")

	return &Store{
		Users:    users,
		Messages: messages,
		Analyses: analyses,
		Close:    client.Disconnect,
	}, nil
}
