package main

import (
	"context"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/app"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/config"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/logging"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/model"
)

type turn struct {
	sender   string
	text     string
	label    string
	polarity *float64 // nil stores a label-only record
}

func p(v float64) *float64 { return &v }

// A conversation that starts upbeat and sours, with a few legacy
// label-only records mixed in.
var script = []turn{
	{model.SenderUser, "Hi! I just got the new plan and it's great so far.", model.LabelPositive, p(0.82)},
	{model.SenderBot, "Glad to hear it! Anything I can help with?", "", nil},
	{model.SenderUser, "Just wondering how to set up the family sharing.", model.LabelNeutral, nil},
	{model.SenderBot, "Open Settings, then Sharing, and add members by email.", "", nil},
	{model.SenderUser, "Thanks, that worked nicely.", model.LabelPositive, p(0.64)},
	{model.SenderBot, "Happy to help.", "", nil},
	{model.SenderUser, "Hmm, now my bill shows a charge I don't recognise.", model.LabelNeutral, p(-0.12)},
	{model.SenderBot, "Let me check that for you.", "", nil},
	{model.SenderUser, "This is really frustrating, I was charged twice.", model.LabelNegative, p(-0.71)},
	{model.SenderBot, "I'm sorry about that. I've raised a refund request.", "", nil},
	{model.SenderUser, "Still waiting, this is terrible service.", model.LabelNegative, nil},
}

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	logging.Init(cfg.Debug)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := app.OpenStore(ctx, cfg)
	if err != nil {
		logrus.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close(ctx)

	user, err := store.Users.GetByUsername(ctx, "demo")
	if err != nil {
		logrus.Fatalf("Failed to look up demo user: %v", err)
	}
	if user != nil {
		logrus.WithField("user_id", user.ID).Info("Demo user already seeded")
		return
	}

	user = &model.User{Username: "demo"}
	if err := store.Users.Create(ctx, user); err != nil {
		logrus.Fatalf("Failed to create demo user: %v", err)
	}

	start := time.Now().UTC().Add(-time.Duration(len(script)) * time.Minute)
	for i, t := range script {
		msg := &model.Message{
			UserID:    user.ID,
			Sender:    t.sender,
			Text:      t.text,
			CreatedAt: start.Add(time.Duration(i) * time.Minute),
		}
		if err := store.Messages.Create(ctx, msg); err != nil {
			logrus.Fatalf("Failed to create message %d: %v", i, err)
		}
		if t.label == "" {
			continue
		}

		rec := &model.SentimentRecord{
			MessageID: msg.ID,
			UserID:    user.ID,
			Label:     strings.ToUpper(t.label),
			CreatedAt: msg.CreatedAt,
		}
		if t.polarity != nil {
			rec = model.NewSentimentRecord(msg, model.Classification{
				Label:      t.label,
				Confidence: 0.9,
				Polarity:   *t.polarity,
			})
		}
		if err := store.Analyses.Create(ctx, rec); err != nil {
			logrus.Fatalf("Failed to create sentiment record for message %d: %v", msg.ID, err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"messages": len(script),
	}).Info("Seeded demo conversation")
}
