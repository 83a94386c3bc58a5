package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/model"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	username   TEXT    NOT NULL UNIQUE,
	created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS messages (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id    INTEGER NOT NULL REFERENCES users(id),
	sender     TEXT    NOT NULL,
	text       TEXT    NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_user_created ON messages(user_id, created_at);
CREATE TABLE IF NOT EXISTS message_analysis (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	message_id INTEGER NOT NULL UNIQUE REFERENCES messages(id),
	user_id    INTEGER NOT NULL,
	label      TEXT    NOT NULL DEFAULT '',
	confidence REAL,
	scores     TEXT,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analysis_user ON message_analysis(user_id);
`

// OpenSQLite opens (creating if needed) a SQLite database and applies the schema.
// path may be ":memory:".
func OpenSQLite(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open SQLite: %w", err)
	}
	// One writer; also keeps a ":memory:" database on a single connection.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply SQLite schema: %w", err)
	}

	logrus.WithField("path", path).Info("Opened SQLite store")

	return &Store{
		Users:    NewSQLiteUserRepo(db),
		Messages: NewSQLiteMessageRepo(db),
		Analyses: NewSQLiteAnalysisRepo(db),
		Close: func(context.Context) error {
			return db.Close()
		},
	}, nil
}

func toUnix(t time.Time) int64 {
	return t.UnixNano()
}

func fromUnix(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

// Users

type sqliteUserRepo struct {
	db *sql.DB
}

// NewSQLiteUserRepo creates a SQLite user repository
func NewSQLiteUserRepo(db *sql.DB) UserRepo {
	return &sqliteUserRepo{db: db}
}

func (r *sqliteUserRepo) Create(ctx context.Context, user *model.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, created_at) VALUES (?, ?)`,
		user.Username, toUnix(user.CreatedAt))
	if err != nil {
		return err
	}
	user.ID, err = res.LastInsertId()
	return err
}

func (r *sqliteUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getOne(ctx, `SELECT id, username, created_at FROM users WHERE id = ?`, id)
}

func (r *sqliteUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getOne(ctx, `SELECT id, username, created_at FROM users WHERE username = ?`, username)
}

func (r *sqliteUserRepo) getOne(ctx context.Context, query string, arg interface{}) (*model.User, error) {
	var (
		user    model.User
		created int64
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&user.ID, &user.Username, &created)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	user.CreatedAt = fromUnix(created)
	return &user, nil
}

// Messages

type sqliteMessageRepo struct {
	db *sql.DB
}

// NewSQLiteMessageRepo creates a SQLite message repository
func NewSQLiteMessageRepo(db *sql.DB) MessageRepo {
	return &sqliteMessageRepo{db: db}
}

const messageColumns = `m.id, m.user_id, m.sender, m.text, m.created_at`

func (r *sqliteMessageRepo) Create(ctx context.Context, msg *model.Message) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (user_id, sender, text, created_at) VALUES (?, ?, ?, ?)`,
		msg.UserID, msg.Sender, msg.Text, toUnix(msg.CreatedAt))
	if err != nil {
		return err
	}
	msg.ID, err = res.LastInsertId()
	return err
}

func (r *sqliteMessageRepo) GetByID(ctx context.Context, id int64) (*model.Message, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+messageColumns+` FROM messages m WHERE m.id = ?`, id)
	if err != nil {
		return nil, err
	}
	messages, err := scanMessages(rows)
	if err != nil || len(messages) == 0 {
		return nil, err
	}
	return messages[0], nil
}

func (r *sqliteMessageRepo) GetRecentByUser(ctx context.Context, userID int64, limit int) ([]*model.Message, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+messageColumns+` FROM messages m
		 WHERE m.user_id = ?
		 ORDER BY m.created_at DESC, m.id DESC
		 LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	return scanMessages(rows)
}

func (r *sqliteMessageRepo) ListWithoutAnalysis(ctx context.Context, limit int) ([]*model.Message, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+messageColumns+` FROM messages m
		 LEFT JOIN message_analysis a ON a.message_id = m.id
		 WHERE m.sender = ? AND a.id IS NULL
		 ORDER BY m.created_at ASC, m.id ASC
		 LIMIT ?`, model.SenderUser, limit)
	if err != nil {
		return nil, err
	}
	return scanMessages(rows)
}

func scanMessages(rows *sql.Rows) ([]*model.Message, error) {
	defer rows.Close()

	messages := []*model.Message{}
	for rows.Next() {
		var (
			msg     model.Message
			created int64
		)
		if err := rows.Scan(&msg.ID, &msg.UserID, &msg.Sender, &msg.Text, &created); err != nil {
			return nil, err
		}
		msg.CreatedAt = fromUnix(created)
		messages = append(messages, &msg)
	}
	return messages, rows.Err()
}

// Sentiment records

type sqliteAnalysisRepo struct {
	db *sql.DB
}

// NewSQLiteAnalysisRepo creates a SQLite sentiment record repository
func NewSQLiteAnalysisRepo(db *sql.DB) AnalysisRepo {
	return &sqliteAnalysisRepo{db: db}
}

const analysisColumns = `id, message_id, user_id, label, confidence, scores, created_at`

func (r *sqliteAnalysisRepo) Create(ctx context.Context, rec *model.SentimentRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	var scores sql.NullString
	if rec.Scores != nil {
		data, err := json.Marshal(rec.Scores)
		if err != nil {
			return fmt.Errorf("encode scores: %w", err)
		}
		scores = sql.NullString{String: string(data), Valid: true}
	}

	var confidence sql.NullFloat64
	if rec.Confidence != nil {
		confidence = sql.NullFloat64{Float64: *rec.Confidence, Valid: true}
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO message_analysis (message_id, user_id, label, confidence, scores, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.MessageID, rec.UserID, rec.Label, confidence, scores, toUnix(rec.CreatedAt))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateAnalysis
		}
		return err
	}
	rec.ID, err = res.LastInsertId()
	return err
}

func (r *sqliteAnalysisRepo) GetByMessageID(ctx context.Context, messageID int64) (*model.SentimentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+analysisColumns+` FROM message_analysis WHERE message_id = ?`, messageID)
	if err != nil {
		return nil, err
	}
	records, err := scanRecords(rows)
	if err != nil || len(records) == 0 {
		return nil, err
	}
	return records[0], nil
}

func (r *sqliteAnalysisRepo) GetByMessageIDs(ctx context.Context, messageIDs []int64) (map[int64]*model.SentimentRecord, error) {
	out := make(map[int64]*model.SentimentRecord, len(messageIDs))
	if len(messageIDs) == 0 {
		return out, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(messageIDs)), ",")
	args := make([]interface{}, len(messageIDs))
	for i, id := range messageIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+analysisColumns+` FROM message_analysis WHERE message_id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		out[rec.MessageID] = rec
	}
	return out, nil
}

func (r *sqliteAnalysisRepo) ListByUser(ctx context.Context, userID int64) ([]*model.SentimentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+analysisColumns+` FROM message_analysis WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]*model.SentimentRecord, error) {
	defer rows.Close()

	records := []*model.SentimentRecord{}
	for rows.Next() {
		var (
			rec        model.SentimentRecord
			confidence sql.NullFloat64
			scores     sql.NullString
			created    int64
		)
		if err := rows.Scan(&rec.ID, &rec.MessageID, &rec.UserID, &rec.Label, &confidence, &scores, &created); err != nil {
			return nil, err
		}
		if confidence.Valid {
			c := confidence.Float64
			rec.Confidence = &c
		}
		if scores.Valid {
			// Unreadable scores leave the record label-only.
			if err := json.Unmarshal([]byte(scores.String), &rec.Scores); err != nil {
				logrus.WithError(err).WithField("message_id", rec.MessageID).Warn("Discarding malformed sentiment scores")
				rec.Scores = nil
			}
		}
		rec.CreatedAt = fromUnix(created)
		records = append(records, &rec)
	}
	return records, rows.Err()
}
