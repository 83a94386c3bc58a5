package model

// ChatRequest is the request body for POST /v1/chat
type ChatRequest struct {
	UserID int64  `json:"user_id"`
	Text   string `json:"text"`
}

// ChatResponse is returned after a chat turn
type ChatResponse struct {
	UserMessageID int64            `json:"user_message_id"`
	BotMessageID  int64            `json:"bot_message_id"`
	BotReply      string           `json:"bot_reply"`
	Analysis      *SentimentRecord `json:"analysis,omitempty"`
}

// HistoryTurn is one line of the chat transcript handed to the reply generator
type HistoryTurn struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}
