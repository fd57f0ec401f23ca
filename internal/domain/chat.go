package domain

// ChatMessage is one entry in an in-memory assistant conversation.
// Messages are never persisted.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
