package services

import (
	"errors"

	"github.com/zelphyx/Glucoin-AI/models"

	"gorm.io/gorm"
)

// ErrHistoryNotConfigured marks the store as absent (no database).
var ErrHistoryNotConfigured = errors.New("chat history store not configured")

// ChatHistoryService keeps per-session transcripts. Entirely optional: the
// chat pipeline never reads from it, and with a nil DB every call degrades
// to a no-op or ErrHistoryNotConfigured.
type ChatHistoryService struct {
	db *gorm.DB
}

func NewChatHistoryService(db *gorm.DB) *ChatHistoryService {
	return &ChatHistoryService{db: db}
}

func (s *ChatHistoryService) Available() bool {
	return s.db != nil
}

// Append stores one turn. Skipped silently when no store or session is set,
// so logging never fails a chat request.
func (s *ChatHistoryService) Append(sessionID, role, content string) error {
	if s.db == nil || sessionID == "" {
		return nil
	}
	msg := models.ChatMessage{SessionID: sessionID, Role: role, Content: content}
	return s.db.Create(&msg).Error
}

// Transcript returns a session's turns in insertion order.
func (s *ChatHistoryService) Transcript(sessionID string) ([]models.ChatMessage, error) {
	if s.db == nil {
		return nil, ErrHistoryNotConfigured
	}
	var msgs []models.ChatMessage
	err := s.db.Where("session_id = ?", sessionID).Order("id asc").Find(&msgs).Error
	return msgs, err
}
