package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatTurn struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId uuid.UUID `gorm:"type:uuid;not null;index"`
	Role          string    `gorm:"type:varchar(10);not null"`
	Content       string    `gorm:"type:text;not null"`
	Sequence      int       `gorm:"not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (ChatTurn) TableName() string {
	return "chat_turns"
}
