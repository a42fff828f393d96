package dto

import "time"

type CreateSessionResponse struct {
	SessionId string `json:"session_id"`
	Phase     string `json:"phase"`
	Greeting  string `json:"greeting"`
}

type SendMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

type SendMessageResponse struct {
	SessionId string `json:"session_id"`
	Phase     string `json:"phase"`
	Reply     string `json:"reply"`
}

type TurnDTO struct {
	Role     string `json:"role"`
	Content  string `json:"content"`
	Sequence int    `json:"sequence"`
}

type GetChatHistoryResponse struct {
	SessionId string    `json:"session_id"`
	Phase     string    `json:"phase"`
	Turns     []TurnDTO `json:"turns"`
}

type GetAllSessionsResponse struct {
	SessionId string `json:"session_id"`
	Phase     string `json:"phase"`
	TurnCount int    `json:"turn_count"`
}

type CustomerDTO struct {
	Identificacion string     `json:"identificacion"`
	Nombre         string     `json:"nombre"`
	Telefono       string     `json:"telefono"`
	Email          string     `json:"email"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}
