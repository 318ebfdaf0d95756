package response

import (
	"time"

	"github.com/shreyansh232/wysa/internal"
)

// UserPayload is the subset of a User that goes over the wire. The
// password hash never leaves the service.
type UserPayload struct {
	ID        string    `json:"id"`
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuthSuccess struct {
	Message string      `json:"message"`
	User    UserPayload `json:"user"`
	Token   string      `json:"token"`
}

type AssessmentSuccess struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Data    *internal.Assessment `json:"data"`
}

type Failure struct {
	Message string `json:"message"`
}

func NewAuthSuccess(msg string, u *internal.User, token string) AuthSuccess {
	return AuthSuccess{
		Message: msg,
		User:    UserPayload{ID: u.ID, Nickname: u.Nickname, CreatedAt: u.CreatedAt},
		Token:   token,
	}
}

func NewAssessmentSuccess(msg string, a *internal.Assessment) AssessmentSuccess {
	return AssessmentSuccess{Success: true, Message: msg, Data: a}
}

func NewFailure(msg string) Failure {
	return Failure{Message: msg}
}
