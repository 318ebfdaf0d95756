package storage

import (
	"context"
	"errors"
	"time"

	"github.com/shreyansh232/wysa/internal"
)

var (
	// ErrNotFound is returned when a lookup does not resolve to a row.
	ErrNotFound = errors.New("storage: not found")
	// ErrDuplicateNickname surfaces the store-level uniqueness constraint
	// on user nicknames. Callers never race a read-then-write for this.
	ErrDuplicateNickname = errors.New("storage: nickname already exists")
)

type UserRepository interface {
	CreateUser(ctx context.Context, u *internal.User) error
	GetUserByNickname(ctx context.Context, nickname string) (*internal.User, error)
}

type AssessmentRepository interface {
	CreateAssessment(ctx context.Context, a *internal.Assessment) error
	GetAssessment(ctx context.Context, id string) (*internal.Assessment, error)
	// SetAnswer writes exactly one answer column plus updated_at as a
	// single atomic statement and returns the refreshed record. Concurrent
	// writers race last-write-wins at the column level.
	SetAnswer(ctx context.Context, id string, field internal.AnswerField, value any, now time.Time) (*internal.Assessment, error)
	// CompleteAssessment stores the score and flips status to COMPLETED.
	CompleteAssessment(ctx context.Context, id string, score int, now time.Time) (*internal.Assessment, error)
}
