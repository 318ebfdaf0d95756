package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shreyansh232/wysa/internal"
)

const uniqueViolation = "23505"

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		logger.Errorf("failed to ping postgres: %v", err)
		pool.Close()
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

// Migrate creates the two tables if they do not exist yet. Nickname
// uniqueness lives here, not in application code.
func (p *PostgresStorage) Migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			nickname TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS assessments (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id),
			sleep_struggle_duration TEXT,
			bed_time TEXT,
			wake_time TEXT,
			sleep_hours INT,
			score INT,
			status TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
	`)
	if err != nil {
		p.logger.Errorf("failed to run migrations: %v", err)
	}
	return err
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// --- UserRepository ---

func (p *PostgresStorage) CreateUser(ctx context.Context, u *internal.User) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO users (id, nickname, password_hash, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Nickname, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateNickname
		}
		p.logger.Errorf("failed to insert user: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) GetUserByNickname(ctx context.Context, nickname string) (*internal.User, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, nickname, password_hash, created_at, updated_at FROM users WHERE nickname = $1`, nickname)
	var u internal.User
	if err := row.Scan(&u.ID, &u.Nickname, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Errorf("failed to query user: %v", err)
		return nil, err
	}
	return &u, nil
}

// --- AssessmentRepository ---

const assessmentColumns = `id, user_id, sleep_struggle_duration, bed_time, wake_time, sleep_hours, score, status, created_at, updated_at`

func (p *PostgresStorage) CreateAssessment(ctx context.Context, a *internal.Assessment) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO assessments (`+assessmentColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, a.UserID, a.SleepStruggleDuration, a.BedTime, a.WakeTime, a.SleepHours, a.Score, string(a.Status), a.CreatedAt, a.UpdatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert assessment: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) GetAssessment(ctx context.Context, id string) (*internal.Assessment, error) {
	row := p.pool.QueryRow(ctx, `SELECT `+assessmentColumns+` FROM assessments WHERE id = $1`, id)
	return p.scanAssessment(row)
}

func (p *PostgresStorage) SetAnswer(ctx context.Context, id string, field internal.AnswerField, value any, now time.Time) (*internal.Assessment, error) {
	var query string
	switch field {
	case internal.FieldSleepStruggle:
		query = `UPDATE assessments SET sleep_struggle_duration = $2, updated_at = $3 WHERE id = $1 RETURNING ` + assessmentColumns
	case internal.FieldBedTime:
		query = `UPDATE assessments SET bed_time = $2, updated_at = $3 WHERE id = $1 RETURNING ` + assessmentColumns
	case internal.FieldWakeTime:
		query = `UPDATE assessments SET wake_time = $2, updated_at = $3 WHERE id = $1 RETURNING ` + assessmentColumns
	case internal.FieldSleepHours:
		query = `UPDATE assessments SET sleep_hours = $2, updated_at = $3 WHERE id = $1 RETURNING ` + assessmentColumns
	default:
		return nil, ErrNotFound
	}
	row := p.pool.QueryRow(ctx, query, id, value, now)
	return p.scanAssessment(row)
}

func (p *PostgresStorage) CompleteAssessment(ctx context.Context, id string, score int, now time.Time) (*internal.Assessment, error) {
	row := p.pool.QueryRow(ctx,
		`UPDATE assessments SET score = $2, status = $3, updated_at = $4 WHERE id = $1 RETURNING `+assessmentColumns,
		id, score, string(internal.StatusCompleted), now)
	return p.scanAssessment(row)
}

func (p *PostgresStorage) scanAssessment(row pgx.Row) (*internal.Assessment, error) {
	var a internal.Assessment
	var status string
	err := row.Scan(&a.ID, &a.UserID, &a.SleepStruggleDuration, &a.BedTime, &a.WakeTime, &a.SleepHours, &a.Score, &status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Errorf("failed to scan assessment: %v", err)
		return nil, err
	}
	a.Status = internal.AssessmentStatus(status)
	return &a, nil
}

// --- Compile-time assertions ---
var _ UserRepository = (*PostgresStorage)(nil)
var _ AssessmentRepository = (*PostgresStorage)(nil)
