package storage

import (
	"context"
	"fmt"

	"github.com/shreyansh232/wysa/internal"
	"github.com/shreyansh232/wysa/internal/config"
)

// Repositories bundles the two stores a running server needs plus a
// backend-specific shutdown hook.
type Repositories struct {
	Users       UserRepository
	Assessments AssessmentRepository
	closeFn     func() error
}

func (r Repositories) Close() error {
	if r.closeFn == nil {
		return nil
	}
	return r.closeFn()
}

// New selects the backend from config: "file" for development and tests,
// "postgres" for everything else. The postgres path pings the database and
// runs migrations before the server accepts traffic.
func New(cfg *config.Config, logger internal.Logger) (Repositories, error) {
	switch cfg.DBType {
	case "file":
		fs, err := NewFileStorage(cfg.FileUsers, cfg.FileAssessments, logger)
		if err != nil {
			return Repositories{}, err
		}
		return Repositories{Users: fs, Assessments: fs, closeFn: fs.Close}, nil
	case "postgres":
		ps, err := NewPostgresStorage(cfg.DBDSN, logger)
		if err != nil {
			return Repositories{}, err
		}
		if err := ps.Migrate(context.Background()); err != nil {
			ps.Close()
			return Repositories{}, err
		}
		return Repositories{Users: ps, Assessments: ps, closeFn: ps.Close}, nil
	default:
		return Repositories{}, fmt.Errorf("unknown storage backend: %q", cfg.DBType)
	}
}
