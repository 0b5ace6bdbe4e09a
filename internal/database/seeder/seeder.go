package seeder

import (
	"context"
	"log"

	"jobdesk/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

func RunAll(ctx context.Context, db database.DB, logger *log.Logger, seeders ...Seeder) error {
	for _, s := range seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, db); err != nil {
			return err
		}
		if logger != nil {
			logger.Printf("[Seeder] %s done", s.Name())
		}
	}
	return nil
}
