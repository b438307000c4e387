package seeds

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"churchbook_backend/internals/repository"
	churches "churchbook_backend/internals/seeds/churches"
)

const seedTimeout = time.Minute

func RunAllSeeds(db *gorm.DB, log *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	store := repository.NewGormStore(db)

	//* Church + pastor
	return churches.SeedChurchesFromJSON(ctx, store, "internals/seeds/churches/data_churches.json", log)
}
