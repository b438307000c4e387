package churches

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"go.uber.org/zap"

	"churchbook_backend/internals/features/churches/churches/dto"
	"churchbook_backend/internals/features/churches/churches/service"
	"churchbook_backend/internals/repository"
)

// Same shape as dto.CreateChurchRequest
type ChurchSeed = dto.CreateChurchRequest

// SeedChurchesFromJSON creates every church in the file whose name is not taken yet,
// each with its pastor account.
func SeedChurchesFromJSON(ctx context.Context, store repository.Store, filePath string, log *zap.Logger) error {
	log.Info("📥 reading seed file", zap.String("file", filePath))

	file, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	var seeds []ChurchSeed
	if err := json.Unmarshal(file, &seeds); err != nil {
		return err
	}

	existing, _, err := store.ListChurches(ctx, repository.Page{Offset: 0, Limit: 1000})
	if err != nil {
		return err
	}
	taken := make(map[string]bool, len(existing))
	for _, c := range existing {
		taken[c.Name] = true
	}

	svc := service.NewChurchService(store)
	for _, s := range seeds {
		name := strings.TrimSpace(s.Name)
		if taken[name] {
			log.Info("ℹ️ church exists, skipping", zap.String("name", name))
			continue
		}
		m, err := svc.Create(ctx, s)
		if err != nil {
			log.Error("❌ seed church", zap.String("name", name), zap.Error(err))
			continue
		}
		log.Info("✅ church seeded", zap.String("name", m.Name), zap.String("id", m.ID.String()))
	}
	return nil
}
