package service

import (
	"github.com/dom/esports-stats-ledger/internal/config"
	"github.com/dom/esports-stats-ledger/internal/repository"
	"github.com/rs/zerolog"
)

type Services struct {
	Auth       *AuthService
	Catalog    *CatalogService
	Ledger     *LedgerService
	Comparison *ComparisonService
}

func NewServices(repos *repository.Repositories, tx repository.Transactor, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Auth:       NewAuthService(repos.User, cfg),
		Catalog:    NewCatalogService(repos, tx),
		Ledger:     NewLedgerService(repos, tx, log),
		Comparison: NewComparisonService(repos, cfg.LeaderboardSize),
	}
}
