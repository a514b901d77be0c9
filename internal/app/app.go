package app

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hance08/weka/internal/book"
	"github.com/hance08/weka/internal/config"
	"github.com/hance08/weka/internal/service"
	"github.com/hance08/weka/internal/store"
)

type App struct {
	Service *service.Service
	Store   store.Repository
	Book    *book.Book
}

// NewApp initialize config, database and core logic, then return App entity
func NewApp(cfg *config.Config, migrationFS fs.FS) (*App, func(), error) {
	dbPathRaw := cfg.Database.Path

	if dbPathRaw == "" {
		appDir, _ := getAppDataDir()
		dbPathRaw = filepath.Join(appDir, "weka.db")
	}

	dbStore, err := store.NewStore(dbPathRaw, migrationFS)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	ledger, err := book.Open(dbStore)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open book: %w", err)
	}

	svc := service.NewService(dbStore, ledger, cfg)

	cleanup := func() {
		if err := dbStore.Close(); err != nil {
			fmt.Printf("Error closing DB: %v\n", err)
		}
	}

	return &App{
		Service: svc,
		Store:   dbStore,
		Book:    ledger,
	}, cleanup, nil
}

func getAppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, ".weka"), nil
	}

	return filepath.Join(configDir, "weka"), nil
}
