package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"condo_ledger/internal/config"
	"condo_ledger/internal/logger"
	"condo_ledger/internal/repository"
	"condo_ledger/internal/repository/db"
	"condo_ledger/internal/service"
	"condo_ledger/internal/storage"
)

// @title                       Condominium Ledger API
// @version                     1.0
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "condo",
		Short:         "Condominium ledger: payments, expenses and spreadsheet reports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: configs/config.yml when present)")

	load := func() (config.Config, error) { return config.Load(cfgFile) }

	root.AddCommand(
		newServeCmd(load),
		newCreateDBCmd(load),
		newAddUserCmd(load),
	)
	return root
}

type configLoader func() (config.Config, error)

// openServices opens the database and wires repositories into services.
// The caller owns the returned *sql.DB.
func openServices(cfg config.Config, log *logger.Logger, archiver storage.Archiver) (*service.Service, *sql.DB, error) {
	conn, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open database %q: %w", cfg.DB.Path, err)
	}

	repos := repository.NewRepository(conn)
	services := service.NewService(repos, service.Options{
		Auth: service.AuthConfig{
			SigningKey: cfg.Auth.SigningKey,
			SessionTTL: cfg.Auth.SessionTTL,
		},
		Archiver: archiver,
		Log:      log,
	})
	return services, conn, nil
}
