package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"condo_ledger/internal/config"
	"condo_ledger/internal/logger"
)

func newCreateDBCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "create-db",
		Short: "Create the schema and the default admin and treasurer accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return runCreateDB(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}
}

func runCreateDB(ctx context.Context, cfg config.Config, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	services, conn, err := openServices(cfg, logger.Nop(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	created, err := services.Bootstrap(ctx)
	if err != nil {
		return fmt.Errorf("create default users: %w", err)
	}

	if len(created) == 0 {
		fmt.Fprintln(stdout, "Base de datos lista; los usuarios por defecto ya existían.")
		return nil
	}
	for _, u := range created {
		fmt.Fprintf(stdout, "Usuario creado: %s\n", u)
	}
	fmt.Fprintln(stdout, "Base de datos inicializada.")
	return nil
}
