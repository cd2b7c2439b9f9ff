package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"condo_ledger/internal/config"
	"condo_ledger/internal/logger"
	"condo_ledger/internal/models"
	"condo_ledger/internal/service"
)

type addUserParams struct {
	username string
	role     string
	password string
}

func newAddUserCmd(load configLoader) *cobra.Command {
	var p addUserParams

	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "Create an administrator or treasurer account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return runAddUser(cmd.Context(), cfg, p, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&p.username, "user", "", "username")
	cmd.Flags().StringVar(&p.role, "role", string(models.RoleTreasurer), "role: admin or treasurer")
	cmd.Flags().StringVar(&p.password, "password", "", "password (optional, will prompt if omitted)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func runAddUser(ctx context.Context, cfg config.Config, p addUserParams, stdin io.Reader, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	password := p.password
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout) // newline after password input
	}

	services, conn, err := openServices(cfg, logger.Nop(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	u, err := services.CreateUser(ctx, p.username, password, models.Role(strings.ToLower(strings.TrimSpace(p.role))))
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			return fmt.Errorf("user %s already exists", p.username)
		}
		return err
	}

	fmt.Fprintf(stdout, "User %s (%s) created successfully with ID %d\n", u.Username, u.Role, u.ID)
	return nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	// Fallback for non-terminal (e.g. tests, pipes)
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
