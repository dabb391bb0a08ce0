package cmd

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/airline-admin/internal/auth"
)

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Reset a user's password",
	Long:  `Interactively look up a user by email and set a new password.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if err := resetPassword(cmd.Context(), db, cfg.Security.BCryptCost, os.Stdin, os.Stdout); err != nil {
			log.Fatalf("reset-password: %v", err)
		}
	},
}

type passwordTarget struct {
	ID    string `db:"id"`
	Name  string `db:"name"`
	Email string `db:"email"`
}

func resetPassword(ctx context.Context, db *Database, cost int, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	reader := bufio.NewReader(in)

	email, err := prompt(reader, out, "Email: ")
	if err != nil {
		return err
	}

	var target passwordTarget
	query := db.SQLX.Rebind("SELECT id, name, email FROM users WHERE LOWER(email) = LOWER(?)")
	if err := db.SQLX.GetContext(ctx, &target, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("no user with email %q", email)
		}
		return fmt.Errorf("lookup user: %w", err)
	}
	fmt.Fprintf(out, "Found user: %s <%s>\n", target.Name, target.Email)

	password, err := prompt(reader, out, "New password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return errors.New("password cannot be empty")
	}
	confirm, err := prompt(reader, out, "Confirm password: ")
	if err != nil {
		return err
	}
	if confirm != password {
		return errors.New("passwords do not match")
	}

	answer, err := prompt(reader, out, "Type 'yes' to reset the password: ")
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		fmt.Fprintln(out, "Aborted")
		return nil
	}

	hash, err := auth.HashPassword(password, cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	update := db.SQLX.Rebind("UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?")
	if _, err := db.SQLX.ExecContext(ctx, update, hash, time.Now().Unix(), target.ID); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	fmt.Fprintln(out, "Password updated")
	return nil
}

func prompt(r *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
