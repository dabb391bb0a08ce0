package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	apperrors "github.com/frahmantamala/airline-admin/internal"
	"github.com/frahmantamala/airline-admin/internal/setup"
	setupPostgres "github.com/frahmantamala/airline-admin/internal/setup/postgres"
	"github.com/frahmantamala/airline-admin/pkg/logger"
)

var adminRequest setup.CreateAdminRequest

var setupAdminCmd = &cobra.Command{
	Use:   "setup-admin",
	Short: "Create the owner account",
	Long:  `Create the first owner account. Refuses to run once an owner exists.`,
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

		svc := setup.NewService(setupPostgres.NewSetupRepository(db.Gorm), cfg.Security.BCryptCost, logger.L())
		resp, err := svc.CreateAdminAccount(context.Background(), adminRequest)
		if err != nil {
			if appErr, ok := apperrors.IsAppError(err); ok {
				log.Fatalf("setup failed: %s", appErr.GetDetailedMessage())
			}
			log.Fatalf("setup failed: %v", err)
		}

		fmt.Println(resp.Message)
		fmt.Println("User ID:", resp.UserID)
	},
}

func init() {
	f := setupAdminCmd.Flags()
	f.StringVar(&adminRequest.Email, "email", "", "owner email address")
	f.StringVar(&adminRequest.Name, "name", "", "owner display name")
	f.StringVar(&adminRequest.Password, "password", "", "owner password (min 8 characters)")
	f.StringVar(&adminRequest.DiscordUsername, "discord", "", "owner Discord username")
	_ = setupAdminCmd.MarkFlagRequired("email")
	_ = setupAdminCmd.MarkFlagRequired("password")
}
