package main

import (
	"fmt"

	"github.com/dom/esports-stats-ledger/internal/domain"
	"github.com/spf13/cobra"
)

var (
	adminName     string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create a user with the admin role",
	Args:  cobra.NoArgs,
	RunE:  runCreateAdmin,
}

func init() {
	createAdminCmd.Flags().StringVar(&adminName, "name", "", "display name")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "password (at least 8 characters)")
	_ = createAdminCmd.MarkFlagRequired("name")
	_ = createAdminCmd.MarkFlagRequired("password")
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {
	if len(adminPassword) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	services, err := openServices()
	if err != nil {
		return err
	}

	user, err := services.Auth.CreateUser(cmd.Context(), adminName, adminPassword, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", user.DisplayName, user.ID)
	return nil
}
