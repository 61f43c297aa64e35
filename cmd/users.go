package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minbarhq/minbar/internal/user"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts",
}

var usersCreateCmd = &cobra.Command{
	Use:   "create <email> <name>",
	Short: "Create a user account and print its access token",
	Long: `Create a user account. The generated access token is printed once and
cannot be recovered later; pass it as "Authorization: Bearer <token>" to the
HTTP API.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUsersCreate(args[0], strings.Join(args[1:], " "))
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <email>",
	Short: "Delete a user account and all its sessions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUsersDelete(args[0])
	},
}

func init() {
	usersCmd.AddCommand(usersCreateCmd)
	usersCmd.AddCommand(usersDeleteCmd)
	rootCmd.AddCommand(usersCmd)
}

func runUsersCreate(email, name string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDatabase(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	u, err := user.NewStore(db, newLogger(cfg)).Create(context.Background(), email, name)
	if err != nil {
		return err
	}

	fmt.Printf("Created user %s\n", u.Email)
	fmt.Printf("Access token: %s\n", u.Token)
	return nil
}

func runUsersDelete(email string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDatabase(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := user.NewStore(db, newLogger(cfg)).Delete(context.Background(), email); err != nil {
		return err
	}
	fmt.Printf("Deleted user %s\n", email)
	return nil
}
