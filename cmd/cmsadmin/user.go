package main

import (
	"fmt"

	intconfig "cmsadmin/internal/config"
	"cmsadmin/internal/repositories"
	"cmsadmin/internal/services"

	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage operator accounts",
}

var (
	userName     string
	userUsername string
	userEmail    string
	userPassword string
	userRole     string
)

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an operator account",
	Long: `Creates an operator in the local account database. Use it to seed the
first admin, who can then register others through the API.

Example:
  cmsadmin user add --username root --email root@example.com --password ... --role admin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		db, err := intconfig.OpenDB(ctx, env.DBDSN)
		if err != nil {
			return err
		}
		defer db.Close()

		repo := repositories.OperatorRepository{DB: db}
		if err := repo.EnsureSchema(ctx); err != nil {
			return err
		}
		who, err := services.AuthService{Store: repo}.Register(ctx, userName, userUsername, userEmail, userPassword, userRole)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created operator %d (%s, %s)\n", who.ID, who.Username, who.Role)
		return nil
	},
}

func init() {
	f := userAddCmd.Flags()
	f.StringVar(&userName, "name", "", "display name")
	f.StringVar(&userUsername, "username", "", "login name")
	f.StringVar(&userEmail, "email", "", "email address")
	f.StringVar(&userPassword, "password", "", "password, at least 8 characters")
	f.StringVar(&userRole, "role", "", "admin or editor (default editor)")
	_ = userAddCmd.MarkFlagRequired("username")
	_ = userAddCmd.MarkFlagRequired("email")
	_ = userAddCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userAddCmd)
}
