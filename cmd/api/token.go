package main

import (
	"fmt"

	"productos-api/config"
	"productos-api/pkg/utils"

	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenEmail   string
	tokenRole    string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print an access token signed with JWT_SECRET",
	Long: `Print an access token signed with JWT_SECRET.

Creating, updating and deleting products requires a token with role "admin":

  curl -H "Authorization: Bearer $(api token --sub ops)" -X DELETE localhost:5000/productos/1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		if err := cfg.ValidateJWTSecret(); err != nil {
			return err
		}
		utils.SetSecret(cfg.JWTSecret)

		token, err := utils.GenerateJWT(tokenSubject, tokenEmail, tokenRole, cfg.AccessTokenExpiry)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "sub", "", "token subject (user id)")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "email claim")
	tokenCmd.Flags().StringVar(&tokenRole, "role", "admin", "role claim")
	_ = tokenCmd.MarkFlagRequired("sub")
}
