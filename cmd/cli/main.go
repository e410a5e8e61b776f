package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	postgresRepo "github.com/hermanas/caja/internal/adapter/repository/postgres"
	"github.com/hermanas/caja/internal/domain"
	"github.com/hermanas/caja/internal/infrastructure/config"
	"github.com/hermanas/caja/internal/infrastructure/postgres"
	"github.com/hermanas/caja/internal/usecase"
)

var (
	baseURL string
	timeout time.Duration
)

// Swappable for tests.
var bcryptGenerate = bcrypt.GenerateFromPassword

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "caja-cli",
		Short: "Caja administration tool",
		Long:  `A command line interface for the caja financial ledger service.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the caja API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(createUserCmd())
	rootCmd.AddCommand(hashPasswordCmd())
	rootCmd.AddCommand(eventSummaryCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func migrateCmd() *cobra.Command {
	var migrationsPath string

	cmd := &cobra.Command{
		Use:   "migrate [up|down]",
		Short: "Run database migrations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			switch args[0] {
			case "up":
				return postgres.RunMigrations(cfg.DatabaseURL, migrationsPath)
			case "down":
				return postgres.RunMigrationsDown(cfg.DatabaseURL, migrationsPath)
			default:
				return fmt.Errorf("unknown direction %q, want up or down", args[0])
			}
		},
	}

	cmd.Flags().StringVar(&migrationsPath, "path", "migrations", "Path to migration files")

	return cmd
}

func createUserCmd() *cobra.Command {
	var username, name, password, role string

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create an operator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			userUC := usecase.NewUserUseCase(
				postgresRepo.NewUserRepository(pool),
				postgresRepo.NewULIDGenerator(),
			)

			user, err := userUC.CreateUser(ctx, usecase.CreateUserInput{
				Username: username,
				Name:     name,
				Password: password,
				Role:     domain.Role(role),
			})
			if err != nil {
				return err
			}

			fmt.Printf("created user %s (%s)\n", user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Login username")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&password, "password", "", "Password (min 8 characters)")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleOperator), "Role: admin or operator")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print the bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Println(string(hash))
			return nil
		},
	}
}

func eventSummaryCmd() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "event-summary <event-id>",
		Short: "Fetch an event's financial summary from the API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := &http.Client{Timeout: timeout}

			req, err := http.NewRequest(http.MethodGet, baseURL+"/api/v1/events/"+args[0]+"/summary", nil)
			if err != nil {
				return err
			}
			if token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}

			resp, err := client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return err
			}

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, truncate(string(body), 200))
			}

			var summary map[string]any
			if err := json.Unmarshal(body, &summary); err != nil {
				return err
			}

			printJSON(summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Bearer token for the API")

	return cmd
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render JSON: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
