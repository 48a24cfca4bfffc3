package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/xyz-asif/spire/internal/config"
	"github.com/xyz-asif/spire/internal/database"
	"github.com/xyz-asif/spire/internal/features/places"
	"github.com/xyz-asif/spire/internal/features/recommendations"
	"github.com/xyz-asif/spire/internal/features/users"
	"github.com/xyz-asif/spire/internal/pkg/jwt"
	"github.com/xyz-asif/spire/internal/pkg/logger"
	"github.com/xyz-asif/spire/internal/pkg/validator"
	apperrors "github.com/xyz-asif/spire/pkg/errors"
)

const Version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "spire",
		Short:        "Spire operator tools",
		Long:         "Operator commands for the Spire backend: batch recommendation runs, preference refresh, catalog seeding, users and test tokens.",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")

	cmd.AddCommand(
		userCmd(),
		generateCmd(),
		refreshPreferencesCmd(),
		seedCmd(),
		tokenCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "spire version %s\n", Version)
			},
		},
	)
	return cmd
}

var verbose bool

// env is what every database-backed command needs
type env struct {
	cfg *config.Config
	db  *database.MongoDB
}

func connect() (*env, error) {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if verbose {
		logger.SetGlobalLevel(logger.DEBUG)
	}

	db, err := database.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, db: db}, nil
}

func (e *env) close() {
	_ = e.db.Disconnect(context.Background())
}

func generateCmd() *cobra.Command {
	var (
		username string
		limit    int
		workers  int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate recommendations for one user or every user",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := connect()
			if err != nil {
				return err
			}
			defer e.close()

			if limit <= 0 {
				limit = e.cfg.RecommendationLimit
			}
			if workers <= 0 {
				workers = e.cfg.BatchWorkers
			}

			ctx := cmd.Context()
			service := recommendations.NewServiceFromDB(e.db.Database)
			out := cmd.OutOrStdout()

			if username != "" {
				user, err := lookupUser(ctx, users.NewRepository(e.db.Database), username)
				if err != nil {
					return err
				}
				result, err := service.GenerateForUser(ctx, user.ID, limit)
				if err != nil {
					return fmt.Errorf("generate for %s: %w", username, err)
				}
				fmt.Fprintf(out, "Generated %d recommendations for %s (%s path, %d scored)\n",
					result.Created, username, result.Path, result.Scored)
				return nil
			}

			result, err := service.GenerateForAllUsers(ctx, workers, limit)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Run %s: %d users, %d failed, %d recommendations created in %s\n",
				result.RunID, result.Users, result.Failed, result.Created, result.Duration.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "Generate only for this username")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum recommendations per user (default RECOMMENDATION_LIMIT)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel users in batch mode (default BATCH_WORKERS)")
	return cmd
}

func refreshPreferencesCmd() *cobra.Command {
	var (
		username string
		workers  int
	)

	cmd := &cobra.Command{
		Use:   "refresh-preferences",
		Short: "Recompute favorite categories from posts and boards",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := connect()
			if err != nil {
				return err
			}
			defer e.close()

			if workers <= 0 {
				workers = e.cfg.BatchWorkers
			}

			ctx := cmd.Context()
			service := recommendations.NewServiceFromDB(e.db.Database)
			out := cmd.OutOrStdout()

			if username != "" {
				user, err := lookupUser(ctx, users.NewRepository(e.db.Database), username)
				if err != nil {
					return err
				}
				categories, err := service.RefreshFavoriteCategories(ctx, user.ID)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s: %v\n", username, categories)
				return nil
			}

			result, err := service.RefreshAllPreferences(ctx, workers)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Run %s: refreshed %d of %d users\n", result.RunID, result.Succeeded, result.Users)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "Refresh only this username")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel users (default BATCH_WORKERS)")
	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample place and event catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := connect()
			if err != nil {
				return err
			}
			defer e.close()

			result, err := places.Seed(cmd.Context(), places.NewRepository(e.db.Database), time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), seedSummary(result))
			return nil
		},
	}
}

func seedSummary(result places.SeedResult) string {
	summary := fmt.Sprintf("Seeded %d places and %d events", len(result.PlacesCreated), len(result.EventsCreated))
	if names := append(slices.Clone(result.PlacesCreated), result.EventsCreated...); len(names) > 0 {
		summary += ": " + strings.Join(names, ", ")
	}
	return summary
}

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	var (
		username    string
		email       string
		displayName string
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := connect()
			if err != nil {
				return err
			}
			defer e.close()

			user, err := createUser(cmd.Context(), users.NewRepository(e.db.Database), username, email, displayName)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", user.Username, user.ID.Hex())
			return nil
		},
	}
	create.Flags().StringVar(&username, "username", "", "Username (3-20 letters, digits, _ or -)")
	create.Flags().StringVar(&email, "email", "", "Email address")
	create.Flags().StringVar(&displayName, "display-name", "", "Display name (defaults to the username)")
	_ = create.MarkFlagRequired("username")
	_ = create.MarkFlagRequired("email")

	cmd.AddCommand(create)
	return cmd
}

type userCreator interface {
	Create(ctx context.Context, user *users.User) error
}

func createUser(ctx context.Context, store userCreator, username, email, displayName string) (*users.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.TrimSpace(email)
	if !validator.IsValidUsername(username) {
		return nil, fmt.Errorf("invalid username %q", username)
	}
	if !validator.IsValidEmail(email) {
		return nil, fmt.Errorf("invalid email %q", email)
	}
	if displayName == "" {
		displayName = username
	}

	user := &users.User{Username: username, Email: email, DisplayName: displayName}
	if err := store.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("username or email already taken")
		}
		return nil, err
	}
	return user, nil
}

func tokenCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := connect()
			if err != nil {
				return err
			}
			defer e.close()

			user, err := lookupUser(cmd.Context(), users.NewRepository(e.db.Database), username)
			if err != nil {
				return err
			}

			token, err := jwt.GenerateToken(user.ID.Hex(), user.Username, jwt.DefaultConfig(e.cfg.JWTSecret, e.cfg.JWTExpire))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "Username to issue the token for")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

type userLookup interface {
	GetByUsername(ctx context.Context, username string) (*users.User, error)
}

func lookupUser(ctx context.Context, store userLookup, username string) (*users.User, error) {
	user, err := store.GetByUsername(ctx, username)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("user %q not found", username)
	}
	return user, err
}
