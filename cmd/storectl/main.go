package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Leganyst/saas-store/internal/app"
	"github.com/Leganyst/saas-store/internal/cascade"
	"github.com/Leganyst/saas-store/internal/config"
	"github.com/Leganyst/saas-store/internal/httpapi"
	"github.com/Leganyst/saas-store/internal/logger"
	"github.com/Leganyst/saas-store/internal/utils"
)

func main() {
	_ = config.LoadEnvFile()

	rootCmd := &cobra.Command{
		Use:           "storectl",
		Short:         "Store core maintenance tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		migrateCmd(),
		planCmd(),
		tenantCmd(),
		retouchCmd(),
		remindersCmd(),
		tokenCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// openApp собирает приложение без сетевых серверов.
func openApp(ctx context.Context) (*app.App, error) {
	appCfg, err := config.LoadAppConfig()
	if err != nil {
		return nil, err
	}
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		return nil, err
	}
	zlog, err := logger.NewLogger(appCfg.LogLevel, "console", "storectl")
	if err != nil {
		return nil, err
	}
	return app.New(ctx, appCfg, dbCfg, zlog)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseID(flag, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("--%s must be a UUID: %w", flag, err)
	}
	return id, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Migrate(); err != nil {
				return err
			}
			fmt.Println("Migrations applied")
			return nil
		},
	}
}

func planCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Print the tenant deletion order",
		RunE: func(*cobra.Command, []string) error {
			plan := cascade.DefaultPlan()
			if err := plan.Validate(); err != nil {
				return err
			}
			fmt.Print(plan.Describe())
			return nil
		},
	}
}

func tenantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenant",
		Short: "Tenant administration",
	}

	var id string
	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a tenant and all of its data in one transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tenantID, err := parseID("id", id)
			if err != nil {
				return err
			}
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			report, err := a.Tenants.DeleteTenant(cmd.Context(), tenantID)
			if err != nil {
				return err
			}
			return printJSON(report)
		},
	}
	deleteCmd.Flags().StringVar(&id, "id", "", "tenant ID")
	_ = deleteCmd.MarkFlagRequired("id")

	cmd.AddCommand(deleteCmd)
	return cmd
}

func retouchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retouch",
		Short: "Retouch date calculation",
	}

	var tenant, customer, svc string
	run := func(persist bool) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			tenantID, err := parseID("tenant", tenant)
			if err != nil {
				return err
			}
			customerID, err := parseID("customer", customer)
			if err != nil {
				return err
			}
			var serviceID *uuid.UUID
			if svc != "" {
				id, err := parseID("service", svc)
				if err != nil {
					return err
				}
				serviceID = &id
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			var next time.Time
			if persist {
				next, err = a.Retouch.UpdateCustomerRetouchDate(cmd.Context(), tenantID, customerID, serviceID)
			} else {
				next, err = a.Retouch.CalculateNextRetouchDate(cmd.Context(), tenantID, customerID, serviceID)
			}
			if err != nil {
				return err
			}
			fmt.Println(utils.FormatISODate(next))
			return nil
		}
	}

	calc := &cobra.Command{Use: "calc", Short: "Print the next retouch date", RunE: run(false)}
	update := &cobra.Command{Use: "update", Short: "Calculate and store the next retouch date", RunE: run(true)}
	for _, c := range []*cobra.Command{calc, update} {
		c.Flags().StringVar(&tenant, "tenant", "", "tenant ID")
		c.Flags().StringVar(&customer, "customer", "", "customer ID")
		c.Flags().StringVar(&svc, "service", "", "service ID (defaults to the customer's retouch service)")
		_ = c.MarkFlagRequired("tenant")
		_ = c.MarkFlagRequired("customer")
	}

	cmd.AddCommand(calc, update)
	return cmd
}

func remindersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Retouch reminders",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Send reminders once, now",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			sent, err := a.Reminders.RunOnce(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Reminders sent: %d\n", sent)
			return nil
		},
	})
	return cmd
}

func tokenCmd() *cobra.Command {
	var slug, email string
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a dashboard token signed with JWT_SECRET",
		RunE: func(*cobra.Command, []string) error {
			appCfg, err := config.LoadAppConfig()
			if err != nil {
				return err
			}
			tok, err := httpapi.IssueToken([]byte(appCfg.JWTSecret), "storectl", slug, email, ttl)
			if err != nil {
				return err
			}
			fmt.Println(tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&slug, "tenant-slug", "", "tenant slug claim")
	cmd.Flags().StringVar(&email, "email", "", "e-mail claim (admin routes)")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
