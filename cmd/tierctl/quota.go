// AngelaMos | 2026
// quota.go

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/carterperez-dev/talenthub/internal/quota"
	"github.com/carterperez-dev/talenthub/internal/tier"
)

func newQuotaCmd(open opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quota",
		Short: "Inspect and configure monthly application limits",
	}

	cmd.AddCommand(
		newQuotaTalentCmd(open),
		newQuotaCompanyCmd(open),
		newQuotaSetCmd(open),
	)
	return cmd
}

func (a *app) ledger(settings *quota.SettingsRepository) *quota.Ledger {
	var limits quota.LimitSource = settings
	if a.redis != nil {
		limits = quota.NewCachedLimits(
			settings,
			a.redis.Client,
			a.cfg.Entitlements.Quota.LimitCacheTTL,
			a.logger,
		)
	}

	return quota.NewLedger(
		limits,
		quota.NewApplicationRepository(a.db.DB),
		a.companies,
		a.logger,
	)
}

func newQuotaTalentCmd(open opener) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "talent <user-id>",
		Short: "Show a talent user's application limit for this month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := open(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			a.connectRedis(ctx)

			if role == "" {
				current, err := a.roles.GetRole(ctx, args[0])
				if err != nil {
					return fmt.Errorf("look up user: %w", err)
				}
				role = current.String()
			}

			limit := a.ledger(quota.NewSettingsRepository(a.db.DB)).
				CheckTalentApplicationLimit(ctx, args[0], role)

			return printJSON(cmd.OutOrStdout(), limit)
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "role tier to check against (defaults to the user's current role)")
	return cmd
}

func newQuotaCompanyCmd(open opener) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "company <company-id>",
		Short: "Show a company's application limit for this month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := open(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			a.connectRedis(ctx)

			limit := a.ledger(quota.NewSettingsRepository(a.db.DB)).
				CheckCompanyApplicationLimit(ctx, args[0], role)

			return printJSON(cmd.OutOrStdout(), limit)
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "role tier to check against (defaults to the company's status)")
	return cmd
}

func newQuotaSetCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "set <talent|company> <freemium|premium> <limit>",
		Short: "Set a monthly application limit (0 means unlimited)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			subject := quota.Subject(args[0])
			if subject != quota.SubjectTalent && subject != quota.SubjectCompany {
				return fmt.Errorf("subject must be talent or company, got %q", args[0])
			}

			level := tier.Level(args[1])
			if level != tier.LevelFreemium && level != tier.LevelPremium {
				return fmt.Errorf("level must be freemium or premium, got %q", args[1])
			}

			limit, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("limit must be an integer: %w", err)
			}

			a, err := open(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			a.connectRedis(ctx)

			key := quota.SettingKey(quota.ActionApplication, subject, level)
			if err := quota.NewSettingsRepository(a.db.DB).SetMonthlyLimit(ctx, key, limit); err != nil {
				return err
			}

			if a.redis != nil {
				if err := quota.InvalidateLimit(ctx, a.redis.Client, key); err != nil {
					a.logger.Warn("could not invalidate cached limit", "key", key, "error", err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s = %d\n", key, limit)
			return nil
		},
	}
}
