// AngelaMos | 2026
// cascade.go

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/carterperez-dev/talenthub/internal/admin"
	"github.com/carterperez-dev/talenthub/internal/cascade"
)

type opener func(ctx context.Context) (*app, error)

func newCascadeCmd(open opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cascade",
		Short: "Propagate subscription changes to member roles",
	}

	cmd.AddCommand(newCascadeCompanyCmd(open), newCascadeAcademyCmd(open))
	return cmd
}

func newCascadeCompanyCmd(open opener) *cobra.Command {
	var (
		subscription string
		actorID      string
	)

	cmd := &cobra.Command{
		Use:   "company <company-id>",
		Short: "Change a company's subscription and update its accepted members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sub, err := cascade.ParseSubscription(subscription)
			if err != nil {
				return err
			}

			a, err := open(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.requireAdmin(ctx, actorID); err != nil {
				return err
			}

			engine := cascade.NewEngine(a.companies, a.roles, a.logger)
			res, err := engine.ApplySubscriptionChange(ctx, cascade.SubscriptionChange{
				CompanyID:    args[0],
				Subscription: sub,
				ActorID:      actorID,
			})
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), admin.ToChangeSubscriptionResponse(res))
		},
	}

	cmd.Flags().StringVar(&subscription, "subscription", "", "freemium or premium")
	cmd.Flags().StringVar(&actorID, "actor", "", "user id of the admin recorded in the audit log")
	_ = cmd.MarkFlagRequired("subscription") //nolint:errcheck // flag is defined above
	_ = cmd.MarkFlagRequired("actor")        //nolint:errcheck // flag is defined above

	return cmd
}

func newCascadeAcademyCmd(open opener) *cobra.Command {
	var (
		enablePremium bool
		actorID       string
	)

	cmd := &cobra.Command{
		Use:   "academy <academy-id>",
		Short: "Grant or revoke premium talent tiers for an academy's active students",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := open(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.requireAdmin(ctx, actorID); err != nil {
				return err
			}

			engine := cascade.NewEngine(a.companies, a.roles, a.logger)
			res, err := engine.ApplyAcademyStudentPremiumToggle(ctx, cascade.AcademyToggle{
				AcademyID:     args[0],
				EnablePremium: enablePremium,
				ActorID:       actorID,
			})
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), admin.ToBulkAcademyResponse(res))
		},
	}

	cmd.Flags().BoolVar(&enablePremium, "enable-premium", true, "grant premium (false revokes it)")
	cmd.Flags().StringVar(&actorID, "actor", "", "user id of the admin recorded in the audit log")
	_ = cmd.MarkFlagRequired("actor") //nolint:errcheck // flag is defined above

	return cmd
}
