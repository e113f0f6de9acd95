package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"formpilot-api/config"
	"formpilot-api/services"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func formsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "forms", Short: "Manage forms"}

	var owner, notify, redirect string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a form for an owner",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, settings, err := openDB()
			if err != nil {
				return err
			}
			form, err := services.NewFormService(db).Create(cmd.Context(), owner, services.FormSettingsInput{
				NotifyEmail: notify,
				RedirectURL: redirect,
			})
			if err != nil {
				return err
			}
			embed := services.BuildEmbedInfo(settings.BaseURL, form.FormID)
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\nsubmit to %s\n", form.FormID, embed.SubmitURL)
			return nil
		},
	}
	create.Flags().StringVar(&owner, "owner", "", "owner user id")
	create.Flags().StringVar(&notify, "notify-email", "", "address notified on each submission")
	create.Flags().StringVar(&redirect, "redirect-url", "", "optional http(s) URL to redirect to after submit")
	_ = create.MarkFlagRequired("owner")
	_ = create.MarkFlagRequired("notify-email")

	var listOwner string
	list := &cobra.Command{
		Use:   "list",
		Short: "List an owner's forms",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDB()
			if err != nil {
				return err
			}
			forms, err := services.NewFormService(db).ListByOwner(cmd.Context(), listOwner)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FORM\tNOTIFY\tREDIRECT\tCREATED")
			for _, f := range forms {
				redirect := "-"
				if f.HasRedirect() {
					redirect = *f.RedirectURL
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.FormID, f.NotifyEmail, redirect, f.CreatedAt.Format(time.RFC3339))
			}
			return w.Flush()
		},
	}
	list.Flags().StringVar(&listOwner, "owner", "", "owner user id")
	_ = list.MarkFlagRequired("owner")

	cmd.AddCommand(create, list)
	return cmd
}

func submissionsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "submissions", Short: "Inspect submissions"}

	var owner, formID string
	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List recent submissions for an owner",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDB()
			if err != nil {
				return err
			}
			subs, total, err := services.NewSubmissionService(db).List(cmd.Context(), owner, services.SubmissionFilter{
				FormID: formID,
				Limit:  limit,
			})
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tFORM\tNAME\tEMAIL\tCREATED")
			for _, s := range subs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.FormID, s.Name, s.Email, s.CreatedAt.Format(time.RFC3339))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d\n", len(subs), total)
			return nil
		},
	}
	list.Flags().StringVar(&owner, "owner", "", "owner user id")
	list.Flags().StringVar(&formID, "form", "", "restrict to one form id")
	list.Flags().IntVar(&limit, "limit", 50, "maximum rows")
	_ = list.MarkFlagRequired("owner")

	cmd.AddCommand(list)
	return cmd
}

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "account", Short: "Account maintenance"}

	var userID string
	var yes bool
	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete a user with all forms and submissions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete %s without --yes", userID)
			}
			db, settings, err := openDB()
			if err != nil {
				return err
			}
			logger := config.InitLogging(settings)
			defer func() { _ = logger.Sync() }()

			var identity services.IdentityAdmin = services.NoopIdentityAdmin{}
			if settings.AuthAdminURL != "" {
				identity = services.NewHTTPIdentityAdmin(settings.AuthAdminURL, settings.AuthServiceKey)
			} else {
				logger.Warn("AUTH_ADMIN_URL not set, identity user is kept", zap.String("user_id", userID))
			}
			if err := services.NewAccountService(db, identity, logger).DeleteAccount(cmd.Context(), userID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted account %s\n", userID)
			return nil
		},
	}
	del.Flags().StringVar(&userID, "user", "", "user id to delete")
	del.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	_ = del.MarkFlagRequired("user")

	cmd.AddCommand(del)
	return cmd
}
