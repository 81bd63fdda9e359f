package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"trackr/internal/api"
	"trackr/internal/core"
	"trackr/internal/dashboard"
	"trackr/internal/services"
)

// userFacing prefers the service-layer user message over the raw error chain.
func userFacing(err error) error {
	var messaged interface{ UserMessage() string }
	if errors.As(err, &messaged) {
		return errors.New(messaged.UserMessage())
	}
	return err
}

func parseKind(s string) (core.Kind, error) {
	kind := core.Kind(strings.ToLower(strings.TrimSpace(s)))
	if err := kind.Validate(); err != nil {
		return "", fmt.Errorf("invalid kind %q: want expense or income", s)
	}
	return kind, nil
}

func newLoginCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and persist the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := newApp()
			defer a.close()

			sess, err := a.sessions.Login(cmd.Context(), username, password)
			if err != nil {
				if detail := api.Detail(err); detail != "" {
					return errors.New(detail)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome back, %s\n", sess.User.DisplayName())
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the persisted session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := newApp()
			defer a.close()

			if err := a.sessions.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newSignupCmd() *cobra.Command {
	var req api.SignupRequest
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := newApp()
			defer a.close()

			if err := a.sessions.Signup(cmd.Context(), req); err != nil {
				if detail := api.Detail(err); detail != "" {
					return errors.New(detail)
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Account created. Run 'trackr login' to sign in.")
			return nil
		},
	}
	cmd.Flags().StringVarP(&req.Username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "account password")
	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "email address")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.Nickname, "nickname", "", "display nickname")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newDashboardCmd() *cobra.Command {
	var (
		timeframe string
		limit     int
	)
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show totals for a timeframe and the recent activity feed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := newApp()
			defer a.close()

			tf := core.Timeframe(strings.ToLower(timeframe))
			if !tf.Valid() {
				return fmt.Errorf("invalid timeframe %q: want one of today, week, month, year, total", timeframe)
			}

			sess, err := a.resumeSession(cmd.Context())
			if err != nil {
				return err
			}

			snap := dashboard.Reduce(dashboard.Snapshot{}, dashboard.RefreshStarted{})
			res, err := a.aggregator.Refresh(cmd.Context(), sess)
			if err != nil {
				msg := userFacing(err).Error()
				last, ok := a.aggregator.LastGood(cmd.Context())
				if !ok {
					return errors.New(msg)
				}
				snap = dashboard.Reduce(snap, dashboard.RefreshSucceeded{Result: last})
				snap = dashboard.Reduce(snap, dashboard.RefreshFailed{Message: msg})
			} else {
				snap = dashboard.Reduce(snap, dashboard.RefreshSucceeded{Result: res})
			}

			printDashboard(cmd.OutOrStdout(), sess, snap, tf, limit)
			return nil
		},
	}
	cmd.Flags().StringVarP(&timeframe, "timeframe", "t", string(core.Total), "today, week, month, year or total")
	cmd.Flags().IntVarP(&limit, "limit", "n", 15, "feed entries to show (0 for all)")
	return cmd
}

func newAddCmd() *cobra.Command {
	var (
		kindStr     string
		amount      float64
		description string
		category    string
		date        string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new expense or income",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := newApp()
			defer a.close()

			kind, err := parseKind(kindStr)
			if err != nil {
				return err
			}
			sess, err := a.resumeSession(cmd.Context())
			if err != nil {
				return err
			}
			if date == "" {
				date = time.Now().Format("2006-01-02")
			}

			form := services.Form{
				Kind:          kind,
				Amount:        core.Amount(amount),
				Description:   description,
				Date:          date,
				CategoryInput: category,
			}
			saved, err := a.coordinator(sess).Submit(cmd.Context(), sess, form)
			if err != nil {
				return userFacing(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s %s (id %s)\n", saved.Kind, formatAmount(saved.Amount), saved.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&kindStr, "kind", "k", string(core.Expense), "expense or income")
	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "positive amount")
	cmd.Flags().StringVarP(&description, "description", "d", "", "merchant or purpose")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category name (created if new)")
	cmd.Flags().StringVar(&date, "date", "", "calendar day YYYY-MM-DD (default today)")
	cmd.MarkFlagRequired("amount")
	cmd.MarkFlagRequired("description")
	cmd.MarkFlagRequired("category")
	return cmd
}

func newEditCmd() *cobra.Command {
	var (
		id          string
		kindStr     string
		amount      float64
		description string
		category    string
		date        string
	)
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Update an existing record",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := newApp()
			defer a.close()

			kind, err := parseKind(kindStr)
			if err != nil {
				return err
			}
			sess, err := a.resumeSession(cmd.Context())
			if err != nil {
				return err
			}

			record, err := findTransaction(cmd.Context(), a, sess.Token, kind, core.ID(id))
			if err != nil {
				return err
			}

			form := services.Form{
				ID:            record.ID,
				Kind:          kind,
				Amount:        record.Amount,
				Description:   record.Description,
				Date:          record.Date.Format("2006-01-02"),
				CategoryID:    record.CategoryID,
				CategoryInput: record.CategoryName,
			}
			if cmd.Flags().Changed("amount") {
				form.Amount = core.Amount(amount)
			}
			if cmd.Flags().Changed("description") {
				form.Description = description
			}
			if cmd.Flags().Changed("category") {
				form.CategoryInput = category
			}
			if cmd.Flags().Changed("date") {
				form.Date = date
			}

			saved, err := a.coordinator(sess).Submit(cmd.Context(), sess, form)
			if err != nil {
				return userFacing(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s (id %s)\n", saved.Kind, formatAmount(saved.Amount), saved.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "record identifier")
	cmd.Flags().StringVarP(&kindStr, "kind", "k", "", "expense or income")
	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "new amount")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category name")
	cmd.Flags().StringVar(&date, "date", "", "new date (sent verbatim)")
	cmd.MarkFlagRequired("id")
	cmd.MarkFlagRequired("kind")
	return cmd
}

func newRemoveCmd() *cobra.Command {
	var (
		id      string
		kindStr string
		yes     bool
	)
	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Delete a record",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := newApp()
			defer a.close()

			kind, err := parseKind(kindStr)
			if err != nil {
				return err
			}
			sess, err := a.resumeSession(cmd.Context())
			if err != nil {
				return err
			}
			if !yes && !confirm(cmd, "Are you sure you want to delete this record?") {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
				return nil
			}

			if err := a.coordinator(sess).Delete(cmd.Context(), sess, core.ID(id), kind); err != nil {
				return userFacing(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", kind, id)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "record identifier")
	cmd.Flags().StringVarP(&kindStr, "kind", "k", "", "expense or income")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	cmd.MarkFlagRequired("id")
	cmd.MarkFlagRequired("kind")
	return cmd
}

func newCategoriesCmd() *cobra.Command {
	var kindStr string
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List category suggestions for a kind",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := newApp()
			defer a.close()

			kind, err := parseKind(kindStr)
			if err != nil {
				return err
			}
			sess, err := a.resumeSession(cmd.Context())
			if err != nil {
				return err
			}
			names, err := a.categories.Suggestions(cmd.Context(), sess, kind)
			if err != nil {
				return userFacing(err)
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&kindStr, "kind", "k", string(core.Expense), "expense or income")
	return cmd
}

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Profile settings",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set-picture <file>",
		Short: "Upload a new profile picture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			defer a.close()

			sess, err := a.resumeSession(cmd.Context())
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			picURL, err := a.sessions.UpdateProfilePicture(cmd.Context(), sess, filepath.Base(args[0]), f)
			if err != nil {
				if detail := api.Detail(err); detail != "" {
					return errors.New(detail)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile picture updated: %s\n", picURL)
			return nil
		},
	})
	return cmd
}

// findTransaction locates one record in the kind's collection.
func findTransaction(ctx context.Context, a *app, token string, kind core.Kind, id core.ID) (core.Transaction, error) {
	records, err := a.client.ListTransactions(ctx, token, kind)
	if err != nil {
		return core.Transaction{}, userFacing(err)
	}
	for _, r := range records {
		if r.ID == id {
			return r, nil
		}
	}
	return core.Transaction{}, fmt.Errorf("no %s record with id %s", kind, id)
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
