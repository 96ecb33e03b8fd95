package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/barberbook/admin-console/internal/console"
	"github.com/barberbook/admin-console/internal/core/domain"
)

// listFlags are the pagination/filter flags shared by every list command.
type listFlags struct {
	page   int
	limit  int
	status string
	search string
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.page, "page", 1, "Page number (1-based)")
	cmd.Flags().IntVar(&f.limit, "limit", 10, "Rows per page")
	cmd.Flags().StringVar(&f.status, "status", "", "Filter by status")
	cmd.Flags().StringVar(&f.search, "search", "", "Substring search")
}

func (f *listFlags) filters() map[string]string {
	filters := make(map[string]string)
	if f.status != "" {
		filters["status"] = f.status
	}
	if f.search != "" {
		filters["search"] = f.search
	}
	return filters
}

// runList drives one controller through a single load and prints the result.
func runList[T any](ctx context.Context, a *app, ctrl *console.ListController[T], f *listFlags, print func(w *tabwriter.Writer, items []T)) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}
	if err := ctrl.Load(ctx, f.page, f.limit, f.filters()); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	print(w, ctrl.Items())
	w.Flush()
	fmt.Printf("page %d/%d — %d total\n", ctrl.Page(), ctrl.TotalPages(), ctrl.Total())
	return nil
}

func newResourceCommands(flags *rootFlags) []*cobra.Command {
	return []*cobra.Command{
		newBookingsCommand(flags),
		newCustomersCommand(flags),
		newPaymentsCommand(flags),
		newReviewsCommand(flags),
		newServicesCommand(flags),
		newStylistsCommand(flags),
	}
}

func newBookingsCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Booking operations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	lf := &listFlags{}
	var stylist string
	list := &cobra.Command{
		Use:   "list",
		Short: "List bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, flags)
			if err != nil {
				return err
			}
			defer a.close()

			f := lf.filters()
			if stylist != "" {
				f["stylist_id"] = stylist
			}
			if err := a.requireAuth(ctx); err != nil {
				return err
			}
			ctrl := a.screens.Bookings
			if err := ctrl.Load(ctx, lf.page, lf.limit, f); err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tWHEN\tCUSTOMER\tSTYLIST\tSERVICE\tSTATUS")
			for _, b := range ctrl.Items() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					b.ID, b.StartsAt.Format(time.RFC3339), b.CustomerName, b.StylistName, b.ServiceName, b.Status)
			}
			w.Flush()
			fmt.Printf("page %d/%d — %d total\n", ctrl.Page(), ctrl.TotalPages(), ctrl.Total())
			return nil
		},
	}
	lf.register(list)
	list.Flags().StringVar(&stylist, "stylist", "", "Filter by stylist id")

	var status string
	setStatus := &cobra.Command{
		Use:   "set-status <booking-id>",
		Short: "Update a booking's status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, flags)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.requireAuth(ctx); err != nil {
				return err
			}
			if !domain.CanManageBookings(a.session.User().Role) {
				return fmt.Errorf("role %s may not manage bookings", a.session.User().Role)
			}

			// PUT replaces the record, so fetch the current booking and
			// change only its status.
			booking, err := a.screens.BookingAPI.Get(ctx, args[0])
			if err != nil {
				return err
			}
			next := domain.BookingStatus(strings.ToUpper(status))
			if !booking.Status.CanTransitionTo(next) {
				return fmt.Errorf("booking %s cannot move from %s to %s", booking.ID, booking.Status, next)
			}
			booking.Status = next

			updated, err := a.screens.BookingAPI.Update(ctx, args[0], booking)
			if err != nil {
				return err
			}
			// Patch the in-memory list; the next list fetch reconciles totals.
			a.screens.Bookings.ApplyUpdate(updated)
			fmt.Printf("booking %s → %s\n", updated.ID, updated.Status)
			return nil
		},
	}
	setStatus.Flags().StringVar(&status, "status", "", "New status (e.g. CONFIRMED, CANCELLED)")
	_ = setStatus.MarkFlagRequired("status")

	del := &cobra.Command{
		Use:   "delete <booking-id>",
		Short: "Delete a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, flags)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.requireAuth(ctx); err != nil {
				return err
			}
			if err := a.screens.BookingAPI.Delete(ctx, args[0]); err != nil {
				return err
			}
			a.screens.Bookings.ApplyDelete(args[0])
			fmt.Printf("booking %s deleted\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, setStatus, del)
	return cmd
}

func newCustomersCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "Customer operations",
		RunE:  func(cmd *cobra.Command, args []string) error { return cmd.Help() },
	}

	lf := &listFlags{}
	list := &cobra.Command{
		Use:   "list",
		Short: "List customers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, flags)
			if err != nil {
				return err
			}
			defer a.close()
			return runList(ctx, a, a.screens.Customers, lf, func(w *tabwriter.Writer, items []domain.Customer) {
				fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE\tVISITS\tACTIVE")
				for _, c := range items {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%t\n", c.ID, c.FullName, c.Email, c.Phone, c.Visits, c.IsActive)
				}
			})
		},
	}
	lf.register(list)
	cmd.AddCommand(list)
	return cmd
}

func newPaymentsCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Payment operations",
		RunE:  func(cmd *cobra.Command, args []string) error { return cmd.Help() },
	}

	lf := &listFlags{}
	list := &cobra.Command{
		Use:   "list",
		Short: "List payments",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, flags)
			if err != nil {
				return err
			}
			defer a.close()
			return runList(ctx, a, a.screens.Payments, lf, func(w *tabwriter.Writer, items []domain.Payment) {
				fmt.Fprintln(w, "ID\tBOOKING\tAMOUNT\tMETHOD\tSTATUS")
				for _, p := range items {
					fmt.Fprintf(w, "%s\t%s\t%.2f %s\t%s\t%s\n", p.ID, p.BookingID, p.Amount, p.Currency, p.Method, p.Status)
				}
			})
		},
	}
	lf.register(list)
	cmd.AddCommand(list)
	return cmd
}

func newReviewsCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Review operations",
		RunE:  func(cmd *cobra.Command, args []string) error { return cmd.Help() },
	}

	lf := &listFlags{}
	list := &cobra.Command{
		Use:   "list",
		Short: "List reviews",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, flags)
			if err != nil {
				return err
			}
			defer a.close()
			return runList(ctx, a, a.screens.Reviews, lf, func(w *tabwriter.Writer, items []domain.Review) {
				fmt.Fprintln(w, "ID\tBOOKING\tRATING\tSTATUS\tCOMMENT")
				for _, r := range items {
					fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", r.ID, r.BookingID, r.Rating, r.Status, r.Comment)
				}
			})
		},
	}
	lf.register(list)
	cmd.AddCommand(list)
	return cmd
}

func newServicesCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "services",
		Short: "Service catalogue operations",
		RunE:  func(cmd *cobra.Command, args []string) error { return cmd.Help() },
	}

	lf := &listFlags{}
	list := &cobra.Command{
		Use:   "list",
		Short: "List services",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, flags)
			if err != nil {
				return err
			}
			defer a.close()
			return runList(ctx, a, a.screens.Services, lf, func(w *tabwriter.Writer, items []domain.Service) {
				fmt.Fprintln(w, "ID\tNAME\tDURATION\tPRICE\tACTIVE")
				for _, s := range items {
					fmt.Fprintf(w, "%s\t%s\t%dm\t%.2f %s\t%t\n", s.ID, s.Name, s.DurationMin, s.Price, s.Currency, s.IsActive)
				}
			})
		},
	}
	lf.register(list)
	cmd.AddCommand(list)
	return cmd
}

func newStylistsCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stylists",
		Short: "Stylist operations",
		RunE:  func(cmd *cobra.Command, args []string) error { return cmd.Help() },
	}

	lf := &listFlags{}
	list := &cobra.Command{
		Use:   "list",
		Short: "List stylists",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, flags)
			if err != nil {
				return err
			}
			defer a.close()
			return runList(ctx, a, a.screens.Stylists, lf, func(w *tabwriter.Writer, items []domain.Stylist) {
				fmt.Fprintln(w, "ID\tNAME\tEMAIL\tSPECIALTIES\tACTIVE")
				for _, s := range items {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", s.ID, s.FullName, s.Email, strings.Join(s.Specialties, ","), s.IsActive)
				}
			})
		},
	}
	lf.register(list)
	cmd.AddCommand(list)
	return cmd
}
