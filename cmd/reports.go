package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/scamwatch/scamwatch-cli/internal/directory"
	"github.com/scamwatch/scamwatch-cli/internal/triage"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Triage public scam reports",
	Long:  "Commands for listing, inspecting, and dispositioning scam reports, including conversion into flagged numbers and business reviews.",
}

// -- reports list --

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scam reports",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		status, _ := cmd.Flags().GetString("status")
		pageNum, _ := cmd.Flags().GetInt("page")

		filter := directory.ReportFilter{
			Status: directory.ReportStatus(status),
			Page:   pageNum,
		}
		if filter.Status != "" && !filter.Status.Valid() {
			return eris.Errorf("unknown report status: %s", status)
		}

		page, err := st.ListReports(ctx, filter)
		if err != nil {
			return eris.Wrap(err, "reports list")
		}

		if len(page.Items) == 0 {
			fmt.Fprintln(os.Stderr, "No reports found.")
			return nil
		}

		formatReportsList(os.Stdout, page)
		return nil
	},
}

// -- reports show --

var reportsShowCmd = &cobra.Command{
	Use:   "show <report-id>",
	Short: "Show full details of a report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return eris.Errorf("invalid report id: %s", args[0])
		}

		report, err := st.GetReport(ctx, id)
		if err != nil {
			return eris.Wrap(err, "reports show")
		}
		if report == nil {
			return eris.Errorf("report %d not found", id)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

// -- reports set-status --

var reportsSetStatusCmd = &cobra.Command{
	Use:   "set-status <report-id> <status>",
	Short: "Move a report to a new triage status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return eris.Errorf("invalid report id: %s", args[0])
		}
		target := directory.ReportStatus(args[1])
		if !target.Valid() {
			return eris.Errorf("unknown report status: %s", args[1])
		}

		report, err := st.GetReport(ctx, id)
		if err != nil {
			return eris.Wrap(err, "reports set-status")
		}
		if report == nil {
			return eris.Errorf("report %d not found", id)
		}

		if err := directory.CheckReportTransition(report.Status, target); err != nil {
			return err
		}
		if err := st.UpdateReportStatus(ctx, id, target); err != nil {
			return eris.Wrap(err, "reports set-status")
		}

		fmt.Printf("Report %d: %s -> %s\n", id, report.Status, target)
		return nil
	},
}

// -- reports bulk-status --

var reportsBulkStatusCmd = &cobra.Command{
	Use:   "bulk-status <status> <report-id>...",
	Short: "Move several reports to a status in one write",
	Long:  "Applies the status to every listed report atomically. If any report cannot make the move, or the write fails, nothing changes.",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		target := directory.ReportStatus(args[0])
		if !target.Valid() {
			return eris.Errorf("unknown report status: %s", args[0])
		}

		ids := make([]int64, 0, len(args)-1)
		reports := make([]directory.ScamReport, 0, len(args)-1)
		for _, arg := range args[1:] {
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				return eris.Errorf("invalid report id: %s", arg)
			}
			report, err := st.GetReport(ctx, id)
			if err != nil {
				return eris.Wrap(err, "reports bulk-status")
			}
			if report == nil {
				return eris.Errorf("report %d not found", id)
			}
			ids = append(ids, id)
			reports = append(reports, *report)
		}

		view := triage.NewReportView(reports)
		for _, id := range ids {
			view.Select(id)
		}

		bulk := triage.NewBulkCoordinator(st)
		if err := bulk.Apply(ctx, view, ids, target); err != nil {
			if view.LastError != "" {
				fmt.Fprintln(os.Stderr, view.LastError)
			}
			return err
		}

		fmt.Printf("Updated %d reports to %s.\n", len(ids), target)
		return nil
	},
}

// -- reports convert-flagged --

var reportsConvertFlaggedCmd = &cobra.Command{
	Use:   "convert-flagged <report-id>",
	Short: "Convert a report into a flagged number entry",
	Long:  "Upserts a flagged-number entry keyed on the report's phone and resolves the report. Safe to re-run.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return eris.Errorf("invalid report id: %s", args[0])
		}

		report, err := st.GetReport(ctx, id)
		if err != nil {
			return eris.Wrap(err, "reports convert-flagged")
		}
		if report == nil {
			return eris.Errorf("report %d not found", id)
		}

		converter := triage.NewConverter(st)
		if err := converter.ConvertToFlaggedNumber(ctx, report); err != nil {
			return err
		}

		fmt.Printf("Report %d converted; number %s is now flagged.\n", id, report.Phone)
		return nil
	},
}

// -- reports convert-review --

var reportsConvertReviewCmd = &cobra.Command{
	Use:   "convert-review <report-id> <business-id>",
	Short: "Convert a report into a review on a business",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return eris.Errorf("invalid report id: %s", args[0])
		}
		businessID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return eris.Errorf("invalid business id: %s", args[1])
		}

		report, err := st.GetReport(ctx, id)
		if err != nil {
			return eris.Wrap(err, "reports convert-review")
		}
		if report == nil {
			return eris.Errorf("report %d not found", id)
		}

		converter := triage.NewConverter(st)
		reviewID, err := converter.ConvertToReview(ctx, report, businessID)
		if err != nil {
			return err
		}

		fmt.Printf("Report %d converted into review %d on business %d.\n", id, reviewID, businessID)
		return nil
	},
}

func formatReportsList(w io.Writer, page directory.Page[directory.ScamReport]) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tREFERENCE\tTYPE\tPHONE\tSTATUS\tCREATED")
	for _, r := range page.Items {
		phone := r.Phone
		if phone == "" {
			phone = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Reference, r.ReportType, phone, r.Status.Label(),
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	tw.Flush()

	fmt.Fprintf(w, "\nPage %d", page.Number)
	if page.HasMore {
		fmt.Fprint(w, " (more available)")
	}
	fmt.Fprintln(w)
}

func init() {
	reportsListCmd.Flags().String("status", "", "filter by report status (new, reviewing, resolved, rejected)")
	reportsListCmd.Flags().Int("page", 1, "page number")

	reportsCmd.AddCommand(reportsListCmd)
	reportsCmd.AddCommand(reportsShowCmd)
	reportsCmd.AddCommand(reportsSetStatusCmd)
	reportsCmd.AddCommand(reportsBulkStatusCmd)
	reportsCmd.AddCommand(reportsConvertFlaggedCmd)
	reportsCmd.AddCommand(reportsConvertReviewCmd)
	rootCmd.AddCommand(reportsCmd)
}
