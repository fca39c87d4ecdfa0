package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/scamwatch/scamwatch-cli/internal/directory"
)

var flaggedCmd = &cobra.Command{
	Use:   "flagged",
	Short: "Manage the flagged-number directory",
}

// -- flagged list --

var flaggedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List flagged numbers",
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

		pageNum, _ := cmd.Flags().GetInt("page")

		page, err := st.ListFlaggedNumbers(ctx, pageNum)
		if err != nil {
			return eris.Wrap(err, "flagged list")
		}

		if len(page.Items) == 0 {
			fmt.Fprintln(os.Stderr, "No flagged numbers found.")
			return nil
		}

		formatFlaggedList(os.Stdout, page)
		return nil
	},
}

// -- flagged lookup --

var flaggedLookupCmd = &cobra.Command{
	Use:   "lookup <phone>",
	Short: "Check whether a phone number is flagged",
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

		phone := directory.NormalizePhone(args[0], cfg.Directory.PhoneRegion)
		fn, err := st.GetFlaggedNumberByPhone(ctx, phone)
		if err != nil {
			return eris.Wrap(err, "flagged lookup")
		}

		if fn == nil {
			fmt.Printf("%s is not flagged.\n", phone)
			return nil
		}
		fmt.Printf("%s is flagged: %s\n", fn.Phone, fn.Status.Label())
		return nil
	},
}

// -- flagged set-status --

var flaggedSetStatusCmd = &cobra.Command{
	Use:   "set-status <id> <status>",
	Short: "Set the assessment status of a flagged number",
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
			return eris.Errorf("invalid flagged-number id: %s", args[0])
		}
		target := directory.FlagStatus(args[1])
		if !target.Valid() {
			return eris.Errorf("unknown flagged-number status: %s", args[1])
		}

		if err := st.UpdateFlaggedNumberStatus(ctx, id, target); err != nil {
			return eris.Wrap(err, "flagged set-status")
		}

		fmt.Printf("Flagged number %d: %s\n", id, target.Label())
		return nil
	},
}

// -- flagged remove --

var flaggedRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a flagged-number entry",
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
			return eris.Errorf("invalid flagged-number id: %s", args[0])
		}

		if err := st.DeleteFlaggedNumber(ctx, id); err != nil {
			return eris.Wrap(err, "flagged remove")
		}

		fmt.Printf("Removed flagged number %d.\n", id)
		return nil
	},
}

func formatFlaggedList(w io.Writer, page directory.Page[directory.FlaggedNumber]) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPHONE\tNAME\tSTATUS\tUPDATED")
	for _, fn := range page.Items {
		name := fn.NameOnNumber
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			fn.ID, fn.Phone, name, fn.Status.Label(),
			fn.UpdatedAt.Format("2006-01-02 15:04"),
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
	flaggedListCmd.Flags().Int("page", 1, "page number")

	flaggedCmd.AddCommand(flaggedListCmd)
	flaggedCmd.AddCommand(flaggedLookupCmd)
	flaggedCmd.AddCommand(flaggedSetStatusCmd)
	flaggedCmd.AddCommand(flaggedRemoveCmd)
	rootCmd.AddCommand(flaggedCmd)
}
