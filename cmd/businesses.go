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

var businessesCmd = &cobra.Command{
	Use:   "businesses",
	Short: "Manage business listings",
}

// -- businesses list --

var businessesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List business listings",
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

		query, _ := cmd.Flags().GetString("query")
		pageNum, _ := cmd.Flags().GetInt("page")

		page, err := st.ListBusinesses(ctx, directory.BusinessFilter{Query: query, Page: pageNum})
		if err != nil {
			return eris.Wrap(err, "businesses list")
		}

		if len(page.Items) == 0 {
			fmt.Fprintln(os.Stderr, "No businesses found.")
			return nil
		}

		formatBusinessesList(os.Stdout, page)
		return nil
	},
}

// -- businesses create --

var businessesCreateCmd = &cobra.Command{
	Use:   "create <name> <phone>",
	Short: "Create a verified business listing",
	Long:  "Creates an admin-owned listing. If a listing already exists for the same phone number, or for the same name and location, that listing is reused instead.",
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

		location, _ := cmd.Flags().GetString("location")
		category, _ := cmd.Flags().GetString("category")
		branches, _ := cmd.Flags().GetInt("branches")

		b := &directory.Business{
			Name:           args[0],
			Phone:          args[1],
			Location:       location,
			Category:       category,
			BranchesCount:  branches,
			Verified:       true,
			CreatedByAdmin: true,
		}

		resolver := directory.NewResolver(st, cfg.Directory.PhoneRegion)
		resolved, created, err := resolver.FindOrCreate(ctx, b)
		if err != nil {
			return eris.Wrap(err, "businesses create")
		}

		if created {
			fmt.Printf("Created business %d (%s).\n", resolved.ID, resolved.Name)
		} else {
			fmt.Printf("Business already exists: %d (%s).\n", resolved.ID, resolved.Name)
		}
		return nil
	},
}

// -- businesses flag --

var businessesFlagCmd = &cobra.Command{
	Use:   "flag <business-id> <flag>",
	Short: "Set or clear the risk flag on a business",
	Long:  `Sets the risk assessment flag. Pass "" to clear.`,
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
			return eris.Errorf("invalid business id: %s", args[0])
		}
		target := directory.BusinessFlag(args[1])

		b, err := st.GetBusiness(ctx, id)
		if err != nil {
			return eris.Wrap(err, "businesses flag")
		}
		if b == nil {
			return eris.Errorf("business %d not found", id)
		}

		if err := directory.CheckBusinessFlagTransition(b.Flag, target); err != nil {
			return err
		}
		if err := st.UpdateBusinessFlag(ctx, id, target); err != nil {
			return eris.Wrap(err, "businesses flag")
		}

		fmt.Printf("Business %d flag: %s\n", id, target.Label())
		return nil
	},
}

func formatBusinessesList(w io.Writer, page directory.Page[directory.Business]) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPHONE\tLOCATION\tFLAG\tVERIFIED")
	for _, b := range page.Items {
		location := b.Location
		if location == "" {
			location = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%t\n",
			b.ID, b.Name, b.Phone, location, b.Flag.Label(), b.Verified,
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
	businessesListCmd.Flags().String("query", "", "filter by name")
	businessesListCmd.Flags().Int("page", 1, "page number")

	businessesCreateCmd.Flags().String("location", "", "business location")
	businessesCreateCmd.Flags().String("category", "", "business category")
	businessesCreateCmd.Flags().Int("branches", 0, "number of branches")

	businessesCmd.AddCommand(businessesListCmd)
	businessesCmd.AddCommand(businessesCreateCmd)
	businessesCmd.AddCommand(businessesFlagCmd)
	rootCmd.AddCommand(businessesCmd)
}
