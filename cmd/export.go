package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"golang.org/x/sync/errgroup"

	"github.com/scamwatch/scamwatch-cli/internal/directory"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the directory to an XLSX workbook",
	Long:  "Writes one sheet per collection: reports, flagged numbers, businesses. Submitter contact details are not exported.",
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

		var (
			reports    []directory.ScamReport
			flagged    []directory.FlaggedNumber
			businesses []directory.Business
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			reports, err = collectPages(gctx, func(ctx context.Context, page int) (directory.Page[directory.ScamReport], error) {
				return st.ListReports(ctx, directory.ReportFilter{Page: page})
			})
			return eris.Wrap(err, "export reports")
		})
		g.Go(func() error {
			var err error
			flagged, err = collectPages(gctx, st.ListFlaggedNumbers)
			return eris.Wrap(err, "export flagged numbers")
		})
		g.Go(func() error {
			var err error
			businesses, err = collectPages(gctx, func(ctx context.Context, page int) (directory.Page[directory.Business], error) {
				return st.ListBusinesses(ctx, directory.BusinessFilter{Page: page})
			})
			return eris.Wrap(err, "export businesses")
		})
		if err := g.Wait(); err != nil {
			return err
		}

		f := xlsx.NewFile()
		if err := writeReportsSheet(f, reports); err != nil {
			return err
		}
		if err := writeFlaggedSheet(f, flagged); err != nil {
			return err
		}
		if err := writeBusinessesSheet(f, businesses); err != nil {
			return err
		}

		if err := f.Save(exportOut); err != nil {
			return eris.Wrap(err, "export save")
		}

		fmt.Printf("Exported %d reports, %d flagged numbers, %d businesses to %s.\n",
			len(reports), len(flagged), len(businesses), exportOut)
		return nil
	},
}

// collectPages walks a paged listing from page 1 until the last page.
func collectPages[T any](ctx context.Context, list func(context.Context, int) (directory.Page[T], error)) ([]T, error) {
	var items []T
	for page := 1; ; page++ {
		p, err := list(ctx, page)
		if err != nil {
			return nil, err
		}
		items = append(items, p.Items...)
		if !p.HasMore {
			return items, nil
		}
	}
}

func addHeaderRow(sheet *xlsx.Sheet, headers ...string) {
	row := sheet.AddRow()
	for _, h := range headers {
		row.AddCell().SetString(h)
	}
}

func writeReportsSheet(f *xlsx.File, reports []directory.ScamReport) error {
	sheet, err := f.AddSheet("Reports")
	if err != nil {
		return eris.Wrap(err, "export add sheet")
	}
	addHeaderRow(sheet, "ID", "Reference", "Type", "Phone", "Connected Page", "Platform", "Description", "Status", "Created")
	for _, r := range reports {
		row := sheet.AddRow()
		row.AddCell().SetString(strconv.FormatInt(r.ID, 10))
		row.AddCell().SetString(r.Reference)
		row.AddCell().SetString(string(r.ReportType))
		row.AddCell().SetString(r.Phone)
		row.AddCell().SetString(r.ConnectedPage)
		row.AddCell().SetString(r.Platform)
		row.AddCell().SetString(r.Description)
		row.AddCell().SetString(r.Status.Label())
		row.AddCell().SetString(r.CreatedAt.Format(time.RFC3339))
	}
	return nil
}

func writeFlaggedSheet(f *xlsx.File, flagged []directory.FlaggedNumber) error {
	sheet, err := f.AddSheet("Flagged Numbers")
	if err != nil {
		return eris.Wrap(err, "export add sheet")
	}
	addHeaderRow(sheet, "ID", "Phone", "Name on Number", "Connected Page", "Status", "Updated")
	for _, fn := range flagged {
		row := sheet.AddRow()
		row.AddCell().SetString(strconv.FormatInt(fn.ID, 10))
		row.AddCell().SetString(fn.Phone)
		row.AddCell().SetString(fn.NameOnNumber)
		row.AddCell().SetString(fn.ConnectedPage)
		row.AddCell().SetString(fn.Status.Label())
		row.AddCell().SetString(fn.UpdatedAt.Format(time.RFC3339))
	}
	return nil
}

func writeBusinessesSheet(f *xlsx.File, businesses []directory.Business) error {
	sheet, err := f.AddSheet("Businesses")
	if err != nil {
		return eris.Wrap(err, "export add sheet")
	}
	addHeaderRow(sheet, "ID", "Name", "Phone", "Location", "Category", "Branches", "Flag", "Verified")
	for _, b := range businesses {
		row := sheet.AddRow()
		row.AddCell().SetString(strconv.FormatInt(b.ID, 10))
		row.AddCell().SetString(b.Name)
		row.AddCell().SetString(b.Phone)
		row.AddCell().SetString(b.Location)
		row.AddCell().SetString(b.Category)
		row.AddCell().SetString(strconv.Itoa(b.BranchesCount))
		row.AddCell().SetString(b.Flag.Label())
		row.AddCell().SetString(strconv.FormatBool(b.Verified))
	}
	return nil
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "scamwatch.xlsx", "output file path")
	rootCmd.AddCommand(exportCmd)
}
