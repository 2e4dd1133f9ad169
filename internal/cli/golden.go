package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewGoldenCommand creates the golden command.
func NewGoldenCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "golden <year> <month>",
		Short: "Find the client with the most orders in a month",
		Long: `Find the golden client: the client with the highest number of orders
dated in the given year and month. Ties go to the client that appears
first in the store.

Example:
  orderdesk golden --workbook orders.xlsx 2024 3`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid year %q", args[0]))
			}
			month, err := strconv.Atoi(args[1])
			if err != nil {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid month %q", args[1]))
			}
			return runGolden(rootOpts, year, month, cmd)
		},
	}
	return cmd
}

func runGolden(opts *RootOptions, year, month int, cmd *cobra.Command) error {
	repo, err := openRepository(opts)
	if err != nil {
		return err
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	gc, ok := repo.GoldenClient(year, month)
	if !ok {
		return out.Empty(fmt.Sprintf("no orders in %04d-%02d", year, month))
	}
	return out.Golden(gc)
}
