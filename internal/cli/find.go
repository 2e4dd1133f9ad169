package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewFindCommand creates the find command.
func NewFindCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <product-name>",
		Short: "List clients that ordered a product",
		Long: `List every client holding at least one order for the named product,
with each order's quantity, the product's catalog price, and the order
date. The name match is case-insensitive and exact.

Example:
  orderdesk find --workbook orders.xlsx "Widget"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runFind(opts *RootOptions, productName string, cmd *cobra.Command) error {
	repo, err := openRepository(opts)
	if err != nil {
		return err
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	sales, ok := repo.ClientsByProduct(productName)
	if !ok {
		return out.Empty(fmt.Sprintf("product %q not found", productName))
	}
	if len(sales.Clients) == 0 {
		return out.Empty(fmt.Sprintf("no orders for product %q", sales.Product.Name))
	}
	return out.ProductSales(sales)
}
