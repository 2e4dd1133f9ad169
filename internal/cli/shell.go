package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// NewShellCommand creates the shell command.
func NewShellCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive command loop over the loaded store",
		Long: `Load the store once, then answer numbered commands interactively:

  1. Find clients by product name
  2. Update a client's contact person
  3. Find the golden client
  4. Exit

The snapshot is taken at startup; only contact-person updates touch
the store afterwards.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(rootOpts, cmd)
		},
	}
	return cmd
}

func runShell(opts *RootOptions, cmd *cobra.Command) error {
	repo, err := openRepository(opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	formatter := &OutputFormatter{Format: opts.Format, Writer: out}
	in := bufio.NewScanner(cmd.InOrStdin())

	for {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Select a command:")
		fmt.Fprintln(out, "  1. Find clients by product name")
		fmt.Fprintln(out, "  2. Update a client's contact person")
		fmt.Fprintln(out, "  3. Find the golden client")
		fmt.Fprintln(out, "  4. Exit")

		choice, ok := readLine(in, out, "> ")
		if !ok {
			return nil
		}

		switch choice {
		case "1":
			name, ok := readLine(in, out, "Product name: ")
			if !ok {
				return nil
			}
			sales, found := repo.ClientsByProduct(name)
			var werr error
			switch {
			case !found:
				werr = formatter.Empty(fmt.Sprintf("product %q not found", name))
			case len(sales.Clients) == 0:
				werr = formatter.Empty(fmt.Sprintf("no orders for product %q", sales.Product.Name))
			default:
				werr = formatter.ProductSales(sales)
			}
			if werr != nil {
				return werr
			}

		case "2":
			org, ok := readLine(in, out, "Organization: ")
			if !ok {
				return nil
			}
			contact, ok := readLine(in, out, "New contact person: ")
			if !ok {
				return nil
			}
			found, err := repo.SetContactPerson(org, contact)
			var werr error
			switch {
			case !found:
				werr = formatter.Empty(fmt.Sprintf("organization %q not found", org))
			case err != nil:
				// Keep the shell running; the snapshot stays usable for
				// further queries even though the save failed.
				fmt.Fprintf(out, "Error: contact updated in memory but not saved: %v\n", err)
			default:
				werr = formatter.ContactUpdated(org, contact)
			}
			if werr != nil {
				return werr
			}

		case "3":
			year, ok := readInt(in, out, "Year: ")
			if !ok {
				return nil
			}
			month, ok := readInt(in, out, "Month: ")
			if !ok {
				return nil
			}
			gc, found := repo.GoldenClient(year, month)
			var werr error
			if !found {
				werr = formatter.Empty(fmt.Sprintf("no orders in %04d-%02d", year, month))
			} else {
				werr = formatter.Golden(gc)
			}
			if werr != nil {
				return werr
			}

		case "4":
			return nil

		default:
			fmt.Fprintf(out, "Unknown command %q, try again.\n", choice)
		}
	}
}

// readLine prompts and reads one trimmed line. ok is false on EOF.
func readLine(in *bufio.Scanner, out io.Writer, prompt string) (string, bool) {
	fmt.Fprint(out, prompt)
	if !in.Scan() {
		return "", false
	}
	return strings.TrimSpace(in.Text()), true
}

// readInt prompts until it gets an integer. ok is false on EOF.
func readInt(in *bufio.Scanner, out io.Writer, prompt string) (int, bool) {
	for {
		line, ok := readLine(in, out, prompt)
		if !ok {
			return 0, false
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintf(out, "Not a number: %q, try again.\n", line)
			continue
		}
		return v, true
	}
}
