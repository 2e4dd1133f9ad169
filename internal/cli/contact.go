package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSetContactCommand creates the set-contact command.
func NewSetContactCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-contact <organization> <new-contact>",
		Short: "Update a client's contact person",
		Long: `Update the contact person of the client whose organization name
matches (case-insensitive, exact) and write the change back to the
store immediately.

Example:
  orderdesk set-contact --workbook orders.xlsx "Acme" "J. Doe"`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetContact(rootOpts, args[0], args[1], cmd)
		},
	}
	return cmd
}

func runSetContact(opts *RootOptions, organization, contact string, cmd *cobra.Command) error {
	repo, err := openRepository(opts)
	if err != nil {
		return err
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	found, err := repo.SetContactPerson(organization, contact)
	if !found {
		return out.Empty(fmt.Sprintf("organization %q not found", organization))
	}
	if err != nil {
		// The in-memory snapshot already carries the new contact; only
		// the store write failed.
		return WrapExitError(ExitFailure, "contact updated in memory but not saved", err)
	}
	return out.ContactUpdated(organization, contact)
}
