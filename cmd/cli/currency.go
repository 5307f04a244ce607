package cli

// -----------------------------------------------------------------------------
// currency.go – handle-free currency utilities
// -----------------------------------------------------------------------------
// Commands exposed after `RegisterCurrency(rootCmd)`:
//   ~currency ~check  <code>
//   ~currency ~places <code>
// -----------------------------------------------------------------------------

import (
	"fmt"

	"github.com/spf13/cobra"

	"poskernel/core"
)

func currencyHandleCheck(cmd *cobra.Command, args []string) error {
	code := args[0]
	if !core.IsValidCurrencyCode(code) {
		return fmt.Errorf("%q is not a 3-letter currency code", code)
	}
	norm, err := core.NormalizeCurrency(code)
	if err != nil {
		return err
	}
	std := "non-standard"
	if core.IsStandardCurrency(norm) {
		std = "standard"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: valid, %s\n", norm, std)
	return nil
}

func currencyHandlePlaces(cmd *cobra.Command, args []string) error {
	code, err := core.NormalizeCurrency(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s uses %d decimal place(s)\n", code, core.DecimalPlacesFor(code))
	return nil
}

var currencyCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "currency",
		Short: "Currency code utilities",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check <code>",
		Short: "validate a currency code",
		Args:  cobra.ExactArgs(1),
		RunE:  currencyHandleCheck,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "places <code>",
		Short: "show the recommended minor-unit scale",
		Args:  cobra.ExactArgs(1),
		RunE:  currencyHandlePlaces,
	})
	return cmd
}()

// RegisterCurrency attaches the currency command tree to the CLI root.
func RegisterCurrency(root *cobra.Command) { root.AddCommand(currencyCmd) }
