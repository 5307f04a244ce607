package cli

// -----------------------------------------------------------------------------
// sale.go – scripted sale runner
// -----------------------------------------------------------------------------
// Commands exposed after `RegisterSale(rootCmd)`:
//   ~sale ~run  --line SKU:QTY:MINOR [--line ...] [--child PARENT:SKU:QTY:MINOR]
//               [--modify LINE:QTY:MINOR] [--void LINE:REASON] [--tender MINOR]
//               [--list] [--store NAME] [--currency CODE]
//
// Drives one whole transaction through the kernel in a single process:
// begin, lines, modifications, voids, optional tender, totals, close.
// Handles live only as long as the process, so the CLI scripts a full
// sale per invocation instead of exposing begin/close one-shots that
// could never find their handle again. Amounts are integers of minor
// units throughout; the CLI never formats currency.
// -----------------------------------------------------------------------------

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"poskernel/core"
)

func saleHandleRun(cmd *cobra.Command, _ []string) error {
	store, _ := cmd.Flags().GetString("store")
	currency, _ := cmd.Flags().GetString("currency")
	if store == "" {
		store = posCfg.Store.Name
	}
	if currency == "" {
		currency = posCfg.Store.Currency
	}

	reg := core.Default()
	h, err := reg.Begin(store, currency)
	if err != nil {
		return err
	}
	defer reg.Close(h)
	tx, err := reg.Resolve(h)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "transaction %s @ %s (%s)\n", tx.ID(), store, tx.Currency())

	lines, _ := cmd.Flags().GetStringArray("line")
	for _, spec := range lines {
		sku, qty, minor, err := posSplitLineSpec(spec)
		if err != nil {
			return err
		}
		li, err := tx.AddLineItem(sku, qty, core.Money{MinorUnits: minor, Currency: tx.Currency()})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %4d  %-16s x%-3d @%d = %d\n", li.LineNumber, li.ProductID, li.Quantity, li.UnitPrice.MinorUnits, li.ExtendedPrice.MinorUnits)
	}

	children, _ := cmd.Flags().GetStringArray("child")
	for _, spec := range children {
		parts := strings.SplitN(spec, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("child %q must be PARENT:SKU:QTY:MINOR", spec)
		}
		parent, err := posParseQty(parts[0])
		if err != nil {
			return err
		}
		sku, qty, minor, err := posSplitLineSpec(parts[1])
		if err != nil {
			return err
		}
		li, err := tx.AddChildLineItem(sku, qty, core.Money{MinorUnits: minor, Currency: tx.Currency()}, parent)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %4d    └ %-14s x%-3d (parent %d)\n", li.LineNumber, li.ProductID, li.Quantity, li.ParentLineNumber)
	}

	mods, _ := cmd.Flags().GetStringArray("modify")
	for _, spec := range mods {
		parts := strings.Split(spec, ":")
		if len(parts) != 3 {
			return fmt.Errorf("modify %q must be LINE:QTY:MINOR", spec)
		}
		number, err := posParseQty(parts[0])
		if err != nil {
			return err
		}
		qty, err := posParseQty(parts[1])
		if err != nil {
			return err
		}
		minor, err := posParseMinor(parts[2])
		if err != nil {
			return err
		}
		target, err := tx.Line(number)
		if err != nil {
			return err
		}
		unit := core.Money{MinorUnits: minor, Currency: tx.Currency()}
		li, err := tx.ModifyLineItemByID(target.LineItemID, &qty, &unit)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %4d  modified → x%d @%d = %d\n", li.LineNumber, li.Quantity, li.UnitPrice.MinorUnits, li.ExtendedPrice.MinorUnits)
	}

	voids, _ := cmd.Flags().GetStringArray("void")
	for _, spec := range voids {
		parts := strings.SplitN(spec, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("void %q must be LINE:REASON", spec)
		}
		number, err := posParseQty(parts[0])
		if err != nil {
			return err
		}
		if err := tx.VoidLineItem(number, parts[1]); err != nil {
			return err
		}
		fmt.Fprintf(out, "  %4d  voided (%s)\n", number, parts[1])
	}

	if cmd.Flags().Changed("tender") {
		minor, _ := cmd.Flags().GetInt64("tender")
		state, err := tx.AddCashTender(core.Money{MinorUnits: minor, Currency: tx.Currency()})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "tendered %d cash → %s\n", minor, state)
	}

	tot, err := tx.GetTotals()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "total=%d tendered=%d change=%d state=%s (minor units, %s, scale %d)\n",
		tot.Total.MinorUnits, tot.Tendered.MinorUnits, tot.ChangeDue.MinorUnits,
		tot.State, tx.Currency(), tx.CurrencyDecimalPlaces())

	if list, _ := cmd.Flags().GetBool("list"); list {
		for _, li := range tx.Lines() {
			mark := " "
			if li.Voided {
				mark = "x"
			}
			fmt.Fprintf(out, "  [%s] %4d %-24s %-16s x%-3d = %d parent=%d %s\n",
				mark, li.LineNumber, li.LineItemID, li.ProductID, li.Quantity,
				li.ExtendedPrice.MinorUnits, li.ParentLineNumber, li.VoidReason)
		}
	}
	return nil
}

var saleCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "sale",
		Short:             "Run scripted sales against the kernel",
		PersistentPreRunE: posInitMiddleware,
	}
	run := &cobra.Command{
		Use:   "run",
		Short: "begin → lines → modify/void → tender → totals → close",
		RunE:  saleHandleRun,
	}
	run.Flags().String("store", "", "store name (default from config)")
	run.Flags().String("currency", "", "3-letter currency code (default from config)")
	run.Flags().StringArray("line", nil, "root line as SKU:QTY:MINOR (repeatable)")
	run.Flags().StringArray("child", nil, "child line as PARENT:SKU:QTY:MINOR (repeatable)")
	run.Flags().StringArray("modify", nil, "modify a line as LINE:QTY:MINOR (repeatable)")
	run.Flags().StringArray("void", nil, "void a line as LINE:REASON (repeatable, cascades)")
	run.Flags().Int64("tender", 0, "cash tender in minor units")
	run.Flags().Bool("list", false, "enumerate all rows, voided included")
	cmd.AddCommand(run)
	return cmd
}()

// RegisterSale attaches the sale command tree to the CLI root.
func RegisterSale(root *cobra.Command) { root.AddCommand(saleCmd) }
