package cli

// -----------------------------------------------------------------------------
// config.go – host configuration inspection
// -----------------------------------------------------------------------------
// Commands exposed after `RegisterConfig(rootCmd)`:
//   ~config ~show
// -----------------------------------------------------------------------------

import (
	"fmt"

	"github.com/spf13/cobra"
)

func configHandleShow(cmd *cobra.Command, _ []string) error {
	out, err := posCfg.YAML()
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}

var configCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "config",
		Short:             "Host configuration",
		PersistentPreRunE: posInitMiddleware,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "print the effective configuration as YAML",
		RunE:  configHandleShow,
	})
	return cmd
}()

// RegisterConfig attaches the config command tree to the CLI root.
func RegisterConfig(root *cobra.Command) { root.AddCommand(configCmd) }
