package cli

// -----------------------------------------------------------------------------
// terminal.go – terminal binding commands
// -----------------------------------------------------------------------------
// Commands exposed after `RegisterTerminal(rootCmd)`:
//   ~terminal ~init [id]
//   ~terminal ~info
//   ~terminal ~shutdown
// The group uses only the env middleware so `init` controls the
// binding explicitly; `info` reports an unbound terminal instead of
// silently binding one.
// -----------------------------------------------------------------------------

import (
	"fmt"

	"github.com/spf13/cobra"

	"poskernel/core"
	"poskernel/pkg/utils"
)

func terminalHandleInit(cmd *cobra.Command, args []string) error {
	id := posCfg.Terminal.ID
	if len(args) > 0 {
		id = args[0]
	}
	if err := core.Default().InitializeTerminal(id); err != nil {
		return utils.Wrapf(err, "initialize terminal %s", id)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "terminal %s bound\n", id)
	return nil
}

func terminalHandleInfo(cmd *cobra.Command, _ []string) error {
	id, err := core.Default().TerminalID()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "terminal %s, %d open handle(s), %s\n",
		id, core.Default().HandleCount(), core.KernelVersion)
	return nil
}

func terminalHandleShutdown(cmd *cobra.Command, _ []string) error {
	if err := core.Default().ShutdownTerminal(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "terminal shut down; all handles closed")
	return nil
}

var terminalCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "terminal",
		Short:             "Bind, inspect and release the terminal",
		PersistentPreRunE: posEnvMiddleware,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init [id]",
		Short: "bind the terminal (id from config when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  terminalHandleInit,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "show the bound terminal and open handles",
		RunE:  terminalHandleInfo,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "shutdown",
		Short: "close every handle and release the binding",
		RunE:  terminalHandleShutdown,
	})
	return cmd
}()

// RegisterTerminal attaches the terminal command tree to the CLI root.
func RegisterTerminal(root *cobra.Command) { root.AddCommand(terminalCmd) }
