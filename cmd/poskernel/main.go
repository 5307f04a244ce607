package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"poskernel/cmd/cli"
	"poskernel/core"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "poskernel",
		Short: "POS transaction kernel terminal host",
	}
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "print the kernel version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), core.KernelVersion)
		},
	})
	cli.RegisterSale(rootCmd)
	cli.RegisterTerminal(rootCmd)
	cli.RegisterCurrency(rootCmd)
	cli.RegisterConfig(rootCmd)
	cli.RegisterServe(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
