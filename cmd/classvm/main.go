// Command classvm runs a small stack-based bytecode interpreter over
// one or more class files.
package main

import (
	"os"

	"github.com/nrkt/classvm/pkg/classvm"
	"github.com/spf13/cobra"
)

func main() {
	var verbose bool

	root := &cobra.Command{
		Use:   "classvm",
		Short: "Run a class-file virtual machine program",
	}

	runCmd := &cobra.Command{
		Use:   "run <classfile> [<classfile> ...]",
		Short: "Load class files and invoke main on the first one",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := classvm.NewLogger(verbose)
			code := classvm.Run(args, log)
			os.Exit(code)
			return nil
		},
	}
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(runCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
