// Package main 提供 rbbench 命令行工具，对红黑树容器执行可复现的压测负载.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// 构建信息，通过 -ldflags 注入.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rbbench",
		Short: "Red-black tree container workload runner",
		Long: `rbbench runs deterministic insert/query/remove workloads against treemap.Map
and checks red-black tree invariants along the way.

Commands:
  run       Run the configured workloads and print a summary table`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(versionCmd())
	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rbbench %s (commit: %s)\n", version, commit)
		},
	}
}
