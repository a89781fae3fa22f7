package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "marineit",
		Short:         "IT operations dashboard for a marine transport company",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(serveCmd(), exportCmd(), importCmd(), resetCmd())
	return cmd
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func exportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the stored dataset to a backup file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportBackup(cmd.Context(), out, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", `Backup file path, "-" for stdout (default it_backup_<date>.json)`)
	return cmd
}

func importCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the stored dataset with a backup file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return importBackup(cmd.Context(), file, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Backup file to restore")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Remove the stored dataset so the next start uses the seed data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return resetData(cmd.Context(), cmd.OutOrStdout())
		},
	}
}
