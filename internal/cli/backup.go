package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/producttracker/internal/models"
)

func newExportCmd(open opener) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a JSON backup of all data",
		Long:  "Exports products, records, quantity presets and settings as a JSON snapshot.",
		Args:  cobra.NoArgs,
		RunE: withApp(open, func(cmd *cobra.Command, _ []string, a *app) error {
			snap, err := a.store.ExportSnapshot(cmd.Context())
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode snapshot: %w", err)
			}
			data = append(data, '\n')

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("failed to write backup: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d products and %d records to %s\n",
				len(snap.Products), len(snap.Records), output)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default: stdout)")
	return cmd
}

func newImportCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Restore data from a JSON backup",
		Long: "Replaces each collection present in the backup. Collections missing " +
			"from the file are left as they are. Use - to read from stdin.",
		Args: cobra.ExactArgs(1),
		RunE: withApp(open, func(cmd *cobra.Command, args []string, a *app) error {
			var data []byte
			var err error
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read backup: %w", err)
			}

			var snap models.Snapshot
			if err := json.Unmarshal(data, &snap); err != nil {
				return fmt.Errorf("failed to parse backup: %w", err)
			}
			if err := a.store.ImportSnapshot(cmd.Context(), &snap); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			report := func(name string, present bool, n int) {
				if present {
					fmt.Fprintf(out, "%-9s %d imported\n", name, n)
				} else {
					fmt.Fprintf(out, "%-9s unchanged\n", name)
				}
			}
			report("products", snap.Products != nil, len(snap.Products))
			report("records", snap.Records != nil, len(snap.Records))
			report("presets", snap.Presets != nil, len(snap.Presets))
			report("settings", snap.Settings != nil, len(snap.Settings))
			return nil
		}),
	}
}
