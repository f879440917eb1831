package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that every stored collection can be read",
		Long: "Reports collections whose stored data cannot be decoded. Such collections " +
			"read as empty and are overwritten by the next change, so restore them from a " +
			"backup first. Exits non-zero when problems are found.",
		Args: cobra.NoArgs,
		RunE: withApp(open, func(cmd *cobra.Command, _ []string, a *app) error {
			ctx := cmd.Context()
			warnings, err := a.store.Check(ctx)
			if err != nil {
				return err
			}
			size, err := a.store.StorageSize(ctx)
			if err != nil {
				return err
			}

			s := a.styles(ctx, cmd)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Database: %s\n", a.cfg.DBPath)
			fmt.Fprintf(out, "Stored data: %d bytes\n", size)
			if len(warnings) == 0 {
				fmt.Fprintln(out, s.Good.Render("All collections OK"))
				return nil
			}
			for _, w := range warnings {
				fmt.Fprintln(out, s.Bad.Render("corrupt: "+w.String()))
			}
			return fmt.Errorf("%d corrupt collection(s)", len(warnings))
		}),
	}
}
