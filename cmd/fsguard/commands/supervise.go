package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/fsguard/internal/app"
)

func (c *CLI) newSuperviseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "supervise [flags] -- command [args...]",
		Short: "Run a command and kill it once it stops making progress",
		Long: "Run a command and kill it once it has neither written output nor, with --watch, " +
			"changed the watched directory for longer than the inactivity budget.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			watch, _ := cmd.Flags().GetString("watch")
			name, _ := cmd.Flags().GetString("name")
			dir, _ := cmd.Flags().GetString("dir")

			return c.app.SuperviseCommand(cmd.Context(), app.SuperviseRequest{
				Argv:     args,
				Dir:      dir,
				WatchDir: watch,
				Name:     name,
			})
		},
	}
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringP("watch", "w", "", "Count changes below this directory as progress")
	cmd.Flags().String("name", "", "Name of the command in warnings")
	cmd.Flags().String("dir", "", "Working directory of the command")
	return cmd
}
