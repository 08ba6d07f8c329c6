package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/fsguard/internal/app"
	"go.trai.ch/fsguard/internal/core/domain"
	"go.trai.ch/fsguard/internal/engine/tree"
	"go.trai.ch/zerr"
)

func (c *CLI) newLastChangedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lastchanged [paths...]",
		Short: "Print the youngest modification time below each path",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subdirs, _ := cmd.Flags().GetBool("subdirs")
			minAge, _ := cmd.Flags().GetDuration("min-age")
			after, _ := cmd.Flags().GetString("after")

			req := app.LastChangedRequest{
				Paths:              args,
				SubdirectoriesOnly: subdirs,
				MinAge:             minAge,
			}
			if after != "" {
				t, err := time.Parse(time.RFC3339, after)
				if err != nil {
					return zerr.With(zerr.Wrap(err, "invalid --after timestamp"), "value", after)
				}
				req.Threshold = t
			}

			results, err := c.app.LastChanged(cmd.Context(), req)
			if err != nil {
				return err
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", r.LastChanged.Format(time.RFC3339Nano), r.Path)
			}
			return nil
		},
	}
	cmd.Flags().Bool("subdirs", false, "Only consider directories")
	cmd.Flags().Duration("min-age", 0, "Stop at the first node younger than this age")
	cmd.Flags().String("after", "", "Stop at the first node modified after this RFC 3339 time")
	return cmd
}

func (c *CLI) newLsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls <dir>",
		Short: "List a directory, failing on anything that is not a readable directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recursive, _ := cmd.Flags().GetBool("recursive")
			files, _ := cmd.Flags().GetBool("files")
			dirs, _ := cmd.Flags().GetBool("dirs")
			exts, _ := cmd.Flags().GetStringSlice("ext")
			glob, _ := cmd.Flags().GetString("glob")

			sel := tree.SelectBoth
			switch {
			case files && !dirs:
				sel = tree.SelectFiles
			case dirs && !files:
				sel = tree.SelectDirectories
			}

			entries, err := c.app.List(cmd.Context(), app.ListRequest{
				Dir:        args[0],
				Recursive:  recursive,
				Select:     sel,
				Extensions: exts,
				Glob:       glob,
			})
			if err != nil {
				return err
			}
			printEntries(cmd.OutOrStdout(), entries)
			return nil
		},
	}
	cmd.Flags().BoolP("recursive", "r", false, "Descend into subdirectories")
	cmd.Flags().Bool("files", false, "Only list files")
	cmd.Flags().Bool("dirs", false, "Only list directories")
	cmd.Flags().StringSliceP("ext", "e", nil, "Only list files with these extensions")
	cmd.Flags().StringP("glob", "g", "", "Only list nodes matching this pattern")
	return cmd
}

func (c *CLI) newFindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <root>",
		Short: "Find nodes below a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			glob, _ := cmd.Flags().GetString("glob")
			ignores, _ := cmd.Flags().GetStringSlice("ignore")
			parallel, _ := cmd.Flags().GetBool("parallel")

			entries, err := c.app.Find(cmd.Context(), app.FindRequest{
				Root:     args[0],
				Glob:     glob,
				Ignores:  ignores,
				Parallel: parallel,
			})
			if err != nil {
				return err
			}
			printEntries(cmd.OutOrStdout(), entries)
			return nil
		},
	}
	cmd.Flags().StringP("glob", "g", "", "Only report nodes matching this pattern")
	cmd.Flags().StringSlice("ignore", nil, "Skip names matching these patterns (parallel search only)")
	cmd.Flags().BoolP("parallel", "p", false, "Walk with several workers instead of the monitored traversal")
	return cmd
}

func (c *CLI) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <path>",
		Short: "Verify that a path exists and is accessible",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetBool("dir")
			file, _ := cmd.Flags().GetBool("file")
			rw, _ := cmd.Flags().GetBool("rw")
			role, _ := cmd.Flags().GetString("role")

			problem := c.app.CheckAccess(app.CheckRequest{
				Path:      args[0],
				Role:      role,
				Directory: dir,
				File:      file,
				ReadWrite: rw,
			})
			if problem != "" {
				return domain.NewEnvironmentFailure(args[0], problem, nil)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ok\t%s\n", args[0])
			return nil
		},
	}
	cmd.Flags().Bool("dir", false, "Require a directory")
	cmd.Flags().Bool("file", false, "Require a regular file")
	cmd.Flags().Bool("rw", false, "Require write access as well as read access")
	cmd.Flags().String("role", "", "Describe the path in messages, e.g. Source or Destination")
	return cmd
}

func printEntries(w io.Writer, entries []domain.Entry) {
	for _, e := range entries {
		suffix := ""
		if e.Kind == domain.KindDirectory {
			suffix = "/"
		}
		_, _ = fmt.Fprintf(w, "%s%s\n", e.Path, suffix)
	}
}
