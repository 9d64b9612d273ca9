package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/oneweekend/pathtracer/pkg/scene"
)

func newScenesCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "scenes",
		Short: "List built-in scenes and scene files",
		Long:  "List the built-in scenes and every YAML or TOML scene file found in the scenes directory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := scene.ListAllScenes(scene.DefaultRegistry(), dir)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTYPE\tDESCRIPTION")
			for _, s := range all {
				name := s.Name
				if s.Type == "file" {
					name = s.FilePath
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", name, s.Type, s.Description)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "scenes", "Directory to search for scene files")
	return cmd
}
