package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oneweekend/pathtracer/version"
)

// newRootCmd builds the command tree
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "raytracer",
		Short: "A sphere path tracer",
		Long: `raytracer renders scenes of spheres with diffuse, metal and glass materials
under a sky gradient. Scenes are built in or described in YAML or TOML files,
and frames are written as PPM, PNG, BMP or TIFF.`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newRenderCmd(), newScenesCmd(), newVersionCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
