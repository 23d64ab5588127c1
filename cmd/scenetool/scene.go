package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Faultbox/mini-engine/internal/assets"
	"github.com/Faultbox/mini-engine/internal/engine/lighting"
	"github.com/Faultbox/mini-engine/internal/engine/scene"
)

// errInvalid marks a scene that parsed but has records the editor would skip.
var errInvalid = errors.New("scene has invalid model records")

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [scene.json]",
		Short: "Report model records the editor would skip",
		Long: `Parse a scene file and check every model record the way a scene load does:
the extension must be a supported model format and the file must exist under
the resources directory. Exits non-zero when any record fails.`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	f, err := scene.ReadFile(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	problems := f.Validate(assets.NewResolver(resourcesDir))
	for _, p := range problems {
		fmt.Fprintf(out, "model %d (%s): %v\n", p.Index, p.Path, p.Err)
	}
	if len(f.Lights) > lighting.MaxLights {
		fmt.Fprintf(out, "warning: %d lights, only the first %d are shaded\n", len(f.Lights), lighting.MaxLights)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%s: %d of %d: %w", args[0], len(problems), len(f.Models), errInvalid)
	}
	fmt.Fprintf(out, "%s: OK (%d models, %d lights)\n", args[0], len(f.Models), len(f.Lights))
	return nil
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info [scene.json]",
		Short: "Summarise the models and lights in a scene",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}
}

func runInfo(cmd *cobra.Command, args []string) error {
	f, err := scene.ReadFile(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Scene: %s\n", args[0])
	fmt.Fprintf(out, "Models: %d\n", len(f.Models))
	for i, m := range f.Models {
		fmt.Fprintf(out, "  %d. %s\n", i+1, m.Path)
		fmt.Fprintf(out, "     position %s  rotation %s  scale %s\n",
			formatVec(m.Position), formatVec(m.Rotation), formatVec(m.ScaleFactor))
	}
	fmt.Fprintf(out, "Lights: %d\n", len(f.Lights))
	for i, l := range f.Lights {
		fmt.Fprintf(out, "  %d. position %s  color %s  intensity %.2f\n",
			i+1, formatVec(l.Position), formatVec(l.Color), l.Intensity)
	}
	return nil
}

func newNewCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "new [scene.json]",
		Short: "Write a scene holding only the starting light",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := scene.WriteFile(path, scene.Starter()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func formatVec(v [3]float32) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v[0], v[1], v[2])
}
