package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Faultbox/mini-engine/internal/assets"
	"github.com/Faultbox/mini-engine/internal/importer"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [model]",
		Short: "Import a model and print its meshes",
		Long: `Run the model importer on a file under the resources directory and print
per-mesh vertex and index counts, material constants, texture references and
bounds. Nothing is uploaded to the GPU.`,
		Args: cobra.ExactArgs(1),
		RunE: runInspect,
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	full, err := assets.NewResolver(resourcesDir).ValidateModel(args[0])
	if err != nil {
		return err
	}
	res, err := importer.Import(full)
	if errors.Is(err, importer.ErrNoBackend) {
		return fmt.Errorf("%w (importable: %s)", err, strings.Join(importer.Formats(), " "))
	}
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Model: %s\n", full)
	fmt.Fprintf(out, "Meshes: %d  Vertices: %d  Triangles: %d\n",
		len(res.Meshes), res.VertexCount(), res.TriangleCount())
	fmt.Fprintf(out, "Bounds: %s - %s\n\n", formatVec(res.Bounds.Min), formatVec(res.Bounds.Max))

	for i := range res.Meshes {
		m := &res.Meshes[i]
		name := m.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(out, "[%d] %s\n", i, name)
		fmt.Fprintf(out, "    vertices %d, indices %d\n", len(m.Vertices), len(m.Indices))
		fmt.Fprintf(out, "    diffuse %s  specular %s  shininess %.1f\n",
			formatVec(m.Material.DiffuseColor), formatVec(m.Material.SpecularColor), m.Material.Shininess)
		for _, t := range m.Textures {
			if t.Data != nil {
				fmt.Fprintf(out, "    %s: embedded %s (%d bytes)\n", t.Type, t.MimeType, len(t.Data))
				continue
			}
			fmt.Fprintf(out, "    %s: %s\n", t.Type, t.Path)
		}
	}
	return nil
}
