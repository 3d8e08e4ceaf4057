package main

import (
	"fmt"

	"github.com/philipparndt/gomassing/internal/building"
	"github.com/philipparndt/gomassing/internal/measurement"
	"github.com/spf13/cobra"
)

var infoHouse houseFlags

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display the metrics of the starting house",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoHouse.register(infoCmd.Flags())
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, err := infoHouse.config()
	if err != nil {
		return err
	}
	house, err := building.NewEntity(cfg.House)
	if err != nil {
		return err
	}
	mesh := house.Mesh()
	metrics := measurement.AllMetrics(house)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "House Information")
	fmt.Fprintln(out, "=================")
	fmt.Fprintf(out, "Profile: %s\n", cfg.House.Profile)
	fmt.Fprintf(out, "Roof rule: %s\n\n", cfg.RoofRule)

	fmt.Fprintln(out, "Mesh Statistics:")
	fmt.Fprintf(out, "  Vertices: %d\n", len(mesh.Vertices))
	fmt.Fprintf(out, "  Faces: %d\n", len(mesh.Faces))
	fmt.Fprintf(out, "  Edges: %d\n\n", len(mesh.Edges))

	fmt.Fprintln(out, "Bounding Box:")
	fmt.Fprintf(out, "  Min: (%.3f, %.3f, %.3f)\n", mesh.Box.Min.X, mesh.Box.Min.Y, mesh.Box.Min.Z)
	fmt.Fprintf(out, "  Max: (%.3f, %.3f, %.3f)\n", mesh.Box.Max.X, mesh.Box.Max.Y, mesh.Box.Max.Z)
	size := mesh.Box.Size()
	fmt.Fprintf(out, "  Size: %.3f x %.3f x %.3f\n\n", size.X, size.Y, size.Z)

	fmt.Fprintln(out, "Metrics:")
	for _, name := range []string{measurement.Floors, measurement.Height, measurement.Width, measurement.Length} {
		fmt.Fprintf(out, "  %s: %s\n", name, metrics[name])
	}

	fmt.Fprintln(out, "\nPolygons:")
	for _, p := range mesh.Polygons {
		n := p.Normal()
		fmt.Fprintf(out, "  %-16s normal (%.2f, %.2f, %.2f)\n", p.Name, n.X, n.Y, n.Z)
	}
	return nil
}
