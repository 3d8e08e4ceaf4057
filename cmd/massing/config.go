package main

import (
	"github.com/philipparndt/gomassing/internal/app"
	"github.com/philipparndt/gomassing/internal/building"
	"github.com/philipparndt/gomassing/internal/picking"
	"github.com/spf13/pflag"
)

// houseFlags map command line flags onto the editor config
type houseFlags struct {
	width, height float64
	houseWidth    float64
	houseLength   float64
	floorHeight   float64
	ridgeHeight   float64
	profile       string
	roofRule      string
}

func (h *houseFlags) register(flags *pflag.FlagSet) {
	defaults := app.DefaultConfig()
	flags.Float64Var(&h.width, "viewport-width", defaults.Width, "viewport width in pixels")
	flags.Float64Var(&h.height, "viewport-height", defaults.Height, "viewport height in pixels")
	flags.Float64Var(&h.houseWidth, "house-width", defaults.House.Width, "initial house width (X)")
	flags.Float64Var(&h.houseLength, "house-length", defaults.House.Length, "initial house length (Z)")
	flags.Float64Var(&h.floorHeight, "floor-height", defaults.House.FloorHeight, "storey height")
	flags.Float64Var(&h.ridgeHeight, "ridge-height", defaults.House.RidgeHeight, "gable rise above the top storey")
	flags.StringVar(&h.profile, "profile", defaults.House.Profile.String(), "roof profile (flat, gable)")
	flags.StringVar(&h.roofRule, "roof-rule", defaults.RoofRule.String(), "faces that count as roof (horizontal, non-vertical)")
}

func (h *houseFlags) config() (app.Config, error) {
	cfg := app.DefaultConfig()
	cfg.Width = h.width
	cfg.Height = h.height
	cfg.House.Width = h.houseWidth
	cfg.House.Length = h.houseLength
	cfg.House.FloorHeight = h.floorHeight
	cfg.House.RidgeHeight = h.ridgeHeight

	profile, err := building.ParseProfile(h.profile)
	if err != nil {
		return cfg, err
	}
	cfg.House.Profile = profile

	rule, err := picking.ParseRoofRule(h.roofRule)
	if err != nil {
		return cfg, err
	}
	cfg.RoofRule = rule
	return cfg, cfg.Validate()
}
