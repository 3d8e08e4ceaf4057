package picking

import (
	"math"
	"testing"

	"github.com/philipparndt/gomassing/internal/building"
	"github.com/philipparndt/gomassing/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	slope := geometry.NewVector3(0.7, 0.7, 0).Normalize()

	tests := []struct {
		name   string
		normal geometry.Vector3
		rule   RoofRule
		want   Category
	}{
		{"roof", geometry.NewVector3(0, 1, 0), RoofHorizontal, Roof},
		{"floor", geometry.NewVector3(0, -1, 0), RoofHorizontal, Roof},
		{"east wall", geometry.NewVector3(1, 0, 0), RoofHorizontal, Wall},
		{"west wall", geometry.NewVector3(-1, 0, 0), RoofHorizontal, Wall},
		{"north end", geometry.NewVector3(0, 0, 1), RoofHorizontal, EndWall},
		{"south end", geometry.NewVector3(0, 0, -1), RoofHorizontal, EndWall},
		{"slope horizontal rule", slope, RoofHorizontal, None},
		{"slope non-vertical rule", slope, RoofNonVertical, Roof},
		{"wall non-vertical rule", geometry.NewVector3(1, 0, 0), RoofNonVertical, Wall},
		{"oblique", geometry.NewVector3(1, 0, 1).Normalize(), RoofHorizontal, None},
		{"zero", geometry.Vector3{}, RoofNonVertical, None},
		{"nan", geometry.NewVector3(math.NaN(), math.NaN(), math.NaN()), RoofNonVertical, None},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.normal, tt.rule)
			assert.Equal(t, tt.want, got)
			// pure function of the normal
			assert.Equal(t, got, Classify(tt.normal, tt.rule))
		})
	}
}

func TestClassifyPriority(t *testing.T) {
	// not a unit vector, but matches every rule at once
	all := geometry.NewVector3(1, 1, 1)
	assert.Equal(t, Roof, Classify(all, RoofHorizontal))
	assert.Equal(t, Wall, Classify(geometry.NewVector3(1, 0, 1), RoofHorizontal))
}

func TestClassifyHouseFaces(t *testing.T) {
	opts := building.DefaultOptions()
	opts.Profile = building.ProfileGable
	house, err := building.NewEntity(opts)
	require.NoError(t, err)

	want := map[string]Category{
		building.EastWall:  Wall,
		building.WestWall:  Wall,
		building.NorthEnd:  EndWall,
		building.SouthEnd:  EndWall,
		building.EastSlope: Roof,
		building.WestSlope: Roof,
		building.Floor:     Roof,
	}
	for _, p := range house.Mesh().Polygons {
		assert.Equal(t, want[p.Name], Classify(p.Normal(), RoofNonVertical), p.Name)
	}
}

func TestSideWallsKeepCategoryAfterSlopeExtrude(t *testing.T) {
	opts := building.DefaultOptions()
	opts.Profile = building.ProfileGable
	house, err := building.NewEntity(opts)
	require.NoError(t, err)

	slope, _ := house.Mesh().Polygon(building.EastSlope)
	require.NoError(t, house.Extrude(slope, 1))
	require.NoError(t, house.Extrude(slope, 1))

	for _, name := range []string{building.EastWall, building.WestWall} {
		wall, _ := house.Mesh().Polygon(name)
		assert.Equal(t, Wall, Classify(wall.Normal(), RoofHorizontal), name)
		assert.Equal(t, Wall, Classify(wall.Normal(), RoofNonVertical), name)
	}
}

func TestParseRoofRule(t *testing.T) {
	rule, err := ParseRoofRule("non-vertical")
	require.NoError(t, err)
	assert.Equal(t, RoofNonVertical, rule)

	_, err = ParseRoofRule("steep")
	assert.Error(t, err)
}
