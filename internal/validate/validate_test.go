package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVar_Bearing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		bearing int
		wantErr bool
	}{
		{name: "north", bearing: 0},
		{name: "mid", bearing: 180},
		{name: "last whole degree", bearing: 359},
		{name: "full circle", bearing: 360, wantErr: true},
		{name: "negative", bearing: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Var(tt.bearing, "bearing")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestVar_UnitTagsAreCaseInsensitive(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Var("Knots", "speed_unit"))
	assert.NoError(t, Var("NM", "distance_unit"))
	assert.NoError(t, Var("Sector", "pattern_kind"))
	assert.Error(t, Var("furlongs", "distance_unit"))
	assert.Error(t, Var("warp", "speed_unit"))
	assert.Error(t, Var("spiral", "pattern_kind"))
}

func TestStruct_CombinesTags(t *testing.T) {
	t.Parallel()

	type sample struct {
		Heading int     `validate:"bearing"`
		Width   float64 `validate:"gt=0"`
	}

	assert.NoError(t, Struct(sample{Heading: 90, Width: 10}))
	assert.Error(t, Struct(sample{Heading: 400, Width: 10}))
	assert.Error(t, Struct(sample{Heading: 90, Width: 0}))
}
