package ratings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormulaTableWeightsSumToOne(t *testing.T) {
	require.Len(t, formulaTable, 29)
	for ability, terms := range formulaTable {
		sum := 0.0
		for _, term := range terms {
			assert.Greater(t, term.weight, 0.0, "%s term %s", ability, term.raw)
			sum += term.weight
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "weights for %s should sum to 1", ability)
	}
}

func TestDeriveCoversAllAbilities(t *testing.T) {
	derived := Derive(map[string]float64{})
	require.Len(t, derived, len(All))
	for _, a := range All {
		v, ok := derived[a]
		require.True(t, ok, "missing ability %s", a)
		// All raws default to 50, so every weighted average is exactly 50.
		assert.InDelta(t, 50.0, v, 1e-9, "ability %s", a)
	}
}

func TestDeriveClampsToRange(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]float64
		want float64
	}{
		{
			name: "all maxed raws clamp at 100",
			raw:  allRaws(250),
			want: 100,
		},
		{
			name: "all negative raws clamp at 0",
			raw:  allRaws(-40),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			derived := Derive(tt.raw)
			for ability, v := range derived {
				assert.InDelta(t, tt.want, v, 1e-9, "ability %s", ability)
			}
		})
	}
}

func TestDeriveKnownRow(t *testing.T) {
	raw := map[string]float64{
		"Three-Point Shot":      90,
		"Offensive Consistency": 80,
		"Shot IQ":               70,
	}
	derived := Derive(raw)
	// 0.60*90 + 0.20*80 + 0.20*70 = 84.
	assert.InDelta(t, 84.0, derived[Shot3CS], 1e-9)
	// Unrelated abilities fall back to the default-50 raws.
	assert.InDelta(t, 50.0, derived[DefPost], 1e-9)
}

func TestDeriveIgnoresUnknownRawNames(t *testing.T) {
	derived := Derive(map[string]float64{"Clutch Gene": 99, "Fax Machine": 12})
	for _, a := range All {
		assert.InDelta(t, 50.0, derived[a], 1e-9, "ability %s", a)
	}
}

func TestOVRAveragesDerived(t *testing.T) {
	derived := Derive(allRaws(60))
	assert.InDelta(t, 60.0, OVR(derived), 1e-9)

	assert.Zero(t, OVR(nil))
	assert.Zero(t, OVR(map[Ability]float64{"NOT_A_ROW": 99}))
}

func TestCompositeDefaultsMissing(t *testing.T) {
	derived := map[Ability]float64{PnRRead: 80, DriveCreate: 70}
	got := Composite(derived, PnRRead, DriveCreate, PassCreate)
	assert.InDelta(t, 80+70+50, got, 1e-9)
}

func allRaws(v float64) map[string]float64 {
	names := []string{
		rawCloseShot, rawMidRange, rawThree, rawFreeThrow, rawShotIQ, rawOffConsist,
		rawLayup, rawDrivingDunk, rawStandingDunk, rawPostHook, rawPostFade, rawPostControl,
		rawDrawFoul, rawHands, rawBallHandle, rawSpeedWithBall, rawPassAccuracy,
		rawPassVision, rawPassIQ, rawIntDefense, rawPerimDefense, rawSteal, rawBlock,
		rawHelpIQ, rawDefConsist, rawSpeed, rawAgility, rawStrength, rawVertical,
		rawStamina, rawHustle, rawPassPerceive, rawOffRebound, rawDefRebound, rawIntangibles,
	}
	out := make(map[string]float64, len(names))
	for _, n := range names {
		out[n] = v
	}
	return out
}
