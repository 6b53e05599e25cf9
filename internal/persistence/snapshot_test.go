package persistence

import (
	"testing"
	"time"

	"github.com/alexanderramin/mapty/internal/domain"
	"github.com/alexanderramin/mapty/internal/testutil"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_FieldNames(t *testing.T) {
	run := testutil.NewTestRunning(178, testutil.WithID("r1"), testutil.WithCoords(39, 12))
	cyc := testutil.NewTestCycling(523, testutil.WithID("c1"))

	data, err := Encode([]*domain.Workout{run, cyc})
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 2)

	assert.Equal(t, "running", raw[0]["type"])
	assert.Equal(t, "r1", raw[0]["id"])
	assert.Equal(t, []any{39.0, 12.0}, raw[0]["coords"])
	assert.Equal(t, 5.2, raw[0]["distance"])
	assert.Equal(t, 24.0, raw[0]["duration"])
	assert.Equal(t, 178.0, raw[0]["cadence"])
	assert.Contains(t, raw[0], "pace")
	assert.NotContains(t, raw[0], "speed")
	assert.Equal(t, "Running on April 14", raw[0]["description"])

	assert.Equal(t, "cycling", raw[1]["type"])
	assert.Equal(t, 523.0, raw[1]["elevationGain"])
	assert.Contains(t, raw[1], "speed")
	assert.NotContains(t, raw[1], "cadence")
}

func TestEncode_RejectsMalformedWorkout(t *testing.T) {
	w := testutil.NewTestRunning(170)
	w.Cycling = &domain.CyclingMetrics{}
	_, err := Encode([]*domain.Workout{w})
	assert.Error(t, err)
}

// A snapshot exported from the browser app keeps its stored description and
// derived values even when they disagree with a recomputation.
func TestDecode_BrowserExport(t *testing.T) {
	data := []byte(`[
		{"date":"2025-04-14T09:30:00.000Z","id":"4649012345","coords":[39.39,-8.22],"distance":5.2,"duration":24,"type":"running","cadence":171.6,"pace":4.615384615384615,"description":"Running on April 14"},
		{"date":"2025-04-15T18:02:11.345Z","id":"4649098765","coords":[39.4,-8.2],"distance":27,"duration":95,"type":"cycling","elevationGain":523,"speed":99,"description":"Cycling on April 15"}
	]`)

	workouts, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, workouts, 2)

	run := workouts[0]
	assert.Equal(t, domain.KindRunning, run.Kind)
	assert.Equal(t, 172, run.Running.Cadence)
	assert.Equal(t, time.Date(2025, 4, 14, 9, 30, 0, 0, time.UTC), run.CreatedAt.UTC())

	cyc := workouts[1]
	assert.Equal(t, 99.0, cyc.Cycling.Speed)
	assert.Equal(t, "Cycling on April 15", cyc.Description)
	assert.Equal(t, domain.Coordinates{Lat: 39.4, Lng: -8.2}, cyc.Coords)
}

func TestDecode_Rejects(t *testing.T) {
	const base = `"date":"2025-04-14T09:30:00Z","coords":[39,12],"description":"x"`
	cases := map[string]string{
		"not an array":        `{"type":"running"}`,
		"unknown type":        `[{"type":"rowing","id":"a","coords":[1,2]}]`,
		"missing id":          `[{"type":"running",` + base + `,"distance":5,"duration":24,"cadence":170,"pace":4.8}]`,
		"short coords":        `[{"type":"running","id":"a","coords":[1],"distance":5,"duration":24,"cadence":170,"pace":4.8}]`,
		"running no pace":     `[{"type":"running","id":"a",` + base + `,"distance":5,"duration":24,"cadence":170}]`,
		"cycling no speed":    `[{"type":"cycling","id":"a",` + base + `,"distance":27,"duration":95,"elevationGain":1}]`,
		"mixed payload":       `[{"type":"running","id":"a",` + base + `,"distance":5,"duration":24,"cadence":170,"pace":4.8,"speed":3}]`,
		"duplicate id":        `[{"type":"running","id":"a",` + base + `,"distance":5,"duration":24,"cadence":170,"pace":4.8},{"type":"cycling","id":"a",` + base + `,"distance":27,"duration":95,"elevationGain":1,"speed":17}]`,
		"truncated":           `[{"type":"running"`,
		"negative distance":   `[{"type":"running","id":"a",` + base + `,"distance":-5,"duration":24,"cadence":170,"pace":4.8}]`,
		"zero duration":       `[{"type":"cycling","id":"a",` + base + `,"distance":27,"duration":0,"elevationGain":1,"speed":17}]`,
		"negative cadence":    `[{"type":"running","id":"a",` + base + `,"distance":5,"duration":24,"cadence":-3,"pace":4.8}]`,
		"cadence rounds to 0": `[{"type":"running","id":"a",` + base + `,"distance":5,"duration":24,"cadence":0.4,"pace":4.8}]`,
		"cadence overflow":    `[{"type":"running","id":"a",` + base + `,"distance":5,"duration":24,"cadence":1e20,"pace":4.8}]`,
		"negative elevation":  `[{"type":"cycling","id":"a",` + base + `,"distance":27,"duration":95,"elevationGain":-1,"speed":17}]`,
		"latitude off globe":  `[{"type":"running","id":"a","date":"2025-04-14T09:30:00Z","coords":[91,12],"distance":5,"duration":24,"cadence":170,"pace":4.8}]`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(data))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedSnapshot)
		})
	}
}

func TestDecode_AcceptsZeroElevation(t *testing.T) {
	data := `[{"type":"cycling","id":"a","date":"2025-04-14T09:30:00Z","coords":[39,12],` +
		`"distance":27,"duration":95,"elevationGain":0,"speed":17.05,"description":"Cycling on April 14"}]`

	workouts, err := Decode([]byte(data))
	require.NoError(t, err)
	require.Len(t, workouts, 1)
	assert.Zero(t, workouts[0].Cycling.ElevationGain)
}
