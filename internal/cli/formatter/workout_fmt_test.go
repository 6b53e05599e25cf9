package formatter

import (
	"regexp"
	"strings"
	"testing"

	"github.com/alexanderramin/mapty/internal/contract"
	"github.com/alexanderramin/mapty/internal/persistence"
	"github.com/alexanderramin/mapty/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestFixed1(t *testing.T) {
	assert.Equal(t, "4.6", Fixed1(24/5.2))
	assert.Equal(t, "17.1", Fixed1(27/(95.0/60)))
	assert.Equal(t, "5.0", Fixed1(5))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "w-001", ShortID("w-001"))
	assert.Equal(t, "3f1c2a9b", ShortID("3f1c2a9b-1111-2222-3333-444455556666"))
}

func TestMetrics(t *testing.T) {
	run := Metrics(contract.NewRenderRecord(testutil.NewTestRunning(178)))
	assert.Equal(t, []string{"🦶🏼 5.2 km", "⏱ 24 min", "⚡️ 4.6 min/km", "🦶🏼 178 spm"}, run)

	cyc := Metrics(contract.NewRenderRecord(testutil.NewTestCycling(523)))
	assert.Equal(t, []string{"🦶🏼 27 km", "⏱ 95 min", "⚡️ 17.1 km/h", "⛰ 523 m"}, cyc)
}

func TestFormatWorkoutList_NewestFirst(t *testing.T) {
	first := contract.NewRenderRecord(testutil.NewTestRunning(170, testutil.WithID("aaaa0001")))
	second := contract.NewRenderRecord(testutil.NewTestCycling(100, testutil.WithID("bbbb0002")))

	out := stripANSI(FormatWorkoutList([]contract.RenderRecord{first, second}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "WORKOUT")
	assert.Contains(t, lines[2], "bbbb0002")
	assert.Contains(t, lines[2], "Cycling on April 14")
	assert.Contains(t, lines[3], "aaaa0001")
}

func TestFormatWorkoutList_Empty(t *testing.T) {
	assert.Contains(t, stripANSI(FormatWorkoutList(nil)), "No workouts yet")
}

func TestRenderTable_RightAlign(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "N"}, [][]string{{"x", "1"}, {"yy", "100"}}, AlignLeft, AlignRight))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "x     1", lines[2])
	assert.Equal(t, "yy  100", lines[3])
}

func TestFormatWorkoutDetail(t *testing.T) {
	r := contract.NewRenderRecord(testutil.NewTestRunning(178, testutil.WithID("detail-1")))
	out := stripANSI(FormatWorkoutDetail(r, "https://example.test/pin"))

	assert.Contains(t, out, "Running on April 14")
	assert.Contains(t, out, "4.6 min/km")
	assert.Contains(t, out, "detail-1")
	assert.Contains(t, out, "https://example.test/pin")
}

func TestFormatLoadNotice(t *testing.T) {
	assert.Empty(t, FormatLoadNotice(persistence.LoadResult{Outcome: persistence.OutcomeRestored}))
	assert.Empty(t, FormatLoadNotice(persistence.LoadResult{Outcome: persistence.OutcomeAbsent}))
	assert.Contains(t, stripANSI(FormatLoadNotice(persistence.LoadResult{Outcome: persistence.OutcomeCorrupt})), "could not be read")
	assert.Contains(t, stripANSI(FormatLoadNotice(persistence.LoadResult{Outcome: persistence.OutcomeUnavailable})), "unavailable")
}
