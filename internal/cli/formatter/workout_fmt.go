package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/mapty/internal/contract"
	"github.com/alexanderramin/mapty/internal/persistence"
	"github.com/charmbracelet/lipgloss"
)

// Fixed1 formats a derived rate with one decimal place.
func Fixed1(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// Number formats a raw input value without trailing zeros.
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ShortID returns the first eight characters of an id, enough to type back.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// Metrics renders the four detail cells for a record in display order:
// distance, duration, rate, kind-specific metric.
func Metrics(r contract.RenderRecord) []string {
	cells := []string{
		"🦶🏼 " + Number(r.DistanceKm) + " km",
		"⏱ " + Number(r.DurationMin) + " min",
	}
	switch {
	case r.Pace != nil:
		cells = append(cells,
			"⚡️ "+Fixed1(*r.Pace)+" min/km",
			"🦶🏼 "+strconv.Itoa(*r.Cadence)+" spm",
		)
	case r.Speed != nil:
		cells = append(cells,
			"⚡️ "+Fixed1(*r.Speed)+" km/h",
			"⛰ "+Number(*r.ElevationGain)+" m",
		)
	}
	return cells
}

// FormatWorkoutList renders the list newest first. records must be given in
// insertion order.
func FormatWorkoutList(records []contract.RenderRecord) string {
	if len(records) == 0 {
		return Dim("No workouts yet. Add one with: mapty add running --lat .. --lng ..") + "\n"
	}

	rows := make([][]string, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		m := Metrics(r)
		rows = append(rows, []string{
			Dim(ShortID(r.ID)),
			KindColor(r.Kind).Render(r.Emoji + " " + r.Description),
			m[0], m[1], m[2], m[3],
		})
	}
	return RenderTable(
		[]string{"ID", "WORKOUT", "DISTANCE", "DURATION", "RATE", "METRIC"},
		rows,
		AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight,
	)
}

// FormatWorkoutDetail renders a single record in a box accented by kind.
func FormatWorkoutDetail(r contract.RenderRecord, link string) string {
	var b strings.Builder
	b.WriteString(strings.Join(Metrics(r), "   "))
	b.WriteString("\n\n")
	b.WriteString(Dim("id  ") + r.ID + "\n")
	b.WriteString(Dim("map ") + link)

	accent := ColorDim
	if c, ok := KindColor(r.Kind).GetForeground().(lipgloss.Color); ok {
		accent = c
	}
	return RenderBox(r.Emoji+" "+r.Description, b.String(), accent)
}

// FormatLoadNotice describes a degraded startup. It returns "" for restored
// and absent snapshots.
func FormatLoadNotice(res persistence.LoadResult) string {
	switch res.Outcome {
	case persistence.OutcomeCorrupt:
		return StyleYellow.Render("Saved workouts could not be read and were ignored.")
	case persistence.OutcomeUnavailable:
		return StyleYellow.Render("Workout storage is unavailable; starting with an empty log.")
	}
	return ""
}

// FormatRecorded confirms a newly added workout.
func FormatRecorded(r contract.RenderRecord) string {
	return fmt.Sprintf("%s %s  %s",
		StyleGreen.Render("✔"),
		KindColor(r.Kind).Render(r.Emoji+" "+r.Description),
		strings.Join(Metrics(r), "  "),
	)
}
