// Package mapview places workout markers on a map surface. The terminal
// surface prints each pin with an OpenStreetMap link.
package mapview

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alexanderramin/mapty/internal/contract"
	"github.com/alexanderramin/mapty/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// DefaultZoom is the zoom used when centring on the user or a workout.
const DefaultZoom = 15

// Surface is anything that can be centred and carry markers.
type Surface interface {
	SetView(center domain.Coordinates, zoom int)
	PlaceMarker(m contract.Marker)
}

// OSMLink returns an openstreetmap.org URL that drops a pin at c.
func OSMLink(c domain.Coordinates, zoom int) string {
	lat := strconv.FormatFloat(c.Lat, 'f', 5, 64)
	lng := strconv.FormatFloat(c.Lng, 'f', 5, 64)
	return fmt.Sprintf("https://www.openstreetmap.org/?mlat=%s&mlon=%s#map=%d/%s/%s", lat, lng, zoom, lat, lng)
}

var popupAccent = map[string]lipgloss.Color{
	"running-popup": lipgloss.Color("#00C46A"),
	"cycling-popup": lipgloss.Color("#FFB545"),
}

// TextSurface renders the map as lines of text.
type TextSurface struct {
	w      io.Writer
	zoom   int
	center *domain.Coordinates
}

func NewTextSurface(w io.Writer) *TextSurface {
	return &TextSurface{w: w, zoom: DefaultZoom}
}

func (s *TextSurface) SetView(center domain.Coordinates, zoom int) {
	s.center = &center
	s.zoom = zoom
	fmt.Fprintf(s.w, "map centred at %s\n  %s\n", center, OSMLink(center, zoom))
}

func (s *TextSurface) PlaceMarker(m contract.Marker) {
	style := lipgloss.NewStyle().
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		PaddingLeft(1)
	if accent, ok := popupAccent[m.ClassName]; ok {
		style = style.BorderForeground(accent)
	}
	fmt.Fprintln(s.w, style.Render(m.Popup+"\n"+OSMLink(m.Coords, s.zoom)))
}

// Center reports the last view set, if any.
func (s *TextSurface) Center() (domain.Coordinates, bool) {
	if s.center == nil {
		return domain.Coordinates{}, false
	}
	return *s.center, true
}
