package search

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"rentnest/server/internal/models"
)

// Filter narrows an already-fetched listing set. Zero values mean "no
// constraint"; applying an empty Filter returns the full set.
type Filter struct {
	Query       string
	City        string
	Category    string
	MinRent     int
	MaxRent     int
	MinBedrooms int
	Bounds      *orb.Bound
}

// Apply filters in-process. The input order is preserved.
func (f Filter) Apply(listings []models.Listing) []models.Listing {
	out := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if f.matches(&l) {
			out = append(out, l)
		}
	}
	return out
}

func (f Filter) matches(l *models.Listing) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(l.Title), q) &&
			!strings.Contains(strings.ToLower(l.Description), q) &&
			!strings.Contains(strings.ToLower(l.Street), q) {
			return false
		}
	}
	if f.City != "" && !strings.EqualFold(f.City, l.City) {
		return false
	}
	if f.Category != "" && f.Category != l.Category {
		return false
	}
	if f.MinRent > 0 && l.MonthlyRent < f.MinRent {
		return false
	}
	if f.MaxRent > 0 && l.MonthlyRent > f.MaxRent {
		return false
	}
	if f.MinBedrooms > 0 && l.Bedrooms < f.MinBedrooms {
		return false
	}
	if f.Bounds != nil {
		if l.Latitude == nil || l.Longitude == nil {
			return false
		}
		if !f.Bounds.Contains(orb.Point{*l.Longitude, *l.Latitude}) {
			return false
		}
	}
	return true
}

// ParseFilter re-derives a Filter from a URL query, the inverse of Values.
// Malformed numeric values are treated as unset, not as errors.
func ParseFilter(values url.Values) Filter {
	f := Filter{
		Query:    values.Get("q"),
		City:     values.Get("city"),
		Category: values.Get("category"),
	}
	if v, err := strconv.Atoi(values.Get("min_rent")); err == nil && v > 0 {
		f.MinRent = v
	}
	if v, err := strconv.Atoi(values.Get("max_rent")); err == nil && v > 0 {
		f.MaxRent = v
	}
	if v, err := strconv.Atoi(values.Get("min_bedrooms")); err == nil && v > 0 {
		f.MinBedrooms = v
	}
	if b := values.Get("bounds"); b != "" {
		if bound, err := parseBounds(b); err == nil {
			f.Bounds = bound
		}
	}
	return f
}

// Values mirrors the filter into a URL query so a filtered view stays
// shareable and bookmarkable. Unset fields are omitted.
func (f Filter) Values() url.Values {
	values := url.Values{}
	if f.Query != "" {
		values.Set("q", f.Query)
	}
	if f.City != "" {
		values.Set("city", f.City)
	}
	if f.Category != "" {
		values.Set("category", f.Category)
	}
	if f.MinRent > 0 {
		values.Set("min_rent", strconv.Itoa(f.MinRent))
	}
	if f.MaxRent > 0 {
		values.Set("max_rent", strconv.Itoa(f.MaxRent))
	}
	if f.MinBedrooms > 0 {
		values.Set("min_bedrooms", strconv.Itoa(f.MinBedrooms))
	}
	if f.Bounds != nil {
		values.Set("bounds", formatBounds(f.Bounds))
	}
	return values
}

// IsZero reports whether the filter has no constraints at all.
func (f Filter) IsZero() bool {
	return f.Query == "" && f.City == "" && f.Category == "" &&
		f.MinRent == 0 && f.MaxRent == 0 && f.MinBedrooms == 0 && f.Bounds == nil
}

// parseBounds reads "minLon,minLat,maxLon,maxLat".
func parseBounds(s string) (*orb.Bound, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("bounds wants 4 coordinates, got %d", len(parts))
	}
	coords := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		coords[i] = v
	}
	bound := orb.Bound{
		Min: orb.Point{coords[0], coords[1]},
		Max: orb.Point{coords[2], coords[3]},
	}
	return &bound, nil
}

func formatBounds(b *orb.Bound) string {
	return fmt.Sprintf("%g,%g,%g,%g", b.Min[0], b.Min[1], b.Max[0], b.Max[1])
}
