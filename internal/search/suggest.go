package search

import "strings"

// Suggester models the city type-ahead list: a set of matches and one
// highlighted index. Arrow keys move the highlight, Enter commits it,
// Escape dismisses the list. Committing after n MoveDown calls yields the
// same value as selecting the nth suggestion directly.
type Suggester struct {
	cities      []string
	matches     []string
	highlighted int
}

func NewSuggester(cities []string) *Suggester {
	return &Suggester{cities: cities, highlighted: -1}
}

// SetInput recomputes the match list for the typed prefix/substring and
// resets the highlight. Empty input dismisses the list.
func (s *Suggester) SetInput(input string) {
	s.matches = s.matches[:0]
	s.highlighted = -1
	if input == "" {
		return
	}
	q := strings.ToLower(input)
	for _, city := range s.cities {
		if strings.Contains(strings.ToLower(city), q) {
			s.matches = append(s.matches, city)
		}
	}
}

// Matches returns the current suggestion list.
func (s *Suggester) Matches() []string {
	return s.matches
}

// Highlighted returns the highlighted index, -1 when nothing is
// highlighted.
func (s *Suggester) Highlighted() int {
	return s.highlighted
}

// MoveDown advances the highlight, stopping at the last suggestion.
func (s *Suggester) MoveDown() {
	if len(s.matches) == 0 {
		return
	}
	if s.highlighted < len(s.matches)-1 {
		s.highlighted++
	}
}

// MoveUp retreats the highlight, stopping at the first suggestion.
func (s *Suggester) MoveUp() {
	if s.highlighted > 0 {
		s.highlighted--
	}
}

// Commit returns the highlighted suggestion and dismisses the list. With no
// highlight it returns ("", false) and leaves the list alone, matching an
// Enter press before any arrow key.
func (s *Suggester) Commit() (string, bool) {
	if s.highlighted < 0 || s.highlighted >= len(s.matches) {
		return "", false
	}
	city := s.matches[s.highlighted]
	s.Dismiss()
	return city, true
}

// Select commits the suggestion at index i directly, the click path.
func (s *Suggester) Select(i int) (string, bool) {
	if i < 0 || i >= len(s.matches) {
		return "", false
	}
	city := s.matches[i]
	s.Dismiss()
	return city, true
}

// Dismiss clears the list, the Escape/blur path.
func (s *Suggester) Dismiss() {
	s.matches = nil
	s.highlighted = -1
}
