package seating

// Selection is an ordered set of seat labels, in the order they were picked.
type Selection struct {
	labels []string
	index  map[string]struct{}
}

func (s *Selection) Contains(label string) bool {
	_, ok := s.index[label]
	return ok
}

// Add appends label and reports whether it was new.
func (s *Selection) Add(label string) bool {
	if s.Contains(label) {
		return false
	}
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	s.index[label] = struct{}{}
	s.labels = append(s.labels, label)
	return true
}

// Remove drops label and reports whether it was present.
func (s *Selection) Remove(label string) bool {
	if !s.Contains(label) {
		return false
	}
	delete(s.index, label)
	for i, l := range s.labels {
		if l == label {
			s.labels = append(s.labels[:i], s.labels[i+1:]...)
			break
		}
	}
	return true
}

// Toggle flips label and returns its new state.
func (s *Selection) Toggle(label string) bool {
	if s.Remove(label) {
		return false
	}
	s.Add(label)
	return true
}

func (s *Selection) Len() int { return len(s.labels) }

// Labels returns a copy of the selected labels.
func (s *Selection) Labels() []string {
	out := make([]string, len(s.labels))
	copy(out, s.labels)
	return out
}

func (s *Selection) Clear() {
	s.labels = nil
	s.index = nil
}

type DragMode int

const (
	DragNone DragMode = iota
	DragSelect
	DragDeselect
)

func (m DragMode) String() string {
	switch m {
	case DragSelect:
		return "select"
	case DragDeselect:
		return "deselect"
	}
	return ""
}

// Selector is the click and drag state machine over a Selection.
//
// A press flips the pressed seat and fixes the gesture mode from that seat's
// state before the press: select if it was unselected, deselect otherwise.
// Seats entered while the gesture lasts are only ever added (select) or only
// ever removed (deselect). The gesture ends on Release.
type Selector struct {
	selection Selection
	mode      DragMode
}

// Click flips label outside any gesture and returns its new state.
func (s *Selector) Click(label string) bool {
	return s.selection.Toggle(label)
}

func (s *Selector) Press(label string) {
	if s.selection.Contains(label) {
		s.mode = DragDeselect
	} else {
		s.mode = DragSelect
	}
	s.selection.Toggle(label)
}

// Enter applies the current gesture to label and reports whether the
// selection changed.
func (s *Selector) Enter(label string) bool {
	switch s.mode {
	case DragSelect:
		return s.selection.Add(label)
	case DragDeselect:
		return s.selection.Remove(label)
	}
	return false
}

func (s *Selector) Release() {
	s.mode = DragNone
}

func (s *Selector) Dragging() bool { return s.mode != DragNone }

func (s *Selector) Mode() DragMode { return s.mode }

func (s *Selector) IsSelected(label string) bool { return s.selection.Contains(label) }

func (s *Selector) Selected() []string { return s.selection.Labels() }

func (s *Selector) Len() int { return s.selection.Len() }

func (s *Selector) Clear() {
	s.selection.Clear()
	s.mode = DragNone
}

type SeatState string

const (
	SeatAvailable SeatState = "available"
	SeatBlocked   SeatState = "blocked"
	SeatSelected  SeatState = "selected"
)

// StateOf derives how a seat renders. Selection wins over availability, so a
// blocked seat can be staged for UNBLOCK like any other.
func StateOf(label string, status StatusMap, selected bool) SeatState {
	if selected {
		return SeatSelected
	}
	if status.Blocked(label) {
		return SeatBlocked
	}
	return SeatAvailable
}
