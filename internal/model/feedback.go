// Package model defines domain entities for the application.
package model

// VoteDirection is the direction of a single vote on an entry.
type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

// IsValid checks if the direction is exactly "up" or "down".
func (d VoteDirection) IsValid() bool {
	return d == VoteUp || d == VoteDown
}

// Delta returns the change a vote in this direction applies to an entry.
// Invalid directions apply no change.
func (d VoteDirection) Delta() int {
	switch d {
	case VoteUp:
		return 1
	case VoteDown:
		return -1
	default:
		return 0
	}
}

// Entry represents a single piece of submitted feedback.
type Entry struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Votes   int    `json:"votes"`
}

// Apply adjusts the vote count by one in the given direction.
// There is no floor or ceiling on the count.
func (e *Entry) Apply(d VoteDirection) {
	e.Votes += d.Delta()
}

// Collection is the ordered set of all entries, in insertion order.
type Collection []Entry

// IndexOf returns the position of the entry with the given ID, or -1.
func (c Collection) IndexOf(id string) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns a pointer into the collection for the entry with the given ID.
func (c Collection) Find(id string) (*Entry, bool) {
	i := c.IndexOf(id)
	if i < 0 {
		return nil, false
	}
	return &c[i], true
}

// Remove returns the collection without the entry with the given ID.
// The second return value reports whether anything was removed.
func (c Collection) Remove(id string) (Collection, bool) {
	out := make(Collection, 0, len(c))
	for _, e := range c {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out, len(out) != len(c)
}

// Clone returns a copy that shares no backing array with c.
// A nil collection clones to an empty, non-nil one so it encodes as [].
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	copy(out, c)
	return out
}
