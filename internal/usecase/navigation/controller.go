// Package navigation implements the cursor state machine over a composed
// result set.
package navigation

// CommitKind says what an Enter keypress resolved to.
type CommitKind string

// Commit kinds.
const (
	// None means the keypress committed nothing.
	None CommitKind = "none"
	// Candidate commits navigation to the candidate under the cursor.
	Candidate CommitKind = "candidate"
	// FullText commits a full-text search navigation for the typed query.
	FullText CommitKind = "full_text"
)

// Commit is the outcome of an Enter keypress.
type Commit struct {
	Kind  CommitKind
	Index int    // candidate index, valid for Kind == Candidate
	Query string // raw query, valid for Kind == FullText
}

// Controller tracks (dropdownOpen, cursor) over the current result set.
// The cursor stays within [-1, length-1]; -1 means nothing selected.
type Controller struct {
	length       int
	cursor       int
	dropdownOpen bool
}

// New creates a controller with no results and nothing selected.
func New() *Controller {
	return &Controller{cursor: -1}
}

// SetLength registers a result set replacement. The cursor resets to -1
// unconditionally so it can never point into a stale list.
func (c *Controller) SetLength(n int) {
	if n < 0 {
		n = 0
	}
	c.length = n
	c.cursor = -1
}

// Down moves the cursor toward the end of the list and opens the dropdown.
func (c *Controller) Down() {
	c.dropdownOpen = true
	if c.cursor < c.length-1 {
		c.cursor++
	}
}

// Up moves the cursor toward -1.
func (c *Controller) Up() {
	if c.cursor > -1 {
		c.cursor--
	}
}

// Enter commits the highlighted candidate, or a full-text search when
// nothing is highlighted and the query is non-empty. Either commit closes
// the dropdown and resets the cursor.
func (c *Controller) Enter(rawQuery string) Commit {
	if c.cursor >= 0 {
		idx := c.cursor
		c.reset()
		return Commit{Kind: Candidate, Index: idx}
	}
	if rawQuery != "" {
		c.reset()
		return Commit{Kind: FullText, Query: rawQuery}
	}
	return Commit{Kind: None, Index: -1}
}

// Escape closes the dropdown and resets the cursor. The caller is expected
// to blur the input.
func (c *Controller) Escape() {
	c.reset()
}

func (c *Controller) reset() {
	c.dropdownOpen = false
	c.cursor = -1
}

// Cursor returns the current cursor position.
func (c *Controller) Cursor() int { return c.cursor }

// DropdownOpen reports whether the result dropdown is open.
func (c *Controller) DropdownOpen() bool { return c.dropdownOpen }
