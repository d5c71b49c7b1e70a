package input

// Context provides context for input processing.
type Context struct {
	// Mode is the current mode (normal, select).
	Mode string

	// FileType is the current file type (go, python, etc.).
	FileType string

	// FilePath is the path of the current file.
	FilePath string

	// HasSelection indicates whether there is an active selection.
	HasSelection bool

	// PendingCount is the accumulated count prefix.
	PendingCount int
}

// NewContext creates a new input context in normal mode.
func NewContext() *Context {
	return &Context{Mode: "normal"}
}

// Clone returns a copy of the context.
func (c *Context) Clone() *Context {
	clone := *c
	return &clone
}

// ClearPending clears the pending count.
func (c *Context) ClearPending() {
	c.PendingCount = 0
}

// HasPendingCount returns true if a count prefix has been entered.
func (c *Context) HasPendingCount() bool {
	return c.PendingCount > 0
}

// GetCount returns the pending count, or 1 if no count is set.
func (c *Context) GetCount() int {
	if c.PendingCount <= 0 {
		return 1
	}
	return c.PendingCount
}

// AccumulateCount adds a digit to the pending count.
func (c *Context) AccumulateCount(digit int) {
	if digit < 0 || digit > 9 {
		return
	}
	c.PendingCount = c.PendingCount*10 + digit
}
