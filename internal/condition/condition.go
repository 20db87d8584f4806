// Package condition aggregates keyed fault and warning entries into a single
// reported health level.
//
// A Condition is owned by one goroutine (the sampler). Readers get copies via
// Entries and State.
package condition

// Level is the severity of a condition entry, ordered so that a larger value
// is more severe.
type Level int

const (
	Normal Level = iota
	Warning
	Fault
)

func (l Level) String() string {
	switch l {
	case Normal:
		return "NORMAL"
	case Warning:
		return "WARNING"
	case Fault:
		return "FAULT"
	default:
		return "UNAVAILABLE"
	}
}

// MarshalText encodes the level by name.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Entry is one active warning or fault, identified by NativeCode.
type Entry struct {
	Level      Level  `json:"level"`
	NativeCode string `json:"native_code"`
	Message    string `json:"message"`
	Qualifier  string `json:"qualifier,omitempty"`
	Subtype    string `json:"subtype,omitempty"`
}

// Option sets an optional field on an asserted entry.
type Option func(*Entry)

// WithQualifier sets the entry qualifier (for example HIGH or LOW).
func WithQualifier(q string) Option {
	return func(e *Entry) {
		e.Qualifier = q
	}
}

// WithSubtype sets the entry subtype.
func WithSubtype(s string) Option {
	return func(e *Entry) {
		e.Subtype = s
	}
}

// Condition is a named health indicator.
type Condition struct {
	name    string
	entries []Entry
}

// New returns a Condition with no active entries.
func New(name string) *Condition {
	return &Condition{name: name}
}

func (c *Condition) Name() string {
	return c.name
}

// AssertFault activates, or replaces, the fault entry for nativeCode.
func (c *Condition) AssertFault(nativeCode, message string, opts ...Option) {
	c.assert(Fault, nativeCode, message, opts)
}

// AssertWarning activates, or replaces, the warning entry for nativeCode.
func (c *Condition) AssertWarning(nativeCode, message string, opts ...Option) {
	c.assert(Warning, nativeCode, message, opts)
}

func (c *Condition) assert(level Level, nativeCode, message string, opts []Option) {
	entry := Entry{
		Level:      level,
		NativeCode: nativeCode,
		Message:    message,
	}
	for _, opt := range opts {
		opt(&entry)
	}

	for i := range c.entries {
		if c.entries[i].NativeCode == nativeCode {
			c.entries[i] = entry
			return
		}
	}

	c.entries = append(c.entries, entry)
}

// Clear removes the entry for nativeCode, if present, and reports whether it did.
func (c *Condition) Clear(nativeCode string) bool {
	for i := range c.entries {
		if c.entries[i].NativeCode == nativeCode {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return true
		}
	}

	return false
}

// SetNormal removes every active entry.
func (c *Condition) SetNormal() {
	c.entries = nil
}

// Level returns the highest severity among active entries, or Normal.
func (c *Condition) Level() Level {
	level := Normal
	for _, e := range c.entries {
		if e.Level > level {
			level = e.Level
		}
	}

	return level
}

// Len returns the number of active entries.
func (c *Condition) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the active entries in assertion order.
func (c *Condition) Entries() []Entry {
	if len(c.entries) == 0 {
		return nil
	}

	out := make([]Entry, len(c.entries))
	copy(out, c.entries)

	return out
}

// State is a point-in-time copy of a Condition.
type State struct {
	Name    string  `json:"name"`
	Level   Level   `json:"level"`
	Entries []Entry `json:"entries,omitempty"`
}

// State copies the condition.
func (c *Condition) State() State {
	return State{
		Name:    c.name,
		Level:   c.Level(),
		Entries: c.Entries(),
	}
}

// NativeCodes lists the codes of the active entries.
func (s State) NativeCodes() []string {
	codes := make([]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		codes = append(codes, e.NativeCode)
	}

	return codes
}
