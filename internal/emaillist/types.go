package emaillist

// Entry is one normalized line of an address list. It is treated as an
// opaque token; nothing guarantees it is a valid address.
type Entry string

// List keeps entries in file order.
type List []Entry

// Partition is a List cut at a fixed index.
type Partition struct {
	First List
	Rest  List
}

// ValidationResult represents a problem found in a single entry
type ValidationResult struct {
	Index  int    `json:"index"`
	Entry  Entry  `json:"entry"`
	Status string `json:"status"` // "invalid", "display-name", "duplicate"
	Detail string `json:"detail,omitempty"`
}

// Strings returns the entries as plain strings.
func (l List) Strings() []string {
	out := make([]string, len(l))
	for i, e := range l {
		out[i] = string(e)
	}
	return out
}
