package emaillist

import (
	"fmt"
	"net/mail"
	"strings"
)

const (
	StatusInvalid     = "invalid"
	StatusDisplayName = "display-name"
	StatusDuplicate   = "duplicate"
)

// Validate checks every entry of list as an RFC 5322 address. The list itself
// is never modified; results come back in entry order.
func Validate(list List) []ValidationResult {
	var results []ValidationResult
	seen := make(map[string]int, len(list))

	for i, entry := range list {
		raw := string(entry)

		addr, err := mail.ParseAddress(raw)
		switch {
		case err != nil:
			results = append(results, ValidationResult{
				Index:  i,
				Entry:  entry,
				Status: StatusInvalid,
				Detail: err.Error(),
			})
		case addr.Address != raw:
			// Parses, but the mailing provider only wants the bare address.
			results = append(results, ValidationResult{
				Index:  i,
				Entry:  entry,
				Status: StatusDisplayName,
				Detail: "bare address is " + addr.Address,
			})
		}

		key := strings.ToLower(raw)
		if addr != nil {
			key = strings.ToLower(addr.Address)
		}
		if first, exists := seen[key]; exists {
			results = append(results, ValidationResult{
				Index:  i,
				Entry:  entry,
				Status: StatusDuplicate,
				Detail: fmt.Sprintf("same as entry %d", first),
			})
			continue
		}
		seen[key] = i
	}

	return results
}
