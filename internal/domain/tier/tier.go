package tier

import "strings"

// Tier is a subscription level controlling how much of another entity's data a
// viewer may see.
type Tier string

const (
	Basic   Tier = "BASIC"
	Premium Tier = "PREMIUM"
)

// Normalize maps an arbitrary claim value onto a known tier. Unknown values
// collapse to Basic so a bad claim can never widen visibility.
func Normalize(raw string) Tier {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(Premium):
		return Premium
	default:
		return Basic
	}
}
