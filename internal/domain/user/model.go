package user

import "github.com/pitchlink/stats-engine/internal/domain/tier"

// Principal is the authenticated caller as resolved by the account service.
// The routing layer authorizes the token; the core only ever sees the stable
// entity identifier and the subscription tier claim.
type Principal struct {
	EntityID string
	Email    string
	Tier     tier.Tier
}
