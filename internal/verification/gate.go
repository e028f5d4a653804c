package verification

import (
	"time"

	"github.com/ostaapp/osta-backend/pkg/db/models"
	"github.com/ostaapp/osta-backend/pkg/enums"
)

// IsEligible reports whether the provider may accept bookings at the given
// instant. A verified profile with an expiry at or before now is treated as
// expired even if the stored status has not been swept yet.
func IsEligible(profile *models.ProviderProfile, now time.Time) bool {
	if profile == nil {
		return false
	}
	if profile.VerificationStatus != enums.VerificationStatusVerified {
		return false
	}
	if profile.VerificationExpiry != nil && !profile.VerificationExpiry.After(now) {
		return false
	}
	return true
}
