package common

// Privacy gates whether an entity is visible on unauthenticated read
// paths. PRIVATE-PREV allows preview links without public listing.
type Privacy string

const (
	PrivacyPrivate        Privacy = "PRIVATE"
	PrivacyPrivatePreview Privacy = "PRIVATE-PREV"
	PrivacyPublic         Privacy = "PUBLIC"
)

func (p Privacy) Valid() bool {
	switch p {
	case PrivacyPrivate, PrivacyPrivatePreview, PrivacyPublic:
		return true
	}
	return false
}
