package settings

import "strings"

const maskPrefix = "****"

// mask keeps the last four characters of v. Short values are hidden fully.
func mask(v string) string {
	if v == "" {
		return ""
	}
	if len(v) <= 4 {
		return maskPrefix
	}
	return maskPrefix + v[len(v)-4:]
}

// IsMasked reports whether v is a value produced by Masked rather than a
// secret typed by an operator.
func IsMasked(v string) bool {
	return strings.HasPrefix(v, maskPrefix)
}

// Masked returns a copy safe to send to the admin UI: API keys and the
// webhook shared secret keep only their last four characters.
func (s *Settings) Masked() *Settings {
	out := *s
	out.LiveAPIKey = mask(s.LiveAPIKey)
	out.TestAPIKey = mask(s.TestAPIKey)
	out.WebhookID = mask(s.WebhookID)
	return &out
}

// RestoreSecrets replaces masked API keys with the stored ones, so a form
// posted back unchanged does not overwrite the real keys.
func (s *Settings) RestoreSecrets(stored *Settings) {
	if IsMasked(s.LiveAPIKey) {
		s.LiveAPIKey = stored.LiveAPIKey
	}
	if IsMasked(s.TestAPIKey) {
		s.TestAPIKey = stored.TestAPIKey
	}
}
