package settings

import (
	"fmt"
	"strconv"
)

func (s *Settings) value(field string) string {
	switch field {
	case FieldEnableTestMode:
		return strconv.FormatBool(s.EnableTestMode)
	case FieldLiveAPIKey:
		return s.LiveAPIKey
	case FieldTestAPIKey:
		return s.TestAPIKey
	case FieldWebhookID:
		return s.WebhookID
	case FieldPostPaymentOrderStatus:
		return strconv.Itoa(int(s.PostPaymentOrderStatus))
	case FieldThemeBackground:
		return s.Theme.BackgroundColor
	case FieldThemeFormBackground:
		return s.Theme.FormBackgroundColor
	case FieldThemePrimary:
		return s.Theme.PrimaryColor
	case FieldThemeText:
		return s.Theme.TextColor
	}
	return ""
}

func (s *Settings) apply(field, value string) error {
	switch field {
	case FieldEnableTestMode:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		s.EnableTestMode = b
	case FieldLiveAPIKey:
		s.LiveAPIKey = value
	case FieldTestAPIKey:
		s.TestAPIKey = value
	case FieldWebhookID:
		s.WebhookID = value
	case FieldPostPaymentOrderStatus:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		p := PostPaymentPolicy(n)
		if !p.Valid() {
			return fmt.Errorf("%s: unknown policy %d", field, n)
		}
		s.PostPaymentOrderStatus = p
	case FieldThemeBackground:
		s.Theme.BackgroundColor = value
	case FieldThemeFormBackground:
		s.Theme.FormBackgroundColor = value
	case FieldThemePrimary:
		s.Theme.PrimaryColor = value
	case FieldThemeText:
		s.Theme.TextColor = value
	default:
		return fmt.Errorf("unknown setting %q", field)
	}
	return nil
}
