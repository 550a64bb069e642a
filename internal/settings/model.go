package settings

// PostPaymentPolicy picks the order status applied after a live payment.
type PostPaymentPolicy int

const (
	PolicyProcessing PostPaymentPolicy = 0
	PolicyComplete   PostPaymentPolicy = 1
)

func (p PostPaymentPolicy) Valid() bool {
	return p == PolicyProcessing || p == PolicyComplete
}

func (p PostPaymentPolicy) String() string {
	if p == PolicyComplete {
		return "complete"
	}
	return "processing"
}

// Theme colors forwarded to the hosted payment form.
type Theme struct {
	BackgroundColor     string `json:"backgroundColor"`
	FormBackgroundColor string `json:"formBackgroundColor"`
	PrimaryColor        string `json:"primaryColor"`
	TextColor           string `json:"textColor"`
}

// Settings is the resolved Paybyrd configuration for one store scope. It is
// loaded once per request and treated as read-only afterwards.
type Settings struct {
	EnableTestMode         bool              `json:"enableTestMode"`
	LiveAPIKey             string            `json:"liveApiKey"`
	TestAPIKey             string            `json:"testApiKey"`
	WebhookID              string            `json:"webhookId"`
	PostPaymentOrderStatus PostPaymentPolicy `json:"postPaymentOrderStatus"`
	Theme                  Theme             `json:"theme"`
}

// Defaults are the values a fresh install starts with.
func Defaults() *Settings {
	return &Settings{
		PostPaymentOrderStatus: PolicyProcessing,
		Theme: Theme{
			BackgroundColor:     "#dbdbdb",
			FormBackgroundColor: "#ffffff",
			PrimaryColor:        "#dbdbdb",
			TextColor:           "#2c2c2c",
		},
	}
}

// APIKey is the key every provider call made on behalf of a shopper or
// operator uses: the test key iff test mode is enabled.
func (s *Settings) APIKey() string {
	if s.EnableTestMode {
		return s.TestAPIKey
	}
	return s.LiveAPIKey
}

// Field names as stored in the settings table.
const (
	FieldEnableTestMode         = "paybyrd.enable_test_mode"
	FieldLiveAPIKey             = "paybyrd.live_api_key"
	FieldTestAPIKey             = "paybyrd.test_api_key"
	FieldWebhookID              = "paybyrd.webhook_id"
	FieldPostPaymentOrderStatus = "paybyrd.post_payment_order_status"
	FieldThemeBackground        = "paybyrd.hf_background_color"
	FieldThemeFormBackground    = "paybyrd.hf_payment_background_color"
	FieldThemePrimary           = "paybyrd.hf_primary_color"
	FieldThemeText              = "paybyrd.hf_text_color"
)

// Fields lists every stored field in the order Save writes them.
var Fields = []string{
	FieldLiveAPIKey,
	FieldTestAPIKey,
	FieldPostPaymentOrderStatus,
	FieldEnableTestMode,
	FieldWebhookID,
	FieldThemeBackground,
	FieldThemeFormBackground,
	FieldThemePrimary,
	FieldThemeText,
}

// Overrides marks which fields a store scope overrides instead of inheriting
// from the default scope (0).
type Overrides map[string]bool
