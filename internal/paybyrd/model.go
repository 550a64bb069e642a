package paybyrd

type Shopper struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type OrderOptions struct {
	Culture     string `json:"culture"`
	RedirectURL string `json:"redirectUrl"`
}

type TokenOptions struct {
	CustomReference string `json:"customReference"`
}

type PaymentOptions struct {
	UseSimulated bool         `json:"useSimulated"`
	TokenOptions TokenOptions `json:"tokenOptions"`
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	Amount         Amount         `json:"amount"`
	Currency       string         `json:"currency"`
	OrderRef       string         `json:"orderRef"`
	Shopper        Shopper        `json:"shopper"`
	OrderOptions   OrderOptions   `json:"orderOptions"`
	PaymentOptions PaymentOptions `json:"paymentOptions"`
}

type CreateOrderResponse struct {
	OrderID     string `json:"orderId"`
	CheckoutKey string `json:"checkoutKey"`
}

func (r *CreateOrderResponse) validate() error {
	if r.OrderID == "" || r.CheckoutKey == "" {
		return malformed("orderId and checkoutKey are required")
	}
	return nil
}

// TransactionStatusSuccess marks a captured transaction that can be refunded.
const TransactionStatusSuccess = "Success"

type Transaction struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
}

type Order struct {
	OrderID      string        `json:"orderId"`
	OrderRef     string        `json:"orderRef"`
	Status       string        `json:"status"`
	Transactions []Transaction `json:"transactions"`
}

func (o *Order) validate() error {
	if o.OrderRef == "" || o.Status == "" {
		return malformed("orderRef and status are required")
	}
	return nil
}

// FirstSuccessfulTransaction returns the first transaction, in provider
// order, whose status is exactly "Success".
func (o *Order) FirstSuccessfulTransaction() (Transaction, bool) {
	for _, tx := range o.Transactions {
		if tx.Status == TransactionStatusSuccess {
			return tx, true
		}
	}
	return Transaction{}, false
}

type RefundRequest struct {
	ISOAmount int64 `json:"isoAmount"`
}

const CredentialTypeAPIKey = "api-key"

// DefaultWebhookEvents are the order events the service subscribes to.
var DefaultWebhookEvents = []string{
	"order.paid",
	"order.canceled",
	"order.refunded",
	"order.error",
	"order.pending",
}

type WebhookSubscriptionRequest struct {
	URL            string   `json:"url"`
	CredentialType string   `json:"credentialType"`
	Events         []string `json:"events"`
	PaymentMethods []string `json:"paymentMethods"`
}

type WebhookSubscription struct {
	Data struct {
		Credential struct {
			APIKey string `json:"apiKey"`
		} `json:"credential"`
	} `json:"data"`
}

func (s *WebhookSubscription) validate() error {
	if s.Data.Credential.APIKey == "" {
		return malformed("data.credential.apiKey is required")
	}
	return nil
}

// APIKey is the shared secret Paybyrd will send in x-api-key on every
// webhook delivery for this subscription.
func (s *WebhookSubscription) APIKey() string {
	return s.Data.Credential.APIKey
}
