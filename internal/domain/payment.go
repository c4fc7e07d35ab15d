package domain

// PaymentKind is the closed set of payment method variants.
type PaymentKind string

const (
	PaymentCard      PaymentKind = "card"
	PaymentPayPal    PaymentKind = "paypal"
	PaymentApplePay  PaymentKind = "apple-pay"
	PaymentGooglePay PaymentKind = "google-pay"
)

func ParsePaymentKind(s string) (PaymentKind, bool) {
	switch k := PaymentKind(s); k {
	case PaymentCard, PaymentPayPal, PaymentApplePay, PaymentGooglePay:
		return k, true
	}
	return "", false
}

func (k PaymentKind) DisplayName() string {
	switch k {
	case PaymentCard:
		return "Credit/Debit Card"
	case PaymentPayPal:
		return "PayPal"
	case PaymentApplePay:
		return "Apple Pay"
	case PaymentGooglePay:
		return "Google Pay"
	}
	return string(k)
}

func (k PaymentKind) Icon() string {
	switch k {
	case PaymentCard:
		return "💳"
	case PaymentPayPal:
		return "🅿️"
	case PaymentApplePay:
		return "🍎"
	case PaymentGooglePay:
		return "🔵"
	}
	return ""
}

// DefaultPaymentLabel names the payment of an order whose method is unknown.
const DefaultPaymentLabel = "Credit Card"

type PaymentMethod struct {
	ID        string      `json:"id"`
	Kind      PaymentKind `json:"type"`
	Name      string      `json:"name"`
	IsDefault bool        `json:"is_default"`
}

func (m PaymentMethod) Label() string {
	if m.Name != "" {
		return m.Name
	}
	return m.Kind.DisplayName()
}

func (m PaymentMethod) Icon() string { return m.Kind.Icon() }

func DefaultPaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		{ID: "card-1", Kind: PaymentCard, Name: PaymentCard.DisplayName(), IsDefault: true},
		{ID: "paypal-1", Kind: PaymentPayPal, Name: PaymentPayPal.DisplayName()},
		{ID: "apple-pay-1", Kind: PaymentApplePay, Name: PaymentApplePay.DisplayName()},
		{ID: "google-pay-1", Kind: PaymentGooglePay, Name: PaymentGooglePay.DisplayName()},
	}
}
