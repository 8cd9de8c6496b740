package service

import (
	"context"

	razorpay "github.com/razorpay/razorpay-go"
)

const (
	defaultOrderAmount   = 200 // smallest currency unit
	defaultOrderCurrency = "INR"
	defaultOrderReceipt  = "receipt#1"
)

// orderAPI is the slice of the Razorpay client the service uses,
// kept as an interface so tests can stub the gateway.
type orderAPI interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

type PaymentService struct {
	orders orderAPI
}

func NewPaymentService(keyID, keySecret string) *PaymentService {
	client := razorpay.NewClient(keyID, keySecret)
	return &PaymentService{orders: client.Order}
}

// CreateOrder creates a payment order with the gateway, falling back to
// the standard amount/currency/receipt when none is supplied.
func (s *PaymentService) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (map[string]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if amount <= 0 {
		amount = defaultOrderAmount
	}
	if currency == "" {
		currency = defaultOrderCurrency
	}
	if receipt == "" {
		receipt = defaultOrderReceipt
	}

	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}
	return s.orders.Create(data, nil)
}
