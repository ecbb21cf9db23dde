package payment

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/glamflow/salon-scheduler/internal/httperr"
)

type MercadoPagoGateway struct {
	preferences preference.Client
	payments    mppayment.Client
}

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPagoGateway{
		preferences: preference.NewClient(cfg),
		payments:    mppayment.NewClient(cfg),
	}, nil
}

func (g *MercadoPagoGateway) CreateOrder(
	ctx context.Context,
	orderID string,
	amount float64,
	currency string,
	customerRef string,
	phone string,
) (string, error) {

	req := preference.Request{
		ExternalReference: orderID,
		Items: []preference.ItemRequest{
			{
				Title:      "Salon appointment",
				Quantity:   1,
				UnitPrice:  amount,
				CurrencyID: currency,
			},
		},
		Payer: &preference.PayerRequest{
			Name:  customerRef,
			Phone: &preference.PhoneRequest{Number: phone},
		},
	}

	resp, err := g.preferences.Create(ctx, req)
	if err != nil {
		return "", httperr.ErrUpstream("gateway_order_failed")
	}

	return resp.ID, nil
}

func (g *MercadoPagoGateway) GetPaymentStatus(
	ctx context.Context,
	orderID string,
) (string, error) {

	resp, err := g.payments.Search(ctx, mppayment.SearchRequest{
		Filters: map[string]string{
			"external_reference": orderID,
		},
	})
	if err != nil {
		return "", httperr.ErrUpstream("gateway_status_failed")
	}

	for _, p := range resp.Results {
		if p.Status == "approved" {
			return StatusSuccess, nil
		}
	}

	if len(resp.Results) > 0 {
		return resp.Results[0].Status, nil
	}
	return "not_found", nil
}

// Compile-time check
var _ Gateway = (*MercadoPagoGateway)(nil)
