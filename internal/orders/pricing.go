package orders

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Devaraju89/OneKart-sub000/pkg/config"
)

// Pricing recomputes order money fields on the server. Client-supplied
// totals are ignored entirely, so a tampered request body cannot buy a
// discount.
type Pricing struct {
	taxRate               decimal.Decimal
	shippingFee           decimal.Decimal
	freeShippingThreshold decimal.Decimal
}

// Quote is the server-side price breakdown for a set of line items.
type Quote struct {
	ItemsPrice    decimal.Decimal
	TaxPrice      decimal.Decimal
	ShippingPrice decimal.Decimal
	TotalPrice    decimal.Decimal
}

// NewPricing parses the configured rates. Rates are configured as strings so
// the values survive env transport without float drift.
func NewPricing(cfg config.OrdersConfig) (*Pricing, error) {
	taxRate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil {
		return nil, fmt.Errorf("parsing tax rate %q: %w", cfg.TaxRate, err)
	}
	shippingFee, err := decimal.NewFromString(cfg.ShippingFee)
	if err != nil {
		return nil, fmt.Errorf("parsing shipping fee %q: %w", cfg.ShippingFee, err)
	}
	threshold, err := decimal.NewFromString(cfg.FreeShippingThreshold)
	if err != nil {
		return nil, fmt.Errorf("parsing free shipping threshold %q: %w", cfg.FreeShippingThreshold, err)
	}
	return &Pricing{
		taxRate:               taxRate,
		shippingFee:           shippingFee,
		freeShippingThreshold: threshold,
	}, nil
}

// QuoteItems computes the breakdown for the given line items. Tax is rounded
// to two decimal places before totalling.
func (p *Pricing) QuoteItems(items []CreateOrderItem) Quote {
	itemsPrice := decimal.Zero
	for _, item := range items {
		itemsPrice = itemsPrice.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Qty))))
	}

	taxPrice := itemsPrice.Mul(p.taxRate).Round(2)

	shippingPrice := p.shippingFee
	if itemsPrice.GreaterThanOrEqual(p.freeShippingThreshold) {
		shippingPrice = decimal.Zero
	}

	return Quote{
		ItemsPrice:    itemsPrice,
		TaxPrice:      taxPrice,
		ShippingPrice: shippingPrice,
		TotalPrice:    itemsPrice.Add(taxPrice).Add(shippingPrice),
	}
}
