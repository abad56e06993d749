package pricing

import (
	"github.com/shopspring/decimal"

	domainErrors "github.com/artisanscorner/storefront/internal/domain/errors"
	"github.com/artisanscorner/storefront/internal/domain/model"
)

// All amounts are int64 paise. Rupees exist only at the presentation edge.

// DefaultTaxRate is 18% GST expressed in basis points.
const DefaultTaxRate = 1800

// Totals is the canonical price breakdown of an order.
type Totals struct {
	ItemsPrice    int64
	TaxPrice      int64
	ShippingPrice int64
	TotalPrice    int64
}

// ItemsTotal sums unit price times quantity over the snapshots.
// Any non-positive price or quantity invalidates the whole order.
func ItemsTotal(items []model.OrderItem) (int64, error) {
	if len(items) == 0 {
		return 0, domainErrors.ErrEmptyOrder
	}
	var sum int64
	for _, item := range items {
		if item.UnitPrice <= 0 || item.Quantity <= 0 {
			return 0, domainErrors.ErrInvalidAmount
		}
		sum += item.UnitPrice * int64(item.Quantity)
	}
	return sum, nil
}

// Quote computes the authoritative totals for a set of items with the given
// tax rate (basis points) and flat shipping fee.
func Quote(items []model.OrderItem, taxRateBasisPoints int64, shippingFee int64) (Totals, error) {
	itemsPrice, err := ItemsTotal(items)
	if err != nil {
		return Totals{}, err
	}
	if taxRateBasisPoints < 0 || shippingFee < 0 {
		return Totals{}, domainErrors.ErrInvalidAmount
	}
	tax := Tax(itemsPrice, taxRateBasisPoints)
	return Totals{
		ItemsPrice:    itemsPrice,
		TaxPrice:      tax,
		ShippingPrice: shippingFee,
		TotalPrice:    itemsPrice + tax + shippingFee,
	}, nil
}

// Tax returns the tax amount on itemsPrice at the given rate, rounded to the
// nearest paisa half-up.
func Tax(itemsPrice, taxRateBasisPoints int64) int64 {
	rate := decimal.NewFromInt(taxRateBasisPoints).Div(decimal.NewFromInt(10000))
	return decimal.NewFromInt(itemsPrice).Mul(rate).Round(0).IntPart()
}

// Consistent reports whether the submitted totals satisfy
// total = items + tax + shipping with non-negative components.
func Consistent(t Totals) bool {
	if t.ItemsPrice < 0 || t.TaxPrice < 0 || t.ShippingPrice < 0 {
		return false
	}
	return t.TotalPrice == t.ItemsPrice+t.TaxPrice+t.ShippingPrice
}

// Rupees formats a paise amount as a rupee string ("1297.00").
// Presentation only; stored amounts stay in paise.
func Rupees(paise int64) string {
	return decimal.NewFromInt(paise).Div(decimal.NewFromInt(100)).StringFixed(2)
}
