package domain

import "time"

// Card defaults. The card is simulated: there is no issuer integration,
// so every card shares a fixed brand and limit.
const (
	CardBrand = "Visa"
	CardLimit = 500_000 // R$ 5.000,00

	MinChargeAmount    = 2_000  // R$ 20,00
	MaxChargeAmount    = 50_000 // R$ 500,00
	MinChargesPerCycle = 3
	MaxChargesPerCycle = 6
)

// ChargeCatalog is the fixed set of merchant descriptions used when
// seeding a billing cycle.
var ChargeCatalog = []string{
	"Uber",
	"iFood",
	"Netflix",
	"Spotify",
	"Amazon",
	"Padaria Central",
	"Posto Shell",
	"Farmácia Popular",
}

// CreditCard is the per-account card record. InvoiceAmount is a
// denormalized sum of unpaid charges, recomputed inside the same
// transaction as any charge mutation.
type CreditCard struct {
	ID            string
	AccountID     string
	Brand         string
	Last4         string
	Limit         int64
	InvoiceAmount int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AvailableLimit is computed at read time, never stored.
func (c *CreditCard) AvailableLimit() int64 {
	return c.Limit - c.InvoiceAmount
}

// CardCharge is a single line item on a card invoice. The paid flag
// flips false to true exactly once, as part of paying the invoice.
type CardCharge struct {
	ID          string
	CardID      string
	Description string
	Amount      int64
	Paid        bool
	CreatedAt   time.Time
}

// SumUnpaid totals the unpaid charges of a slice.
func SumUnpaid(charges []*CardCharge) int64 {
	var total int64
	for _, c := range charges {
		if !c.Paid {
			total += c.Amount
		}
	}
	return total
}
