package usecase

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/bancodemo/api/internal/domain"
)

// RandomChargeGenerator synthesizes card charges for a new billing
// cycle: 3 to 6 line items from the merchant catalog, each between
// R$ 20,00 and R$ 500,00.
type RandomChargeGenerator struct {
	idGen IDGenerator
}

// NewRandomChargeGenerator creates a new RandomChargeGenerator.
func NewRandomChargeGenerator(idGen IDGenerator) *RandomChargeGenerator {
	return &RandomChargeGenerator{idGen: idGen}
}

// NewCycle produces a fresh unpaid batch for the card.
func (g *RandomChargeGenerator) NewCycle(cardID string, now time.Time) []*domain.CardCharge {
	count := domain.MinChargesPerCycle + rand.IntN(domain.MaxChargesPerCycle-domain.MinChargesPerCycle+1)

	charges := make([]*domain.CardCharge, 0, count)
	for range count {
		charges = append(charges, &domain.CardCharge{
			ID:          g.idGen.Generate(),
			CardID:      cardID,
			Description: domain.ChargeCatalog[rand.IntN(len(domain.ChargeCatalog))],
			Amount:      domain.MinChargeAmount + rand.Int64N(domain.MaxChargeAmount-domain.MinChargeAmount+1),
			Paid:        false,
			CreatedAt:   now,
		})
	}

	return charges
}

// randomLast4 picks the printed card suffix, 1000-9999.
func randomLast4() string {
	return fmt.Sprintf("%04d", 1000+rand.IntN(9000))
}
