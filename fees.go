package casafolio

// FeeSchedule describes the tariff applied by a Moroccan broker to equity
// orders: brokerage and settlement commissions (each with a floor), the
// flat SBVC stock-exchange fee, VAT on the commissions, and the TPCVM
// capital-gains tax rate. EstimatedTotalRate is a blended percentage used
// only for break-even projections.
type FeeSchedule struct {
	BrokerageRate      float64 // pre-tax (HT) rate on gross amount
	BrokerageMin       float64 // floor, in MAD
	SettlementRate     float64 // règlement/livraison rate
	SettlementMin      float64
	ClearingRate       float64 // SBVC stock-exchange fee, no floor
	VATRate            float64 // VAT applied on the HT commission total
	CapitalGainsRate   float64 // TPCVM on positive gains
	EstimatedTotalRate float64 // blended VAT-inclusive rate for break-even
}

// CasablancaFees is the standard tariff grid for the Casablanca Stock
// Exchange: brokerage 0.60% HT (min 7.50), settlement 0.20% HT (min 2.50),
// SBVC 0.10% HT, VAT 10%, TPCVM 15%.
var CasablancaFees = FeeSchedule{
	BrokerageRate:      0.006,
	BrokerageMin:       7.50,
	SettlementRate:     0.002,
	SettlementMin:      2.50,
	ClearingRate:       0.001,
	VATRate:            0.10,
	CapitalGainsRate:   0.15,
	EstimatedTotalRate: (0.006 + 0.002 + 0.001) * 1.10,
}

// StandardFees computes the VAT-inclusive transaction fees on a gross
// order amount: brokerage and settlement commissions with their floors
// applied, plus the SBVC fee, all grossed up by VAT.
func (f FeeSchedule) StandardFees(grossAmount float64) float64 {
	brokerage := max(grossAmount*f.BrokerageRate, f.BrokerageMin)
	settlement := max(grossAmount*f.SettlementRate, f.SettlementMin)
	clearing := grossAmount * f.ClearingRate

	totalHT := brokerage + settlement + clearing
	return totalHT * (1 + f.VATRate)
}

// TaxOnGain computes the TPCVM capital-gains tax. Losses are not taxed.
func (f FeeSchedule) TaxOnGain(gain float64) float64 {
	if gain <= 0 {
		return 0
	}
	return gain * f.CapitalGainsRate
}

// BreakEvenPrice returns the price at which selling would net zero P&L
// after estimated fees: the price where price*(1-rate) covers the cost
// basis. A schedule with a blended rate at or above 100% fails safe by
// returning the cost basis unchanged.
func (f FeeSchedule) BreakEvenPrice(costBasis float64) float64 {
	denominator := 1 - f.EstimatedTotalRate
	if denominator <= 0 {
		return costBasis
	}
	return costBasis / denominator
}
