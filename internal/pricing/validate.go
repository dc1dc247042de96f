package pricing

// ValidateInput checks a forward-calculator input and returns human-readable
// error strings suitable for direct display. UI layers call this before
// quoting; Calculate enforces the same constraints independently.
func ValidateInput(in Input) []string {
	var errs []string

	if !in.SellerDesiredAmount.IsPositive() {
		errs = append(errs, "Seller desired amount must be greater than 0")
	}
	if in.AffiliateRate.IsNegative() {
		errs = append(errs, "Affiliate rate cannot be negative")
	}
	if in.AffiliateType.Normalize() == CommissionPercentage && in.AffiliateRate.GreaterThan(hundred) {
		errs = append(errs, "Affiliate percentage cannot exceed 100%")
	}
	if in.AffiliateType.Normalize() == CommissionFlatRate &&
		in.AffiliateRate.GreaterThan(in.SellerDesiredAmount.Mul(two)) {
		errs = append(errs, "Affiliate flat rate seems unusually high compared to seller amount")
	}

	return errs
}
