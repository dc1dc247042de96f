package pricing

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormattedBreakdown holds display-ready currency strings for each party.
type FormattedBreakdown struct {
	Seller    string `json:"seller"`
	Affiliate string `json:"affiliate"`
	Referral  string `json:"referral"`
	Platform  string `json:"platform"`
	Processor string `json:"processor"`
	Tax       string `json:"tax"`
	Total     string `json:"total"`
}

// FormatBreakdown renders a breakdown as locale-aware currency strings.
// Unknown currency codes fall back to USD; it never fails.
func FormatBreakdown(b *Breakdown, currencyCode string) FormattedBreakdown {
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		unit = currency.USD
	}

	p := message.NewPrinter(language.AmericanEnglish)
	f := func(d decimal.Decimal) string {
		return p.Sprintf("%v", currency.Symbol(unit.Amount(d.InexactFloat64())))
	}

	return FormattedBreakdown{
		Seller:    f(b.SellerAmount),
		Affiliate: f(b.AffiliateAmount),
		Referral:  f(b.ReferralAmount),
		Platform:  f(b.PlatformFee),
		Processor: f(b.ProcessorFee),
		Tax:       f(b.TaxAmount),
		Total:     f(b.ListingPrice),
	}
}
