package delivery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yogapit/eshop/constant"
	"github.com/yogapit/eshop/model"
)

const (
	CountrySlovakia = "Slovensko"
	CountryCzechia  = "Česko"

	ProviderPost    = "pošta"
	ProviderPacketa = "Packeta"
)

type Pricing struct {
	Provider      string          `json:"provider"`
	WeightRange   string          `json:"weight_range"`
	BasePrice     decimal.Decimal `json:"base_price"`
	CustomerPrice decimal.Decimal `json:"customer_price"`
	MaxDimensions string          `json:"max_dimensions"`
	Description   string          `json:"description"`
}

type CountryOptions struct {
	Country   string    `json:"country"`
	Providers []Pricing `json:"providers"`
	Notes     string    `json:"notes"`
}

type Quote struct {
	Method   constant.DeliveryMethod `json:"method"`
	Country  string                  `json:"country"`
	WeightKg float64                 `json:"weight_kg"`
	Price    decimal.Decimal         `json:"price"`
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Table is the carrier price list per destination country.
var Table = []CountryOptions{
	{
		Country: CountrySlovakia,
		Providers: []Pricing{
			{Provider: "Slovenská pošta", WeightRange: "Do 2 kg", BasePrice: price("2.50"), CustomerPrice: price("3.50"), MaxDimensions: "23,5 x 12 cm (obálka) alebo 25 x 35 x 3 cm (ploché/zvinuté)", Description: "doporučený list"},
			{Provider: "Slovenská pošta", WeightRange: "2kg-5kg", BasePrice: price("3.90"), CustomerPrice: price("5.00"), MaxDimensions: "Max 150 cm pre akýkoľvek rozmer alebo 300 cm (dĺžka + obvod)", Description: "balík"},
			{Provider: "Slovenská pošta", WeightRange: "5kg-10kg", BasePrice: price("4.30"), CustomerPrice: price("6.00"), MaxDimensions: "Max 150 cm pre akýkoľvek rozmer alebo 300 cm (dĺžka + obvod)", Description: "balík"},
			{Provider: "Slovenská pošta", WeightRange: "10kg-15kg", BasePrice: price("7.50"), CustomerPrice: price("10.00"), MaxDimensions: "Max 200 cm pre akýkoľvek rozmer alebo 300 cm (dĺžka + obvod)", Description: "Express kuriér"},
			{Provider: "Packeta Slovensko", WeightRange: "Do 5 kg", BasePrice: price("3.40"), CustomerPrice: price("4.50"), MaxDimensions: "50 x 40 x 30 cm", Description: "balík"},
			{Provider: "Packeta Slovensko", WeightRange: "5kg-15kg", BasePrice: price("5.60"), CustomerPrice: price("7.50"), MaxDimensions: "60 x 50 x 40 cm", Description: "balík"},
		},
		Notes: "Pre zásielky do 2 kg sa používa Slovenská pošta, inak sa preferuje Packeta. Zásielky nad 15 kg sa riešia individuálne.",
	},
	{
		Country: CountryCzechia,
		Providers: []Pricing{
			{Provider: "Packeta Česko", WeightRange: "Do 5 kg", BasePrice: price("4.10"), CustomerPrice: price("5.00"), MaxDimensions: "50 x 40 x 30 cm", Description: "balík"},
			{Provider: "Packeta Česko", WeightRange: "5kg-15kg", BasePrice: price("7.70"), CustomerPrice: price("9.50"), MaxDimensions: "60 x 50 x 40 cm", Description: "balík"},
		},
		Notes: "Do Česka posielame výlučne cez Packeta. Zásielky nad 15 kg sa riešia individuálne.",
	},
}

var (
	upToRegexp  = regexp.MustCompile(`\d+`)
	rangeRegexp = regexp.MustCompile(`(\d+)kg-(\d+)kg`)
)

// Options lists the tiers for a country, nil when the country is not served.
func Options(country string) []Pricing {
	for _, c := range Table {
		if c.Country == country {
			return c.Providers
		}
	}
	return nil
}

// ParseWeightRange turns "Do 5 kg" into [0,5] and "5kg-15kg" into [5,15].
// Unknown formats yield [0,0].
func ParseWeightRange(weightRange string) (float64, float64) {
	if strings.Contains(weightRange, "Do") {
		hi, _ := strconv.ParseFloat(upToRegexp.FindString(weightRange), 64)
		return 0, hi
	}
	if m := rangeRegexp.FindStringSubmatch(weightRange); m != nil {
		lo, _ := strconv.ParseFloat(m[1], 64)
		hi, _ := strconv.ParseFloat(m[2], 64)
		return lo, hi
	}
	return 0, 0
}

// Price is the customer price of the first tier of the provider whose range
// contains weightKg, or zero when none does. An empty provider matches any.
func Price(country string, weightKg float64, provider string) decimal.Decimal {
	for _, opt := range Options(country) {
		if provider != "" && !strings.Contains(opt.Provider, provider) {
			continue
		}
		lo, hi := ParseWeightRange(opt.WeightRange)
		if weightKg >= lo && weightKg <= hi {
			return opt.CustomerPrice
		}
	}
	return decimal.Zero
}

func providerFor(method constant.DeliveryMethod) string {
	switch method {
	case constant.DeliveryMethodPost:
		return ProviderPost
	case constant.DeliveryMethodPacketa:
		return ProviderPacketa
	}
	return ""
}

// QuotePrice prices a delivery method; personal pickup is free.
func QuotePrice(method constant.DeliveryMethod, country string, weightKg float64) Quote {
	q := Quote{Method: method, Country: country, WeightKg: weightKg, Price: decimal.Zero}
	if method == constant.DeliveryMethodPersonal {
		return q
	}
	q.Price = Price(country, weightKg, providerFor(method))
	return q
}

// CartWeightKg sums item weights, counting DefaultItemWeightGram for products without one.
func CartWeightKg(lines []model.CartLine) float64 {
	var grams int64
	for _, l := range lines {
		w := l.WeightGrams
		if w <= 0 {
			w = constant.DefaultItemWeightGram
		}
		grams += w * l.Quantity
	}
	return float64(grams) / 1000
}
