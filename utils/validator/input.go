package validatorx

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/yogapit/eshop/model"
)

const DefaultSanitizeLength = 500

var (
	angleBracketRe = regexp.MustCompile(`[<>]`)
	jsSchemeRe     = regexp.MustCompile(`(?i)javascript:`)
	eventHandlerRe = regexp.MustCompile(`(?i)on\w+=`)

	emailRe   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe   = regexp.MustCompile(`^[\d\s+\-()]+$`)
	nameRe    = regexp.MustCompile(`^[a-zA-Z\x{00C0}-\x{00FF}\x{0100}-\x{017F}\x{0180}-\x{024F}\s.\-']+$`)
	addressRe = regexp.MustCompile(`^[a-zA-Z\x{00C0}-\x{00FF}\x{0100}-\x{017F}\x{0180}-\x{024F}0-9\s.\-,']+$`)
	zipRe     = regexp.MustCompile(`^[\d\s]+$`)

	maxPrice = decimal.NewFromInt(10000)
)

// SanitizeString strips markup-like substrings and cuts the result to maxLength runes.
func SanitizeString(input string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultSanitizeLength
	}
	s := strip(input)
	if utf8.RuneCountInString(s) > maxLength {
		s = string([]rune(s)[:maxLength])
	}
	return s
}

// SanitizeCustomer sanitizes every string field of a customer form in place.
func SanitizeCustomer(c *model.CustomerData) {
	c.Name = SanitizeString(c.Name, 0)
	c.Email = SanitizeString(c.Email, 0)
	c.Phone = SanitizeString(c.Phone, 0)
	c.Address = SanitizeString(c.Address, 0)
	c.City = SanitizeString(c.City, 0)
	c.ZipCode = SanitizeString(c.ZipCode, 0)
	c.Country = SanitizeString(c.Country, 0)
}

func strip(input string) string {
	s := angleBracketRe.ReplaceAllString(input, "")
	s = jsSchemeRe.ReplaceAllString(s, "")
	s = eventHandlerRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func ValidateEmail(email string) bool {
	if email == "" {
		return false
	}
	return emailRe.MatchString(strings.TrimSpace(email)) && utf8.RuneCountInString(email) <= 254
}

func ValidatePhone(phone string) bool {
	if phone == "" {
		return false
	}
	return phoneRe.MatchString(strings.TrimSpace(phone)) && utf8.RuneCountInString(phone) <= 20
}

func ValidateName(name string) bool {
	if name == "" {
		return false
	}
	n := utf8.RuneCountInString(name)
	return nameRe.MatchString(strings.TrimSpace(name)) && n >= 2 && n <= 100
}

func ValidateAddress(address string) bool {
	if address == "" {
		return false
	}
	n := utf8.RuneCountInString(address)
	return addressRe.MatchString(strings.TrimSpace(address)) && n >= 5 && n <= 200
}

func ValidateZipCode(zip string) bool {
	if zip == "" {
		return false
	}
	n := utf8.RuneCountInString(zip)
	return zipRe.MatchString(strings.TrimSpace(zip)) && n >= 3 && n <= 10
}

// ValidateQuantity allows 1..1000 pieces per line.
func ValidateQuantity(quantity int) bool {
	return quantity > 0 && quantity <= 1000
}

// ValidatePrice allows 0..10000 EUR.
func ValidatePrice(price decimal.Decimal) bool {
	return !price.IsNegative() && price.LessThanOrEqual(maxPrice)
}

func ValidateOrderNotes(notes string) bool {
	if notes == "" {
		return true
	}
	return utf8.RuneCountInString(strip(notes)) <= 1000
}
