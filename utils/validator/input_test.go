package validatorx_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/yogapit/eshop/model"
	validatorx "github.com/yogapit/eshop/utils/validator"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "simple address", input: "a@b.com", want: true},
		{name: "surrounding spaces are trimmed", input: "  test@example.com ", want: true},
		{name: "missing at sign", input: "not-an-email", want: false},
		{name: "missing tld", input: "a@b", want: false},
		{name: "empty", input: "", want: false},
		{name: "too long", input: strings.Repeat("a", 250) + "@b.com", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validatorx.ValidateEmail(tt.input))
		})
	}
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, validatorx.ValidatePhone("+421 123 456 789"))
	assert.True(t, validatorx.ValidatePhone("123456789"))
	assert.True(t, validatorx.ValidatePhone("(02) 123-456"))
	assert.False(t, validatorx.ValidatePhone("abc123"))
	assert.False(t, validatorx.ValidatePhone(""))
	assert.False(t, validatorx.ValidatePhone(strings.Repeat("1", 21)))
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "slovak diacritics", input: "Ján Novák", want: true},
		{name: "latin extended", input: "Ľubomír Šťastný", want: true},
		{name: "apostrophe and dot", input: "J. O'Neil", want: true},
		{name: "too short", input: "A", want: false},
		{name: "too long", input: strings.Repeat("A", 101), want: false},
		{name: "max length", input: strings.Repeat("A", 100), want: true},
		{name: "digits", input: "Agent 007", want: false},
		{name: "markup", input: "<b>Ján</b>", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validatorx.ValidateName(tt.input))
		})
	}
}

func TestValidateAddressAndZip(t *testing.T) {
	assert.True(t, validatorx.ValidateAddress("Hlavná 123, Bratislava"))
	assert.False(t, validatorx.ValidateAddress("Ulic"))
	assert.False(t, validatorx.ValidateAddress(strings.Repeat("A", 201)))
	assert.False(t, validatorx.ValidateAddress("Hlavná 1; DROP"))

	assert.True(t, validatorx.ValidateZipCode("831 03"))
	assert.True(t, validatorx.ValidateZipCode("83103"))
	assert.False(t, validatorx.ValidateZipCode("abc123"))
	assert.False(t, validatorx.ValidateZipCode("12"))
	assert.False(t, validatorx.ValidateZipCode("12345678901"))
}

func TestValidateQuantity(t *testing.T) {
	tests := []struct {
		input int
		want  bool
	}{
		{input: -1, want: false},
		{input: 0, want: false},
		{input: 1, want: true},
		{input: 1000, want: true},
		{input: 1001, want: false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, validatorx.ValidateQuantity(tt.input), "quantity %d", tt.input)
	}
}

func TestValidatePrice(t *testing.T) {
	tests := []struct {
		input decimal.Decimal
		want  bool
	}{
		{input: decimal.NewFromInt(-1), want: false},
		{input: decimal.Zero, want: true},
		{input: decimal.RequireFromString("10.50"), want: true},
		{input: decimal.NewFromInt(10000), want: true},
		{input: decimal.RequireFromString("10000.01"), want: false},
		{input: decimal.NewFromInt(10001), want: false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, validatorx.ValidatePrice(tt.input), "price %s", tt.input)
	}
}

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "script tags", input: `<script>alert("xss")</script>Hello`, maxLen: 500, want: `scriptalert("xss")/scriptHello`},
		{name: "javascript scheme any case", input: `JavaScript:alert(1)`, maxLen: 500, want: `alert(1)`},
		{name: "event handler", input: `img onerror=alert(1)`, maxLen: 500, want: `img alert(1)`},
		{name: "trims", input: "  hello  ", maxLen: 500, want: "hello"},
		{name: "cuts by runes", input: "ľščťžýáí", maxLen: 3, want: "ľšč"},
		{name: "default length", input: strings.Repeat("x", 600), maxLen: 0, want: strings.Repeat("x", 500)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validatorx.SanitizeString(tt.input, tt.maxLen))
		})
	}
}

func TestSanitizeCustomer(t *testing.T) {
	c := model.CustomerData{
		Name:    "  Jana <b>Nováková</b> ",
		Email:   " jana@example.sk ",
		Address: "Hlavná 1 onclick=x",
		City:    "Žilina",
	}
	validatorx.SanitizeCustomer(&c)

	assert.Equal(t, "Jana bNováková/b", c.Name)
	assert.Equal(t, "jana@example.sk", c.Email)
	assert.Equal(t, "Hlavná 1 x", c.Address)
	assert.Equal(t, "Žilina", c.City)
	assert.Empty(t, c.Phone)
}

func TestValidateOrderNotes(t *testing.T) {
	assert.True(t, validatorx.ValidateOrderNotes(""))
	assert.True(t, validatorx.ValidateOrderNotes("Please ring twice"))
	assert.True(t, validatorx.ValidateOrderNotes(strings.Repeat("a", 1000)+"<>"))
	assert.False(t, validatorx.ValidateOrderNotes(strings.Repeat("a", 1001)))
}

func TestValidateStruct_CustomTags(t *testing.T) {
	type payload struct {
		Name     string          `validate:"required,person_name"`
		Email    string          `validate:"required,shop_email"`
		Quantity int             `validate:"quantity"`
		Price    decimal.Decimal `validate:"price"`
	}

	ok := payload{Name: "Ján Novák", Email: "jan@example.com", Quantity: 2, Price: decimal.RequireFromString("10.5")}
	assert.NoError(t, validatorx.ValidateStruct(&ok))

	bad := ok
	bad.Quantity = 0
	err := validatorx.ValidateStruct(&bad)
	assert.Error(t, err)
	assert.Equal(t, "Quantity", validatorx.FirstField(err))

	bad = ok
	bad.Price = decimal.NewFromInt(10001)
	err = validatorx.ValidateStruct(&bad)
	assert.Error(t, err)
	assert.Equal(t, "Price", validatorx.FirstField(err))
}
