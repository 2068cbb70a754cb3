package validatorx

import (
	"reflect"
	"sync"

	gpvalidator "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	v   *gpvalidator.Validate
	mut sync.Mutex
)

// Init initializes the validator singleton (idempotent)
func Init() {
	mut.Lock()
	defer mut.Unlock()
	if v != nil {
		return
	}
	nv := gpvalidator.New()

	// decimals are validated as float64 so numeric tags (price, gte) apply
	nv.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	_ = nv.RegisterValidation("person_name", func(fl gpvalidator.FieldLevel) bool {
		return ValidateName(fl.Field().String())
	})
	_ = nv.RegisterValidation("shop_email", func(fl gpvalidator.FieldLevel) bool {
		return ValidateEmail(fl.Field().String())
	})
	_ = nv.RegisterValidation("phone", func(fl gpvalidator.FieldLevel) bool {
		return ValidatePhone(fl.Field().String())
	})
	_ = nv.RegisterValidation("address", func(fl gpvalidator.FieldLevel) bool {
		return ValidateAddress(fl.Field().String())
	})
	_ = nv.RegisterValidation("zip_code", func(fl gpvalidator.FieldLevel) bool {
		return ValidateZipCode(fl.Field().String())
	})
	_ = nv.RegisterValidation("quantity", func(fl gpvalidator.FieldLevel) bool {
		return ValidateQuantity(int(fl.Field().Int()))
	})
	_ = nv.RegisterValidation("price", func(fl gpvalidator.FieldLevel) bool {
		return ValidatePrice(decimal.NewFromFloat(fl.Field().Float()))
	})
	_ = nv.RegisterValidation("order_notes", func(fl gpvalidator.FieldLevel) bool {
		return ValidateOrderNotes(fl.Field().String())
	})
	v = nv
}

// ValidateStruct validates a struct using go-playground/validator
func ValidateStruct(s interface{}) error {
	if v == nil {
		Init()
	}
	return v.Struct(s)
}

// FirstField returns the struct field name of the first failed rule, if any.
func FirstField(err error) string {
	verrs, ok := err.(gpvalidator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return ""
	}
	return verrs[0].Field()
}
