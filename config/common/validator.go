package common

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// NewValidator reports fields by their json name, or their query name for
// query-string DTOs, and lets numeric tags such as gt=0 apply to decimal
// amounts.
func NewValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(fieldName)
	validate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, decimal.NullDecimal{})
	return validate
}

func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "query"} {
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return field.Name
}

func decimalValue(field reflect.Value) interface{} {
	switch value := field.Interface().(type) {
	case decimal.Decimal:
		f, _ := value.Float64()
		return f
	case decimal.NullDecimal:
		if !value.Valid {
			return nil
		}
		f, _ := value.Decimal.Float64()
		return f
	}
	return nil
}
