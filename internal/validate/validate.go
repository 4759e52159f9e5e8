package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	inErrors "github.com/Alturino/storefront/internal/errors"
)

const pricePlaces = 2

var (
	phonePattern      = regexp.MustCompile(`^(0(5\d|7\d)\d{7}|0[23489]\d{7})$`)
	postalCodePattern = regexp.MustCompile(`^\d{7}$`)
	idNumberPattern   = regexp.MustCompile(`^\d{5,9}$`)

	once     sync.Once
	validate *validator.Validate
)

// Get returns the shared validator. Field names in errors are the json names.
func Get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
		v.RegisterCustomTypeFunc(DecimalValue, decimal.Decimal{})
		_ = v.RegisterValidation("price", ValidatePrice)
		_ = v.RegisterValidation("il_phone", ValidatePhone)
		_ = v.RegisterValidation("postal_code", ValidatePostalCode)
		_ = v.RegisterValidation("il_id", ValidateIDNumber)
		validate = v
	})
	return validate
}

// DecimalValue lets tags on decimal.Decimal fields see the amount as a
// string.
func DecimalValue(v reflect.Value) interface{} {
	d, ok := v.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	return d.String()
}

// ValidatePrice accepts zero and positive amounts in whole minor units.
func ValidatePrice(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return !d.IsNegative() && d.Equal(d.Truncate(pricePlaces))
}

func NormalizePhone(phone string) string {
	phone = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
	if rest, ok := strings.CutPrefix(phone, "+972"); ok {
		phone = "0" + rest
	}
	return phone
}

func ValidatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(NormalizePhone(fl.Field().String()))
}

func ValidatePostalCode(fl validator.FieldLevel) bool {
	return postalCodePattern.MatchString(strings.TrimSpace(fl.Field().String()))
}

func ValidateIDNumber(fl validator.FieldLevel) bool {
	return IsValidIDNumber(fl.Field().String())
}

// IsValidIDNumber checks the length and the check digit of a national id.
// Short ids are left padded with zeros.
func IsValidIDNumber(id string) bool {
	id = strings.TrimSpace(id)
	if !idNumberPattern.MatchString(id) {
		return false
	}
	id = fmt.Sprintf("%09s", id)
	sum := 0
	for i, r := range id {
		d := int(r-'0') * (i%2 + 1)
		if d > 9 {
			d -= 9
		}
		sum += d
	}
	return sum%10 == 0
}

// Struct validates s and turns validator failures into a field level
// *errors.ValidationError.
func Struct(s interface{}) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("failed validating request with error=%w", err)
	}
	fields := make([]inErrors.FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, inErrors.FieldError{Field: fieldName(fe), Message: message(fe)})
	}
	return inErrors.NewValidationError(fields...)
}

func fieldName(fe validator.FieldError) string {
	_, name, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Field()
	}
	return name
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "il_phone":
		return "must be a valid phone number"
	case "postal_code":
		return "must be 7 digits"
	case "il_id":
		return "must be a valid id number"
	case "price":
		return "must not be negative and have at most 2 decimal places"
	case "gte", "min":
		return "must be at least " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "dive":
		return "is invalid"
	default:
		return "failed on " + fe.Tag()
	}
}
