package api

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var couponCodePattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, "couponcode", func(fl validator.FieldLevel) bool {
		return couponCodePattern.MatchString(fl.Field().String())
	})
	return v
}

// mustRegister adds a custom tag and panics when the registration is
// rejected.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("registering validation %q: %v", tag, err))
	}
}

// ValidateCouponInput checks a coupon before it is sent (client) or stored
// (fixture server). now anchors the expiry check.
func ValidateCouponInput(in CouponInput, now time.Time) error {
	var msgs []string
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validating coupon: %w", err)
		}
		for _, fe := range verrs {
			msgs = append(msgs, couponFieldMessage(fe))
		}
	}
	if in.DiscountType == DiscountPercent && in.Amount > 100 {
		msgs = append(msgs, "percent discount cannot exceed 100")
	}
	if !in.ExpiresAt.IsZero() && !in.ExpiresAt.After(now) {
		msgs = append(msgs, "expiry must be in the future")
	}
	if len(msgs) == 0 {
		return nil
	}
	return errors.New(strings.Join(msgs, "; "))
}

func couponFieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Code":
		return "code must be 3-32 letters, digits or dashes"
	case "DiscountType":
		return "discount type must be percent or fixed"
	case "Amount":
		return "amount must be greater than zero"
	case "UsageLimit":
		return "usage limit cannot be negative"
	case "ExpiresAt":
		return "expiry is required"
	case "ProductMode", "UserMode":
		return strings.ToLower(fe.Field()[:1]) + fe.Field()[1:] + " must be include or except"
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
