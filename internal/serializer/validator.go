package serializer

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/erazemk/storeapi/internal/model"
)

// Wire field names.
const (
	FieldName         = "name"
	FieldItemNumber   = "item_number"
	FieldPrice        = "price"
	FieldQuantity     = "quantity"
	FieldDateAcquired = "date_acquired"
)

// Violation messages.
const (
	MsgRequired          = "This field is required."
	MsgNameTaken         = "An item with this name already exists."
	MsgItemNumberTaken   = "An item with this item number already exists."
	MsgQuantityTooLarge  = "Quantity cannot be over 5000."
	MsgDateInFuture      = "Date cannot be in the future."
	MsgPriceMaxDigits    = "Ensure that there are no more than 10 digits in total."
	MsgPriceMaxDecimals  = "Ensure that there are no more than 2 decimal places."
	MsgPriceWholeDigits  = "Ensure that there are no more than 8 digits before the decimal point."
	msgNameMaxLengthTmpl = "Ensure this field has no more than %s characters."
)

// Finder looks up stored items by exact column value.
type Finder interface {
	FindByField(ctx context.Context, field string, value any) ([]model.Item, error)
}

// Validator turns an ItemInput into an Item, checking every rule.
type Validator struct {
	Finder Finder

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// Location is the time zone "today" is computed in. Defaults to UTC.
	Location *time.Location

	validate *validator.Validate
}

// NewValidator returns a Validator that checks uniqueness against finder.
func NewValidator(finder Finder, loc *time.Location) *Validator {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{
		Finder:   finder,
		Now:      time.Now,
		Location: loc,
		validate: validate,
	}
}

// Build validates in and returns the item to persist. existing is the record
// being replaced on update and nil on create. On rule failures the error is
// Violations holding every failure; any other error comes from the Finder.
func (v *Validator) Build(ctx context.Context, in ItemInput, existing *model.Item) (*model.Item, error) {
	violations := Violations{}
	v.checkTags(in, violations)

	if !violations.Has(FieldName) {
		taken, err := v.taken(ctx, FieldName, *in.Name, existing)
		if err != nil {
			return nil, err
		}
		if taken {
			violations.Add(FieldName, MsgNameTaken)
		}
	}

	if !violations.Has(FieldItemNumber) {
		taken, err := v.taken(ctx, FieldItemNumber, *in.ItemNumber, existing)
		if err != nil {
			return nil, err
		}
		if taken {
			violations.Add(FieldItemNumber, MsgItemNumberTaken)
		}
	}

	if !violations.Has(FieldPrice) {
		for _, msg := range checkPrecision(*in.Price) {
			violations.Add(FieldPrice, msg)
		}
	}

	if !violations.Has(FieldQuantity) && *in.Quantity > model.MaxQuantity {
		violations.Add(FieldQuantity, MsgQuantityTooLarge)
	}

	if !violations.Has(FieldDateAcquired) && in.DateAcquired.After(v.today()) {
		violations.Add(FieldDateAcquired, MsgDateInFuture)
	}

	if len(violations) > 0 {
		return nil, violations
	}

	item := &model.Item{
		Name:         *in.Name,
		ItemNumber:   *in.ItemNumber,
		Price:        *in.Price,
		Quantity:     *in.Quantity,
		DateAcquired: *in.DateAcquired,
	}
	if existing != nil {
		item.ID = existing.ID
	}
	return item, nil
}

// checkTags applies the struct tag rules of ItemInput.
func (v *Validator) checkTags(in ItemInput, violations Violations) {
	err := v.validate.Struct(in)
	if err == nil {
		return
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		// Only returned for invalid arguments, which ItemInput never is.
		panic(fmt.Sprintf("validating item input: %v", err))
	}

	for _, fe := range fieldErrors {
		switch fe.Tag() {
		case "required":
			violations.Add(fe.Field(), MsgRequired)
		case "max":
			violations.Add(fe.Field(), fmt.Sprintf(msgNameMaxLengthTmpl, fe.Param()))
		default:
			violations.Add(fe.Field(), fmt.Sprintf("Failed the %q rule.", fe.Tag()))
		}
	}
}

// taken reports whether another item already uses value in field. The item
// being updated does not conflict with itself.
func (v *Validator) taken(ctx context.Context, field string, value any, existing *model.Item) (bool, error) {
	matches, err := v.Finder.FindByField(ctx, field, value)
	if err != nil {
		return false, fmt.Errorf("checking %s uniqueness: %w", field, err)
	}
	for _, m := range matches {
		if existing != nil && m.ID == existing.ID {
			continue
		}
		return true, nil
	}
	return false, nil
}

func (v *Validator) today() model.Date {
	now := time.Now
	if v.Now != nil {
		now = v.Now
	}
	loc := v.Location
	if loc == nil {
		loc = time.UTC
	}
	return model.NewDate(now().In(loc))
}

// checkPrecision enforces the stored price precision on the literal value,
// so "9.990" has three decimal places even though it equals 9.99.
func checkPrecision(price decimal.Decimal) []string {
	digits := len(new(big.Int).Abs(price.Coefficient()).String())
	exp := int(price.Exponent())

	var total, whole, places int
	switch {
	case exp >= 0:
		total = digits + exp
		whole = total
	case digits > -exp:
		total = digits
		places = -exp
		whole = total - places
	default:
		places = -exp
		total = places
	}

	var msgs []string
	if total > model.PriceMaxDigits {
		msgs = append(msgs, MsgPriceMaxDigits)
	}
	if places > model.PriceDecimalPlace {
		msgs = append(msgs, MsgPriceMaxDecimals)
	}
	if whole > model.PriceMaxDigits-model.PriceDecimalPlace {
		msgs = append(msgs, MsgPriceWholeDigits)
	}
	return msgs
}

// DuplicateViolation reports a unique index conflict on field the same way
// the uniqueness rules do.
func DuplicateViolation(field string) Violations {
	violations := Violations{}
	switch field {
	case FieldItemNumber:
		violations.Add(FieldItemNumber, MsgItemNumberTaken)
	default:
		violations.Add(FieldName, MsgNameTaken)
	}
	return violations
}
