package cli

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/couchcryptid/climate-history-service/internal/domain"
	"github.com/go-playground/validator/v10"
)

const tagIntervalOrder = "interval_order"

type intervalRequest struct {
	FromMonth int `label:"start month" validate:"gte=1,lte=12"`
	FromYear  int `label:"start year" validate:"gte=1,lte=9999"`
	ToMonth   int `label:"end month" validate:"gte=1,lte=12"`
	ToYear    int `label:"end year" validate:"gte=1,lte=9999"`
}

func (r intervalRequest) from() domain.YearMonth {
	return domain.YearMonth{Year: r.FromYear, Month: time.Month(r.FromMonth)}
}

func (r intervalRequest) to() domain.YearMonth {
	return domain.YearMonth{Year: r.ToYear, Month: time.Month(r.ToMonth)}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("label")
	})
	v.RegisterStructValidation(validateIntervalOrder, intervalRequest{})
	return v
}

func validateIntervalOrder(sl validator.StructLevel) {
	req := sl.Current().Interface().(intervalRequest)
	if domain.ValidateInterval(req.from(), req.to()) != nil {
		sl.ReportError(req.ToYear, "end", "ToYear", tagIntervalOrder, "")
	}
}

// describeInvalid turns a validation failure into the message shown to the user.
func describeInvalid(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid interval: " + err.Error()
	}

	fe := verrs[0]
	switch fe.Tag() {
	case tagIntervalOrder:
		return "Invalid interval: start is after end."
	case "gte":
		return fmt.Sprintf("Invalid interval: %s must be at least %s.", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("Invalid interval: %s must be at most %s.", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("Invalid interval: %s failed %s.", fe.Field(), fe.Tag())
	}
}
