package response

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// copyOptions teaches copier how entity field types map onto the string
// fields of the response structs.
var copyOptions = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: uuid.UUID{},
			DstType: copier.String,
			Fn: func(src interface{}) (interface{}, error) {
				id, ok := src.(uuid.UUID)
				if !ok {
					return nil, fmt.Errorf("expected uuid.UUID, got %T", src)
				}
				return id.String(), nil
			},
		},
		{
			SrcType: decimal.Decimal{},
			DstType: copier.String,
			Fn: func(src interface{}) (interface{}, error) {
				d, ok := src.(decimal.Decimal)
				if !ok {
					return nil, fmt.Errorf("expected decimal.Decimal, got %T", src)
				}
				return Money(d), nil
			},
		},
	},
}

func copyInto(to, from interface{}) error {
	return copier.CopyWithOption(to, from, copyOptions)
}

// Money renders an amount with two decimal places.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
