package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// DiscountType represents how a discount value is interpreted
type DiscountType int

const (
	DiscountTypePercentage DiscountType = 1
	DiscountTypeAmount     DiscountType = 2
)

func (t DiscountType) String() string {
	if t == DiscountTypeAmount {
		return "Amount"
	}
	return "Percentage"
}

func (t DiscountType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *DiscountType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = DiscountType(i)
		return nil
	}
	switch str {
	case "Amount":
		*t = DiscountTypeAmount
	default:
		*t = DiscountTypePercentage
	}
	return nil
}

func (t DiscountType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *DiscountType) Scan(value interface{}) error {
	if value == nil {
		*t = DiscountTypePercentage
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = DiscountType(v)
	case int:
		*t = DiscountType(v)
	}
	return nil
}
