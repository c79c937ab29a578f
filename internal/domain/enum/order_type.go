package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderType represents the service mode of an order
type OrderType int

const (
	OrderTypeDineIn    OrderType = 0
	OrderTypePickup    OrderType = 1
	OrderTypeDelivery  OrderType = 2
	OrderTypeQuickBill OrderType = 3
)

func (t OrderType) String() string {
	switch t {
	case OrderTypePickup:
		return "Pickup"
	case OrderTypeDelivery:
		return "Delivery"
	case OrderTypeQuickBill:
		return "QuickBill"
	}
	return "DineIn"
}

// RequiresTable reports whether this order type must be attached to a table.
func (t OrderType) RequiresTable() bool {
	return t == OrderTypeDineIn
}

func (t OrderType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *OrderType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = OrderType(i)
		return nil
	}
	switch str {
	case "Pickup":
		*t = OrderTypePickup
	case "Delivery":
		*t = OrderTypeDelivery
	case "QuickBill":
		*t = OrderTypeQuickBill
	default:
		*t = OrderTypeDineIn
	}
	return nil
}

func (t OrderType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *OrderType) Scan(value interface{}) error {
	if value == nil {
		*t = OrderTypeDineIn
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = OrderType(v)
	case int:
		*t = OrderType(v)
	}
	return nil
}
