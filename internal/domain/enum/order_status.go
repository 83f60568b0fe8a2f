package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderStatus represents the lifecycle status of an order
type OrderStatus int

const (
	OrderStatusOpen      OrderStatus = 0
	OrderStatusSent      OrderStatus = 1
	OrderStatusClosed    OrderStatus = 2
	OrderStatusCancelled OrderStatus = 3
)

func (s OrderStatus) String() string {
	return [...]string{"OPEN", "SENT", "CLOSED", "CANCELLED"}[s]
}

// IsTerminal reports whether the order can no longer change
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusClosed || s == OrderStatusCancelled
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	switch str {
	case "OPEN":
		*s = OrderStatusOpen
	case "SENT":
		*s = OrderStatusSent
	case "CLOSED":
		*s = OrderStatusClosed
	case "CANCELLED":
		*s = OrderStatusCancelled
	}
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusOpen
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}
