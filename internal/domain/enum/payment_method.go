package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod represents how a payment entry was settled
type PaymentMethod int

const (
	PaymentMethodCash   PaymentMethod = 0
	PaymentMethodCard   PaymentMethod = 1
	PaymentMethodQR     PaymentMethod = 2
	PaymentMethodPoints PaymentMethod = 3
)

// AllPaymentMethods lists every method in Z-report ordering
var AllPaymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodCard,
	PaymentMethodQR,
	PaymentMethodPoints,
}

func (m PaymentMethod) String() string {
	names := [...]string{"CASH", "CARD", "QR", "POINTS"}
	if int(m) < 0 || int(m) >= len(names) {
		return "CASH"
	}
	return names[m]
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	switch str {
	case "CASH":
		*m = PaymentMethodCash
	case "CARD":
		*m = PaymentMethodCard
	case "QR":
		*m = PaymentMethodQR
	case "POINTS":
		*m = PaymentMethodPoints
	}
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}
