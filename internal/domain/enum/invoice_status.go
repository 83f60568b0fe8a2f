package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// InvoiceStatus represents the settlement status of an invoice
type InvoiceStatus int

const (
	InvoiceStatusOpen InvoiceStatus = 0
	InvoiceStatusPaid InvoiceStatus = 1
)

func (s InvoiceStatus) String() string {
	return [...]string{"OPEN", "PAID"}[s]
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InvoiceStatus(i)
		return nil
	}
	switch str {
	case "OPEN":
		*s = InvoiceStatusOpen
	case "PAID":
		*s = InvoiceStatusPaid
	}
	return nil
}

func (s InvoiceStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InvoiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceStatusOpen
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = InvoiceStatus(v)
	case int:
		*s = InvoiceStatus(v)
	}
	return nil
}
