package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TableStatus represents the floor status of a dining table
type TableStatus int

const (
	TableStatusEmpty           TableStatus = 0
	TableStatusOccupied        TableStatus = 1
	TableStatusReserved        TableStatus = 2
	TableStatusAwaitingPayment TableStatus = 3
	TableStatusNeedsCleaning   TableStatus = 4
)

func (s TableStatus) String() string {
	names := [...]string{"EMPTY", "OCCUPIED", "RESERVED", "AWAITING_PAYMENT", "NEEDS_CLEANING"}
	if int(s) < 0 || int(s) >= len(names) {
		return "EMPTY"
	}
	return names[s]
}

// Orderable reports whether a new order may be opened on the table
func (s TableStatus) Orderable() bool {
	return s == TableStatusEmpty || s == TableStatusOccupied || s == TableStatusReserved
}

func (s TableStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TableStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = TableStatus(i)
		return nil
	}
	switch str {
	case "EMPTY":
		*s = TableStatusEmpty
	case "OCCUPIED":
		*s = TableStatusOccupied
	case "RESERVED":
		*s = TableStatusReserved
	case "AWAITING_PAYMENT":
		*s = TableStatusAwaitingPayment
	case "NEEDS_CLEANING":
		*s = TableStatusNeedsCleaning
	}
	return nil
}

func (s TableStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *TableStatus) Scan(value interface{}) error {
	if value == nil {
		*s = TableStatusEmpty
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = TableStatus(v)
	case int:
		*s = TableStatus(v)
	}
	return nil
}
