package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ShiftStatus represents the state of a cash-register session
type ShiftStatus int

const (
	ShiftStatusActive ShiftStatus = 0
	ShiftStatusClosed ShiftStatus = 1
)

func (s ShiftStatus) String() string {
	return [...]string{"ACTIVE", "CLOSED"}[s]
}

func (s ShiftStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ShiftStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ShiftStatus(i)
		return nil
	}
	switch str {
	case "ACTIVE":
		*s = ShiftStatusActive
	case "CLOSED":
		*s = ShiftStatusClosed
	}
	return nil
}

func (s ShiftStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ShiftStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ShiftStatusActive
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ShiftStatus(v)
	case int:
		*s = ShiftStatus(v)
	}
	return nil
}
