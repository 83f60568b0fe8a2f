package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// VoidStatus represents the state of a void request
type VoidStatus int

const (
	VoidStatusPending  VoidStatus = 0
	VoidStatusApproved VoidStatus = 1
	VoidStatusRejected VoidStatus = 2
)

func (s VoidStatus) String() string {
	return [...]string{"PENDING", "APPROVED", "REJECTED"}[s]
}

func (s VoidStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *VoidStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = VoidStatus(i)
		return nil
	}
	switch str {
	case "PENDING":
		*s = VoidStatusPending
	case "APPROVED":
		*s = VoidStatusApproved
	case "REJECTED":
		*s = VoidStatusRejected
	}
	return nil
}

func (s VoidStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *VoidStatus) Scan(value interface{}) error {
	if value == nil {
		*s = VoidStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = VoidStatus(v)
	case int:
		*s = VoidStatus(v)
	}
	return nil
}
