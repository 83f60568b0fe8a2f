package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// LineStatus represents the kitchen status of a single order line
type LineStatus int

const (
	LineStatusAwaitingPrep LineStatus = 0
	LineStatusInProgress   LineStatus = 1
	LineStatusDone         LineStatus = 2
	LineStatusServed       LineStatus = 3
	LineStatusVoided       LineStatus = 4
)

func (s LineStatus) String() string {
	names := [...]string{"AWAITING_PREP", "IN_PROGRESS", "DONE", "SERVED", "VOIDED"}
	if int(s) < 0 || int(s) >= len(names) {
		return "AWAITING_PREP"
	}
	return names[s]
}

// Voidable reports whether the line may still be voided.
// Once the kitchen has finished a dish it can only be handled
// through the kitchen return process, not a void.
func (s LineStatus) Voidable() bool {
	return s == LineStatusAwaitingPrep || s == LineStatusInProgress
}

func (s LineStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *LineStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = LineStatus(i)
		return nil
	}
	switch str {
	case "AWAITING_PREP":
		*s = LineStatusAwaitingPrep
	case "IN_PROGRESS":
		*s = LineStatusInProgress
	case "DONE":
		*s = LineStatusDone
	case "SERVED":
		*s = LineStatusServed
	case "VOIDED":
		*s = LineStatusVoided
	}
	return nil
}

func (s LineStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *LineStatus) Scan(value interface{}) error {
	if value == nil {
		*s = LineStatusAwaitingPrep
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = LineStatus(v)
	case int:
		*s = LineStatus(v)
	}
	return nil
}
