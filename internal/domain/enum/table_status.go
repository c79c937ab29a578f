package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TableStatus represents the display state of a restaurant table
type TableStatus int

const (
	TableStatusAvailable  TableStatus = 0
	TableStatusRunning    TableStatus = 1
	TableStatusPrinted    TableStatus = 2
	TableStatusPaid       TableStatus = 3
	TableStatusRunningKOT TableStatus = 4
	TableStatusReserved   TableStatus = 5
)

func (s TableStatus) String() string {
	switch s {
	case TableStatusAvailable:
		return "available"
	case TableStatusRunning:
		return "running"
	case TableStatusPrinted:
		return "printed"
	case TableStatusPaid:
		return "paid"
	case TableStatusRunningKOT:
		return "running-kot"
	case TableStatusReserved:
		return "reserved"
	}
	return "available"
}

// FromStatusCode maps a raw backend status code to a display state.
// Unrecognized codes fall open to available, the least alarming state.
func FromStatusCode(code int) TableStatus {
	switch TableStatus(code) {
	case TableStatusAvailable, TableStatusRunning, TableStatusPrinted,
		TableStatusPaid, TableStatusRunningKOT, TableStatusReserved:
		return TableStatus(code)
	}
	return TableStatusAvailable
}

func (s TableStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TableStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = FromStatusCode(i)
		return nil
	}
	switch str {
	case "running":
		*s = TableStatusRunning
	case "printed":
		*s = TableStatusPrinted
	case "paid":
		*s = TableStatusPaid
	case "running-kot":
		*s = TableStatusRunningKOT
	case "reserved":
		*s = TableStatusReserved
	default:
		*s = TableStatusAvailable
	}
	return nil
}

func (s TableStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *TableStatus) Scan(value interface{}) error {
	if value == nil {
		*s = TableStatusAvailable
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
