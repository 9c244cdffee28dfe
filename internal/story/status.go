package story

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Status is the completion status of a story. The numeric values are the
// ones stored in the tracker file.
type Status uint8

const (
	StatusComplete Status = iota
	StatusIncomplete
	StatusHiatus
	StatusCancelled
)

var statusNames = map[Status]string{
	StatusComplete:   "Complete",
	StatusIncomplete: "Incomplete",
	StatusHiatus:     "On Hiatus",
	StatusCancelled:  "Cancelled",
}

// String returns the label Fimfiction shows for the status.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Status(" + strconv.Itoa(int(s)) + ")"
}

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// ParseStatus accepts either the numeric code or the display label.
func ParseStatus(value string) (Status, error) {
	for status, name := range statusNames {
		if name == value {
			return status, nil
		}
	}
	if n, err := strconv.ParseUint(value, 10, 8); err == nil && Status(n).Valid() {
		return Status(n), nil
	}
	return 0, fmt.Errorf("invalid status %q: want a status name or an integer between 0 and 3", value)
}

// MarshalJSON writes the numeric code.
func (s Status) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid status %d", uint8(s))
	}
	return []byte(strconv.Itoa(int(s))), nil
}

// UnmarshalJSON accepts an integer between 0 and 3 or a status name.
func (s *Status) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		for status, label := range statusNames {
			if label == name {
				*s = status
				return nil
			}
		}
		return fmt.Errorf("invalid status %q", name)
	}
	n, err := strconv.ParseUint(string(data), 10, 8)
	if err != nil || !Status(n).Valid() {
		return fmt.Errorf("invalid status %s: want an integer between 0 and 3", data)
	}
	*s = Status(n)
	return nil
}
