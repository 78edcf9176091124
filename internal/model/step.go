package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Step is one instruction in a recipe. Older records carried steps as plain
// strings, newer ones as {instruction, image} objects; both decode into this
// type, and plain-text steps re-encode as strings so round-trips are lossless.
type Step struct {
	Instruction string `json:"instruction"`
	Image       string `json:"image,omitempty"`
}

// IsIllustrated reports whether the step carries an image.
func (s Step) IsIllustrated() bool {
	return s.Image != ""
}

func (s Step) MarshalJSON() ([]byte, error) {
	if s.Image == "" {
		return json.Marshal(s.Instruction)
	}
	type illustrated Step
	return json.Marshal(illustrated(s))
}

func (s *Step) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*s = Step{Instruction: text}
		return nil
	}

	type illustrated Step
	var obj illustrated
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("step: expected string or object: %w", err)
	}
	*s = Step(obj)
	return nil
}

// StepList stores ordered recipe steps as a JSON-encoded column.
type StepList []Step

// Value implements the driver.Valuer interface
func (l StepList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *StepList) Scan(value interface{}) error {
	if value == nil {
		*l = StepList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// UnmarshalJSON accepts a JSON array of steps or a JSON-encoded string
// holding one, mirroring JSONStringArray.
func (l *StepList) UnmarshalJSON(data []byte) error {
	var steps []Step
	if err := json.Unmarshal(data, &steps); err == nil {
		*l = steps
		return nil
	}

	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return fmt.Errorf("step list: expected array or encoded string: %w", err)
	}
	if encoded == "" {
		*l = StepList{}
		return nil
	}
	if err := json.Unmarshal([]byte(encoded), &steps); err != nil {
		return fmt.Errorf("step list: invalid encoded string: %w", err)
	}
	*l = steps
	return nil
}
