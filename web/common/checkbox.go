package common

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Checkbox binds a ticked box from forms ("on", "true", "1", "yes") and JSON
// (a bool or one of the same strings).
type Checkbox bool

var checkboxType = reflect.TypeOf(Checkbox(false))

func (c *Checkbox) UnmarshalParam(param string) error {
	*c = Checkbox(ticked(param))
	return nil
}

func (c *Checkbox) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*c = Checkbox(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &json.UnmarshalTypeError{Value: string(data), Type: checkboxType}
	}
	*c = Checkbox(ticked(s))
	return nil
}

func ticked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}
