package model

import (
	"bytes"
	"fmt"
)

// TriState is a yes/no answer that distinguishes "never answered" from "no".
// The zero value is Unset, so a freshly decoded answer set starts with every
// question unanswered.
type TriState int

const (
	Unset TriState = iota
	False
	True
)

func Tri(b bool) TriState {
	if b {
		return True
	}
	return False
}

// Answered reports whether the question was answered at all.
func (t TriState) Answered() bool {
	return t == True || t == False
}

// Bool is true only for an explicit yes.
func (t TriState) Bool() bool {
	return t == True
}

func (t TriState) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unset"
	}
}

var (
	jsonNull  = []byte("null")
	jsonTrue  = []byte("true")
	jsonFalse = []byte("false")
)

func (t TriState) MarshalJSON() ([]byte, error) {
	switch t {
	case True:
		return jsonTrue, nil
	case False:
		return jsonFalse, nil
	default:
		return jsonNull, nil
	}
}

func (t *TriState) UnmarshalJSON(data []byte) error {
	switch {
	case bytes.Equal(data, jsonNull):
		*t = Unset
	case bytes.Equal(data, jsonTrue):
		*t = True
	case bytes.Equal(data, jsonFalse):
		*t = False
	default:
		return fmt.Errorf("tristate: cannot decode %q", data)
	}
	return nil
}
