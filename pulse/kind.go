// SPDX-License-Identifier: MIT

package pulse

import (
	"fmt"
	"strings"
)

// Kind tags a pulse-shape family.
type Kind int

const (
	// GaussianExpKind is a Gaussian core with an exponential tail.
	GaussianExpKind Kind = iota
	// LorentzianExpKind is a Lorentzian core with an exponential tail.
	LorentzianExpKind
	// LogisticKind is declared but not implemented.
	LogisticKind
	// LogNormalKind is declared but not implemented.
	LogNormalKind
)

var kindNames = [...]string{
	GaussianExpKind:   "gaussian-exp",
	LorentzianExpKind: "lorentzian-exp",
	LogisticKind:      "logistic",
	LogNormalKind:     "lognormal",
}

var kindParamCounts = [...]int{
	GaussianExpKind:   2,
	LorentzianExpKind: 2,
	LogisticKind:      1,
	LogNormalKind:     2,
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool { return k >= GaussianExpKind && k <= LogNormalKind }

// String returns the canonical lower-case name, e.g. "gaussian-exp".
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// NumParams returns the declared parameter count of k, or 0 for an unknown kind.
func (k Kind) NumParams() int {
	if !k.Valid() {
		return 0
	}

	return kindParamCounts[k]
}

// ParseKind is the inverse of Kind.String (case-insensitive).
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}

	return 0, fmt.Errorf("ParseKind(%q): %w", s, ErrUnknownKind)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("MarshalText(%d): %w", int(k), ErrUnknownKind)
	}

	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed

	return nil
}
