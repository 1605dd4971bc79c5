// Package target models a target number built from a base value and an
// ordered list of labeled modifiers.
//
// A Roll carries enough detail to rebuild the report-grade explanation of
// how the final value was reached: walking Modifiers in order and summing
// their deltas onto Base yields Value.
package target

import (
	"fmt"
	"strings"
)

// Modifier is one labeled delta applied to a Roll.
type Modifier struct {
	Delta int    `json:"delta"`
	Label string `json:"label"`
}

// Roll is a base value plus ordered modifiers. No clamp is intrinsic to a Roll.
type Roll struct {
	Base      int        `json:"base"`
	BaseLabel string     `json:"base_label,omitempty"`
	Modifiers []Modifier `json:"modifiers,omitempty"`
}

// New starts a Roll at base.
func New(base int, label string) Roll {
	return Roll{Base: base, BaseLabel: label}
}

// Add appends a modifier. Zero deltas are recorded too, so the explanation
// shows every rule that was considered and applied.
func (r *Roll) Add(delta int, label string) {
	r.Modifiers = append(r.Modifiers, Modifier{Delta: delta, Label: label})
}

// AddNonZero appends a modifier only when delta is not zero.
func (r *Roll) AddNonZero(delta int, label string) {
	if delta == 0 {
		return
	}
	r.Add(delta, label)
}

// Value returns the net target number.
func (r Roll) Value() int {
	total := r.Base
	for _, m := range r.Modifiers {
		total += m.Delta
	}
	return total
}

// Beats reports whether a rolled total falls below the target, i.e. the
// event the target number guards against happens.
func (r Roll) Beats(total int) bool {
	return total < r.Value()
}

// Step is one line of an explanation.
type Step struct {
	Label   string
	Delta   int
	Running int
}

// Explain walks the modifiers and returns the running total after each.
func (r Roll) Explain() []Step {
	label := r.BaseLabel
	if label == "" {
		label = "Base"
	}
	steps := make([]Step, 0, len(r.Modifiers)+1)
	running := r.Base
	steps = append(steps, Step{Label: label, Delta: r.Base, Running: running})
	for _, m := range r.Modifiers {
		running += m.Delta
		steps = append(steps, Step{Label: m.Label, Delta: m.Delta, Running: running})
	}
	return steps
}

// String renders "base (label) +d (label) ... = value".
func (r Roll) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d", r.Base)
	if r.BaseLabel != "" {
		fmt.Fprintf(&b, " (%s)", r.BaseLabel)
	}
	for _, m := range r.Modifiers {
		fmt.Fprintf(&b, " %+d (%s)", m.Delta, m.Label)
	}
	fmt.Fprintf(&b, " = %d", r.Value())
	return b.String()
}

// Clamp bounds value to [lo, hi].
func Clamp(value, lo, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
