package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"empty", State{}, true},
		{"normal", State{1.0, 2.0, 3.0}, true},
		{"with NaN", State{1.0, math.NaN()}, false},
		{"with +Inf", State{1.0, math.Inf(1)}, false},
		{"with -Inf", State{math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_Norm(t *testing.T) {
	tests := []struct {
		state    State
		expected float64
	}{
		{State{3, 4}, 5.0},
		{State{0, 0}, 0.0},
		{State{1, 1, 1, 1}, 2.0},
	}

	for _, tt := range tests {
		if got := tt.state.Norm(); math.Abs(got-tt.expected) > 1e-10 {
			t.Errorf("Norm(%v) = %v, want %v", tt.state, got, tt.expected)
		}
	}
}

func TestState_Axpy(t *testing.T) {
	a := State{1, 2, 3}
	b := State{4, 5}

	got := a.Axpy(0.5, b)
	want := State{3, 4.5, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Axpy = %v, want %v", got, want)
		}
	}
	if a[0] != 1 {
		t.Error("Axpy mutated its receiver")
	}
}

func TestState_Clone(t *testing.T) {
	src := State{1, 2}
	c := src.Clone()
	c[0] = 99
	if src[0] == 99 {
		t.Error("Clone did not create independent copy")
	}
}

func TestStepError_Unwrap(t *testing.T) {
	err := &StepError{Step: 12, Time: 0.12, Wrapped: ErrUnstable}
	if !errors.Is(err, ErrUnstable) {
		t.Error("StepError should unwrap to ErrUnstable")
	}
	if err.Error() != ErrUnstable.Error() {
		t.Errorf("Error() = %q", err.Error())
	}
}
