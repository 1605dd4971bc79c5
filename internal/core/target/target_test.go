package target

import "testing"

func TestRollValueAndExplain(t *testing.T) {
	r := New(5, "Fixed")
	r.Add(-2, "Founder")
	r.Add(1, "Age")
	r.AddNonZero(0, "Family")

	if got := r.Value(); got != 4 {
		t.Fatalf("value = %d, want 4", got)
	}
	if len(r.Modifiers) != 2 {
		t.Fatalf("modifiers = %v, want zero modifier dropped", r.Modifiers)
	}
	steps := r.Explain()
	if len(steps) != 3 {
		t.Fatalf("steps = %d, want 3", len(steps))
	}
	if steps[2].Running != 4 || steps[2].Label != "Age" {
		t.Fatalf("last step = %+v, want Age running 4", steps[2])
	}
	if got, want := r.String(), "5 (Fixed) -2 (Founder) +1 (Age) = 4"; got != want {
		t.Fatalf("string = %q, want %q", got, want)
	}
}

func TestBeats(t *testing.T) {
	tests := []struct {
		name  string
		value int
		total int
		want  bool
	}{
		{"below target", 8, 7, true},
		{"equal target", 8, 8, false},
		{"above target", 8, 12, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(tt.value, "")
			if got := r.Beats(tt.total); got != tt.want {
				t.Errorf("Beats(%d) against %d = %v, want %v", tt.total, tt.value, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 3) != 3 || Clamp(-1, 0, 3) != 0 || Clamp(2, 3, 0) != 2 {
		t.Fatal("clamp returned unexpected bounds")
	}
}
