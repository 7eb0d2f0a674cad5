package tracker

import "testing"

func TestStatusLabels(t *testing.T) {
	cases := []struct {
		status Status
		want   string
	}{
		{StatusNotStarted, "Not Started"},
		{StatusInProgress, "In Progress"},
		{StatusDone, "Done"},
		{Status(7), "Unknown"},
	}
	for _, c := range cases {
		if got := c.status.String(); got != c.want {
			t.Fatalf("Status(%d).String() = %q, want %q", c.status, got, c.want)
		}
	}
}

func TestCanAdvanceToAllowsOnlySingleForwardStep(t *testing.T) {
	for from := Status(0); from <= StatusDone; from++ {
		for next := Status(-2); next <= 5; next++ {
			want := next == from+1 && next <= StatusDone
			if got := from.CanAdvanceTo(next); got != want {
				t.Fatalf("CanAdvanceTo(%d -> %d) = %v, want %v", from, next, got, want)
			}
		}
	}
}

func TestTerminal(t *testing.T) {
	if StatusNotStarted.Terminal() || StatusInProgress.Terminal() {
		t.Fatal("non-final statuses must not be terminal")
	}
	if !StatusDone.Terminal() {
		t.Fatal("Done must be terminal")
	}
}
