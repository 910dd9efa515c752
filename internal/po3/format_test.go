package po3

import "testing"

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		amount float64
		want   int64
	}{
		{0, 0},
		{150.00, 15000},
		{2500.50, 250050},
		{0.01, 1},
		// Half-to-even on exact .5 öre fractions: 12.5 rounds down to the
		// even 12, 37.5 rounds up to the even 38.
		{0.125, 12},
		{0.375, 38},
	}
	for _, c := range cases {
		if got := MinorUnits(c.amount); got != c.want {
			t.Errorf("MinorUnits(%v) = %d, want %d", c.amount, got, c.want)
		}
	}
}

func TestClipRightTruncatesByCharacters(t *testing.T) {
	// Widths are character counts; multi-byte Swedish letters must not be
	// split or counted double.
	got := clipRight("Tåg till Åre", 6)
	if got != "Tåg ti" {
		t.Errorf("clipRight = %q", got)
	}
	if got := clipRight("Tåg", 6); got != "Tåg   " {
		t.Errorf("clipRight padding = %q", got)
	}
}

func TestPadRightNeverTruncates(t *testing.T) {
	if got := padRight("12345678", 5); got != "12345678" {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("42", 5); got != "42   " {
		t.Errorf("padRight = %q", got)
	}
}

func TestZeroPad(t *testing.T) {
	if got := zeroPad(1, 7); got != "0000001" {
		t.Errorf("zeroPad = %q", got)
	}
	if got := zeroPad(15000, 13); got != "0000000015000" {
		t.Errorf("zeroPad = %q", got)
	}
	if got := zeroPad(12345, 3); got != "12345" {
		t.Errorf("zeroPad on overflow = %q", got)
	}
}

func TestComposeNote(t *testing.T) {
	note := composeNote("Resa", "Tåg", "Anna Andersson")
	if note != "Resa Tåg Anna Andersson" {
		t.Errorf("composeNote = %q", note)
	}
	if msg := composeMessage("Resa", "Tåg"); msg != "Resa Tåg" {
		t.Errorf("composeMessage = %q", msg)
	}
}
