// path: internal/shared/types_test.go
package shared

import "testing"

func TestCoordRoundTrip(t *testing.T) {
	tests := []struct {
		coord string
		row   int
		col   int
	}{
		{"a1", 7, 0},
		{"h8", 0, 7},
		{"d2", 6, 3},
		{"d5", 3, 3},
		{"e8", 0, 4},
	}
	for _, tt := range tests {
		sq, ok := CoordToSquare(tt.coord)
		if !ok {
			t.Fatalf("CoordToSquare(%q) failed", tt.coord)
		}
		if sq.Row() != tt.row || sq.Col() != tt.col {
			t.Fatalf("%q: got (%d,%d), want (%d,%d)", tt.coord, sq.Row(), sq.Col(), tt.row, tt.col)
		}
		if got := sq.String(); got != tt.coord {
			t.Fatalf("round trip %q: got %q", tt.coord, got)
		}
	}
}

func TestCoordToSquareRejectsMalformed(t *testing.T) {
	for _, coord := range []string{"", "a", "i1", "a9", "a0", "12", "aa1"} {
		if _, ok := CoordToSquare(coord); ok {
			t.Fatalf("expected %q to be rejected", coord)
		}
	}
}

func TestForwardDirection(t *testing.T) {
	if White.Forward() != -1 {
		t.Fatalf("white must advance toward row 0")
	}
	if Black.Forward() != 1 {
		t.Fatalf("black must advance toward row 7")
	}
}

func TestStanceCycle(t *testing.T) {
	s := StanceMobile
	want := []Stance{StanceWeakStrike, StanceStrongStrike, StanceMobile, StanceWeakStrike}
	for i, w := range want {
		s = s.Next()
		if s != w {
			t.Fatalf("step %d: got %v, want %v", i, s, w)
		}
	}
}

func TestChebyshevDist(t *testing.T) {
	a, _ := SquareFromCoords(3, 3)
	tests := []struct {
		row, col int
		want     int
	}{
		{3, 3, 0},
		{3, 4, 1},
		{4, 4, 1},
		{1, 3, 2},
		{0, 7, 4},
		{7, 0, 4},
	}
	for _, tt := range tests {
		b, _ := SquareFromCoords(tt.row, tt.col)
		if got := ChebyshevDist(a, b); got != tt.want {
			t.Fatalf("dist to (%d,%d): got %d, want %d", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestParsePieceKindRoundTrip(t *testing.T) {
	for k := King; k < KindCount; k++ {
		parsed, ok := ParsePieceKind(k.String())
		if !ok || parsed != k {
			t.Fatalf("round trip %v failed", k)
		}
	}
	if _, ok := ParsePieceKind("pawn"); ok {
		t.Fatalf("expected unknown kind to be rejected")
	}
}

func TestColorTextMarshalling(t *testing.T) {
	var c Color
	if err := c.UnmarshalText([]byte("black")); err != nil {
		t.Fatalf("unmarshal black: %v", err)
	}
	if c != Black {
		t.Fatalf("expected black, got %v", c)
	}
	if err := c.UnmarshalText([]byte("purple")); err == nil {
		t.Fatalf("expected invalid color error")
	}
}
