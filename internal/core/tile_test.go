package core

import "testing"

func TestTileFromValue(t *testing.T) {
	tests := []struct {
		value int64
		known bool
		name  string
	}{
		{0, true, "empty"},
		{1, true, "wall"},
		{2, true, "block"},
		{3, true, "paddle"},
		{4, true, "ball"},
		{5, false, "unknown"},
		{-3, false, "unknown"},
		{1 << 20, false, "unknown"},
	}

	for _, tc := range tests {
		tile := TileFromValue(tc.value)
		if tile.Known() != tc.known {
			t.Errorf("TileFromValue(%d).Known() = %v, expected %v", tc.value, tile.Known(), tc.known)
		}
		if tile.String() != tc.name {
			t.Errorf("TileFromValue(%d).String() = %q, expected %q", tc.value, tile.String(), tc.name)
		}
	}
}

func TestGeometryIndex(t *testing.T) {
	g := Geometry{Width: 10, Height: 8}

	if g.Len() != 80 {
		t.Errorf("Len() = %d, expected 80", g.Len())
	}
	if g.Index(7, 9) != 79 {
		t.Errorf("Index(7, 9) = %d, expected 79", g.Index(7, 9))
	}
	if !g.Valid() {
		t.Error("10x8 geometry should be valid")
	}
	if (Geometry{Width: 0, Height: 3}).Valid() {
		t.Error("zero-width geometry should not be valid")
	}
}

func TestLeaseRevoke(t *testing.T) {
	buf := []Tile{TileWall, TileBall}
	var l Lease

	view := l.Grant(buf)
	if !view.Valid() || view.Len() != 2 || view.At(1) != TileBall {
		t.Fatalf("fresh view should read the buffer, got valid=%v len=%d", view.Valid(), view.Len())
	}

	l.Revoke()
	if view.Valid() {
		t.Error("view should be invalid after Revoke")
	}
	if view.At(1) != TileEmpty || view.Len() != 0 {
		t.Error("revoked view should read as empty")
	}
}

func TestLeaseGrantSupersedes(t *testing.T) {
	var l Lease
	first := l.Grant([]Tile{TileWall})
	second := l.Grant([]Tile{TileBlock})

	if first.Valid() {
		t.Error("earlier view should be revoked by a new grant")
	}
	if second.At(0) != TileBlock {
		t.Errorf("second.At(0) = %v, expected block", second.At(0))
	}
}

func TestTileViewAtCell(t *testing.T) {
	g := Geometry{Width: 3, Height: 2}
	view := ViewOf([]Tile{TileWall, 0, 0, 0, 0, TileBall})

	if view.AtCell(g, 1, 2) != TileBall {
		t.Errorf("AtCell(1, 2) = %v, expected ball", view.AtCell(g, 1, 2))
	}
	if view.AtCell(g, 2, 0) != TileEmpty {
		t.Error("out-of-range row should read as empty")
	}

	var zero TileView
	if zero.Valid() || zero.At(0) != TileEmpty {
		t.Error("zero TileView should be an invalid, empty view")
	}
}

func TestControlSignalValue(t *testing.T) {
	tests := []struct {
		sig      ControlSignal
		expected int64
	}{
		{SignalNeutral, 0},
		{SignalLeft, -1},
		{SignalRight, 1},
	}

	for _, tc := range tests {
		if tc.sig.Value() != tc.expected {
			t.Errorf("%s.Value() = %d, expected %d", tc.sig, tc.sig.Value(), tc.expected)
		}
		if got := SignalFromValue(tc.expected); got != tc.sig {
			t.Errorf("SignalFromValue(%d) = %s, expected %s", tc.expected, got, tc.sig)
		}
	}

	if got := SignalFromValue(7); got != SignalNeutral {
		t.Errorf("SignalFromValue(7) = %s, expected Neutral", got)
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#1a2B3c")
	if err != nil {
		t.Fatalf("ParseHex() failed: %v", err)
	}
	if c != RGB(0x1a, 0x2b, 0x3c) {
		t.Errorf("ParseHex() = %+v", c)
	}
	if c.Hex() != "#1a2b3c" {
		t.Errorf("Hex() = %q, expected #1a2b3c", c.Hex())
	}

	short, err := ParseHex("fff")
	if err != nil || short != ColorWhite {
		t.Errorf("ParseHex(\"fff\") = %+v, %v", short, err)
	}

	if _, err := ParseHex("#12345"); err == nil {
		t.Error("ParseHex should reject 5-digit colors")
	}
	if _, err := ParseHex("#zzzzzz"); err == nil {
		t.Error("ParseHex should reject non-hex digits")
	}
}
