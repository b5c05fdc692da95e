package core

// Lease hands out read-only views of a tile buffer that is owned elsewhere.
// Revoke invalidates every view issued so far; views never expose the
// underlying slice, so a revoked view cannot be used to read stale memory.
type Lease struct {
	buf   []Tile
	epoch uint64
}

// Grant issues a view over buf. Any earlier view is revoked first.
func (l *Lease) Grant(buf []Tile) TileView {
	l.epoch++
	l.buf = buf
	return TileView{lease: l, epoch: l.epoch}
}

// Revoke invalidates all outstanding views.
func (l *Lease) Revoke() {
	l.epoch++
	l.buf = nil
}

// TileView is a bounded-lifetime, read-only window onto a tile buffer.
// The zero value is an always-empty view.
type TileView struct {
	lease *Lease
	epoch uint64
}

// ViewOf returns a view over a caller-owned buffer that never expires.
// Useful for tests and for painting buffers that are not engine-owned.
func ViewOf(buf []Tile) TileView {
	l := &Lease{}
	return l.Grant(buf)
}

// Valid reports whether the view may still be read.
func (v TileView) Valid() bool {
	return v.lease != nil && v.lease.epoch == v.epoch
}

// Len returns the number of tiles visible through the view (0 once revoked).
func (v TileView) Len() int {
	if !v.Valid() {
		return 0
	}
	return len(v.lease.buf)
}

// At returns the tile at buffer index i.
// Out-of-range indices and revoked views read as TileEmpty.
func (v TileView) At(i int) Tile {
	if !v.Valid() || i < 0 || i >= len(v.lease.buf) {
		return TileEmpty
	}
	return v.lease.buf[i]
}

// AtCell returns the tile at (row, col) for the given geometry.
func (v TileView) AtCell(g Geometry, row, col int) Tile {
	if row < 0 || row >= g.Height || col < 0 || col >= g.Width {
		return TileEmpty
	}
	return v.At(g.Index(row, col))
}
