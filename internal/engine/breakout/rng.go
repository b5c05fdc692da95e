package breakout

// serveRNG is the deterministic generator behind serve directions
// (splitmix64). Its whole state is one word so snapshots can carry it.
type serveRNG struct {
	state uint64
}

func newServeRNG(seed int64) *serveRNG {
	return &serveRNG{state: uint64(seed)} //#nosec G115 -- seed bits are used as-is
}

func (r *serveRNG) next() uint64 {
	r.state += 0x9e3779b97f4a7c15
	z := r.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Intn returns a value in [0, n). n <= 0 yields 0.
func (r *serveRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.next() % uint64(n)) //#nosec G115 -- n is positive
}
