package multiwork

// Log2Floor returns the largest p such that 2^p <= n. Callers use it to bound
// the depth of divide-and-conquer splits. n must be positive; Log2Floor
// panics otherwise, as there is no meaningful depth for an empty width.
func Log2Floor(n int) int {
	if n <= 0 {
		panic("multiwork: Log2Floor requires n > 0")
	}
	p := 0
	for 1<<(p+1) <= n {
		p++
	}
	return p
}
