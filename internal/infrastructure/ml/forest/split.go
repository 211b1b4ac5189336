package forest

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// TrainTestSplit shuffles the row indices 0..n-1 with seed and holds out
// ceil(testSize*n) of them for testing.
func TrainTestSplit(n int, testSize float64, seed uint64) (train, test []int, err error) {
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, fmt.Errorf("forest: test size must be in (0, 1), got %v", testSize)
	}
	nTest := int(math.Ceil(testSize * float64(n)))
	if nTest < 1 || n-nTest < 1 {
		return nil, nil, fmt.Errorf("forest: cannot split %d rows with test size %v", n, testSize)
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x5DEECE66D))
	perm := rng.Perm(n)
	return perm[nTest:], perm[:nTest], nil
}

// Take returns the elements of s at the given indices.
func Take[T any](s []T, idx []int) []T {
	out := make([]T, len(idx))
	for i, j := range idx {
		out[i] = s[j]
	}
	return out
}
