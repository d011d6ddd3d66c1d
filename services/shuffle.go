package services

import (
	"math/rand"
	"time"
)

// shuffledOrder returns a uniform random permutation of 0..n-1 using
// Fisher-Yates.
func shuffledOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		order[i], order[j] = order[j], order[i]
	}

	return order
}
