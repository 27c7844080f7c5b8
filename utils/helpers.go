package utils

import (
	"time"

	"golang.org/x/exp/constraints"
)

func Min[T constraints.Ordered](x, y T) T {
	if y < x {
		return y
	}
	return x
}

func Max[T constraints.Ordered](x, y T) T {
	if x < y {
		return y
	}
	return x
}

// BackOff is a cheap, imprecise spin-wait used by workers polling an empty
// work bag before they are willing to block. Further tuning is needed for
// performance on any given machine.
func BackOff(count int) {
	if count > 2000 {
		count = 2000
	}
	time.Sleep(time.Duration((count+1)*100) * time.Microsecond)
}

// BinarySearchIdxFunc is like slices.BinarySearchFunc but returns the index
// into x rather than a copy of the matched element; used by FindEdge to
// locate the paired reverse edge in a sorted adjacency list without copying
// edge structs.
func BinarySearchIdxFunc[S ~[]E, E, T any](x S, target T, cmp func(int, T) int) (int, bool) {
	n := len(x)
	i, j := 0, n
	for i < j {
		h := int(uint(i+j) >> 1)
		if cmp(h, target) < 0 {
			i = h + 1
		} else {
			j = h
		}
	}
	return i, i < n && cmp(i, target) == 0
}
