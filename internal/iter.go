package internal

import (
	"iter"
)

// IterSeqConcat concatenates multiple iterators into a single iterator sequence.
func IterSeqConcat[T any](seqs ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, seq := range seqs {
			for val := range seq {
				if !yield(val) {
					return // Stop if the consumer stops
				}
			}
		}
	}
}

// IterSeqRepeat yields value count times. A count of zero or less yields nothing.
func IterSeqRepeat[T any](value T, count int) iter.Seq[T] {
	return func(yield func(T) bool) {
		for range max(count, 0) {
			if !yield(value) {
				return
			}
		}
	}
}

// IterSeqOf yields each of values in order.
func IterSeqOf[T any](values ...T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, val := range values {
			if !yield(val) {
				return
			}
		}
	}
}
