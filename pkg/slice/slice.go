// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice complements the standard [slices] package with the generic
Map, Reduce and Ref helpers the services use to shape store rows.
*/
package slice

// Map maps a slice of type T to a slice of type U using the provided transformation function.
// The result is never nil, so it encodes as [] rather than null.
func Map[T any, U any](input []T, transform func(T) U) []U {
	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}
	return result
}

// Reduce reduces a slice into a single accumulated result using the reducer function.
func Reduce[T any, U any](input []T, initial U, reducer func(accumulator U, current T) U) U {
	result := initial
	for _, v := range input {
		result = reducer(result, v)
	}
	return result
}

// Ref returns a pointer to each element, copying the values.
func Ref[T any](input []T) []*T {
	return Map(input, func(v T) *T { return &v })
}
