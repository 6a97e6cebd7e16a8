// Package utils provides a collection of reusable utility functions and helpers
// for use across the project. This package includes generic functional programming
// constructs (Map, Filter) and slice helpers.
//
// Functional Programming Utilities:
//   - Map, Filter: Generic implementations for slice processing.
//
// Slices:
//   - Contains
//
// This package is intended to centralize commonly used logic and promote code reuse
// throughout the project.
package utils

/* some Functional Programming in Go */
// map
type mapFunc[E any, R any] func(E) R

// Map function definition of a functional programming "function"
func Map[S ~[]E, E any, R any](s S, f mapFunc[E, R]) []R {
	result := make([]R, len(s))
	for i, e := range s {
		result[i] = f(e)
	}

	return result
}

// filter
type keepFunc[E any] func(E) bool

// Filter function definition of a functional programming "function"
func Filter[S ~[]E, E any](s S, f keepFunc[E]) S {
	result := S{}
	for _, v := range s {
		if f(v) {
			result = append(result, v)
		}
	}

	return result
}

// Contains function iterates over a slice of strings and checks if the given string is there
// if you want to avoid the slices.Contains package function
func Contains(slice []string, val string) bool {
	for _, s := range slice {
		if s == val {
			return true
		}
	}

	return false
}
