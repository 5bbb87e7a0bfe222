package entity

import "math"

// Point is a viewport coordinate in CSS pixels.
type Point struct {
	X float64
	Y float64
}

// BoundingBox is the on-screen rectangle of an element in viewport pixels.
type BoundingBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Empty reports whether the box has no usable area for pointer geometry.
func (b BoundingBox) Empty() bool {
	return b.Width <= 0 || b.Height <= 0 || math.IsNaN(b.Width) || math.IsNaN(b.Height)
}

// Target addresses the Index-th element matched by Selector.
type Target struct {
	Selector string
	Index    int
}

// First returns a target for the first match of selector.
func First(selector string) Target {
	return Target{Selector: selector}
}

// Nth returns a target for the zero-based n-th match of selector.
func Nth(selector string, n int) Target {
	return Target{Selector: selector, Index: n}
}

type Screenshot struct {
	Data   []byte
	Format string
	Width  int
	Height int
}
