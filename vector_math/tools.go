package vector_math

import "math"

// ToRad is a helper function to turn degree to radians
func ToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// FlipY mirrors a top-left origin y coordinate into a bottom-left origin
// surface of the given height.
func FlipY(y float32, height float32) float32 {
	return height - y
}
