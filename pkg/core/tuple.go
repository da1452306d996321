package core

import "math"

// Tuple is a homogeneous 4-component value. W is 1 for positions and 0 for
// directions; Point and Vector keep that invariant through arithmetic.
type Tuple struct {
	X, Y, Z, W float64
}

// NewTuple creates a new Tuple
func NewTuple(x, y, z, w float64) Tuple {
	return Tuple{X: x, Y: y, Z: z, W: w}
}

// Add returns the component-wise sum of two tuples
func (t Tuple) Add(other Tuple) Tuple {
	return Tuple{t.X + other.X, t.Y + other.Y, t.Z + other.Z, t.W + other.W}
}

// Subtract returns the component-wise difference of two tuples
func (t Tuple) Subtract(other Tuple) Tuple {
	return Tuple{t.X - other.X, t.Y - other.Y, t.Z - other.Z, t.W - other.W}
}

// Negate returns the tuple with every component negated
func (t Tuple) Negate() Tuple {
	return Tuple{-t.X, -t.Y, -t.Z, -t.W}
}

// Multiply returns the tuple scaled by a scalar
func (t Tuple) Multiply(scalar float64) Tuple {
	return Tuple{t.X * scalar, t.Y * scalar, t.Z * scalar, t.W * scalar}
}

// Divide returns the tuple divided by a scalar
func (t Tuple) Divide(scalar float64) Tuple {
	return Tuple{t.X / scalar, t.Y / scalar, t.Z / scalar, t.W / scalar}
}

// Dot returns the four-component dot product
func (t Tuple) Dot(other Tuple) float64 {
	return t.X*other.X + t.Y*other.Y + t.Z*other.Z + t.W*other.W
}

// Length returns the magnitude of the tuple
func (t Tuple) Length() float64 {
	return math.Sqrt(t.Dot(t))
}

// IsPoint reports whether the tuple represents a position
func (t Tuple) IsPoint() bool {
	return FloatEqual(t.W, 1.0)
}

// IsVector reports whether the tuple represents a direction
func (t Tuple) IsVector() bool {
	return FloatEqual(t.W, 0.0)
}

// Equal compares two tuples within Epsilon
func (t Tuple) Equal(other Tuple) bool {
	return FloatEqual(t.X, other.X) &&
		FloatEqual(t.Y, other.Y) &&
		FloatEqual(t.Z, other.Z) &&
		FloatEqual(t.W, other.W)
}

// Point is a position in space (w = 1)
type Point struct {
	X, Y, Z float64
}

// NewPoint creates a new Point
func NewPoint(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// Origin returns the point (0, 0, 0)
func Origin() Point {
	return Point{}
}

// PointFromTuple drops the homogeneous component of t
func PointFromTuple(t Tuple) Point {
	return Point{X: t.X, Y: t.Y, Z: t.Z}
}

// Tuple returns the homogeneous form of the point
func (p Point) Tuple() Tuple {
	return Tuple{p.X, p.Y, p.Z, 1.0}
}

// Add moves the point along a vector
func (p Point) Add(v Vector) Point {
	return Point{p.X + v.X, p.Y + v.Y, p.Z + v.Z}
}

// Subtract returns the vector from other to p
func (p Point) Subtract(other Point) Vector {
	return Vector{p.X - other.X, p.Y - other.Y, p.Z - other.Z}
}

// SubtractVector moves the point against a vector
func (p Point) SubtractVector(v Vector) Point {
	return Point{p.X - v.X, p.Y - v.Y, p.Z - v.Z}
}

// Equal compares two points within Epsilon
func (p Point) Equal(other Point) bool {
	return p.Tuple().Equal(other.Tuple())
}

// Vector is a direction in space (w = 0)
type Vector struct {
	X, Y, Z float64
}

// NewVector creates a new Vector
func NewVector(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

// Up returns the +Y unit vector
func Up() Vector {
	return Vector{0, 1, 0}
}

// VectorFromTuple drops the homogeneous component of t
func VectorFromTuple(t Tuple) Vector {
	return Vector{X: t.X, Y: t.Y, Z: t.Z}
}

// Tuple returns the homogeneous form of the vector
func (v Vector) Tuple() Tuple {
	return Tuple{v.X, v.Y, v.Z, 0.0}
}

// Add returns the sum of two vectors
func (v Vector) Add(other Vector) Vector {
	return Vector{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns the difference of two vectors
func (v Vector) Subtract(other Vector) Vector {
	return Vector{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Multiply returns the vector scaled by a scalar
func (v Vector) Multiply(scalar float64) Vector {
	return Vector{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// Negate returns the negative of the vector
func (v Vector) Negate() Vector {
	return Vector{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product of two vectors
func (v Vector) Dot(other Vector) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vector) Cross(other Vector) Vector {
	return Vector{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude of the vector
func (v Vector) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns a unit vector in the same direction
func (v Vector) Normalize() Vector {
	length := v.Length()
	if length == 0 {
		return Vector{}
	}
	return Vector{v.X / length, v.Y / length, v.Z / length}
}

// Reflect mirrors v about the normal n
func (v Vector) Reflect(n Vector) Vector {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Equal compares two vectors within Epsilon
func (v Vector) Equal(other Vector) bool {
	return v.Tuple().Equal(other.Tuple())
}
