package core

import (
	"errors"
	"fmt"
	"math"
)

// ErrNotInvertible is returned when a matrix has a zero determinant
var ErrNotInvertible = errors.New("matrix is not invertible")

// Matrix2x2 is a row-major 2x2 matrix
type Matrix2x2 [4]float64

// Matrix3x3 is a row-major 3x3 matrix
type Matrix3x3 [9]float64

// Matrix4x4 is a row-major 4x4 matrix. Values are immutable: every operation
// returns a new matrix.
type Matrix4x4 [16]float64

// NewMatrix2x2 creates a matrix from its elements in row order
func NewMatrix2x2(m00, m01, m10, m11 float64) Matrix2x2 {
	return Matrix2x2{m00, m01, m10, m11}
}

// NewMatrix3x3 creates a matrix from its elements in row order
func NewMatrix3x3(m00, m01, m02, m10, m11, m12, m20, m21, m22 float64) Matrix3x3 {
	return Matrix3x3{m00, m01, m02, m10, m11, m12, m20, m21, m22}
}

// NewMatrix4x4 creates a matrix from its elements in row order
func NewMatrix4x4(
	m00, m01, m02, m03,
	m10, m11, m12, m13,
	m20, m21, m22, m23,
	m30, m31, m32, m33 float64,
) Matrix4x4 {
	return Matrix4x4{
		m00, m01, m02, m03,
		m10, m11, m12, m13,
		m20, m21, m22, m23,
		m30, m31, m32, m33,
	}
}

// Square matrix helpers shared by all sizes. Data is row-major with side n.

func at(data []float64, n, row, col int) float64 {
	if row < 0 || row >= n || col < 0 || col >= n {
		panic(fmt.Sprintf("matrix index (%d, %d) out of range for size %d", row, col, n))
	}
	return data[row*n+col]
}

func submatrixData(data []float64, n, row, col int) []float64 {
	out := make([]float64, 0, (n-1)*(n-1))
	for r := 0; r < n; r++ {
		if r == row {
			continue
		}
		for c := 0; c < n; c++ {
			if c == col {
				continue
			}
			out = append(out, data[r*n+c])
		}
	}
	return out
}

func determinantData(data []float64, n int) float64 {
	if n == 2 {
		return data[0]*data[3] - data[1]*data[2]
	}
	det := 0.0
	for col := 0; col < n; col++ {
		det += data[col] * cofactorData(data, n, 0, col)
	}
	return det
}

func cofactorData(data []float64, n, row, col int) float64 {
	minor := determinantData(submatrixData(data, n, row, col), n-1)
	if (row+col)%2 == 1 {
		return -minor
	}
	return minor
}

// inverseData inverts by cofactor expansion, writing into out (length n*n)
func inverseData(data []float64, n int, out []float64) error {
	det := determinantData(data, n)
	if det == 0 {
		return ErrNotInvertible
	}
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if n == 2 {
				// 2x2 cofactors are single elements
				sign := 1.0
				if (row+col)%2 == 1 {
					sign = -1.0
				}
				out[col*n+row] = sign * data[(1-row)*n+(1-col)] / det
				continue
			}
			// transposed write: out[col][row] = cofactor(row, col) / det
			out[col*n+row] = cofactorData(data, n, row, col) / det
		}
	}
	return nil
}

func transposeData(data []float64, n int, out []float64) {
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			out[col*n+row] = data[row*n+col]
		}
	}
}

func equalData(a, b []float64) bool {
	for i := range a {
		if !FloatEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// At returns the element at (row, col)
func (m Matrix2x2) At(row, col int) float64 { return at(m[:], 2, row, col) }

// Determinant returns the determinant of the matrix
func (m Matrix2x2) Determinant() float64 { return determinantData(m[:], 2) }

// Inverse returns the inverse, or ErrNotInvertible
func (m Matrix2x2) Inverse() (Matrix2x2, error) {
	var out Matrix2x2
	err := inverseData(m[:], 2, out[:])
	return out, err
}

// Equal compares two matrices element-wise within Epsilon
func (m Matrix2x2) Equal(other Matrix2x2) bool { return equalData(m[:], other[:]) }

// At returns the element at (row, col)
func (m Matrix3x3) At(row, col int) float64 { return at(m[:], 3, row, col) }

// Submatrix removes the given row and column
func (m Matrix3x3) Submatrix(row, col int) Matrix2x2 {
	var out Matrix2x2
	copy(out[:], submatrixData(m[:], 3, row, col))
	return out
}

// Minor returns the determinant of the submatrix at (row, col)
func (m Matrix3x3) Minor(row, col int) float64 {
	return m.Submatrix(row, col).Determinant()
}

// Cofactor returns the signed minor at (row, col)
func (m Matrix3x3) Cofactor(row, col int) float64 { return cofactorData(m[:], 3, row, col) }

// Determinant returns the determinant of the matrix
func (m Matrix3x3) Determinant() float64 { return determinantData(m[:], 3) }

// Inverse returns the inverse, or ErrNotInvertible
func (m Matrix3x3) Inverse() (Matrix3x3, error) {
	var out Matrix3x3
	err := inverseData(m[:], 3, out[:])
	return out, err
}

// Equal compares two matrices element-wise within Epsilon
func (m Matrix3x3) Equal(other Matrix3x3) bool { return equalData(m[:], other[:]) }

// Identity returns the 4x4 identity matrix
func Identity() Matrix4x4 {
	return Matrix4x4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation returns a matrix that moves points by (x, y, z)
func Translation(x, y, z float64) Matrix4x4 {
	m := Identity()
	m[3] = x
	m[7] = y
	m[11] = z
	return m
}

// Scaling returns a matrix that scales along each axis
func Scaling(x, y, z float64) Matrix4x4 {
	return Matrix4x4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// RotationX returns a rotation about the X axis by radians
func RotationX(radians float64) Matrix4x4 {
	sin, cos := math.Sincos(radians)
	return Matrix4x4{
		1, 0, 0, 0,
		0, cos, -sin, 0,
		0, sin, cos, 0,
		0, 0, 0, 1,
	}
}

// RotationY returns a rotation about the Y axis by radians
func RotationY(radians float64) Matrix4x4 {
	sin, cos := math.Sincos(radians)
	return Matrix4x4{
		cos, 0, sin, 0,
		0, 1, 0, 0,
		-sin, 0, cos, 0,
		0, 0, 0, 1,
	}
}

// RotationZ returns a rotation about the Z axis by radians
func RotationZ(radians float64) Matrix4x4 {
	sin, cos := math.Sincos(radians)
	return Matrix4x4{
		cos, -sin, 0, 0,
		sin, cos, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Shearing returns a matrix moving each coordinate in proportion to the
// other two, e.g. xy moves x in proportion to y.
func Shearing(xy, xz, yx, yz, zx, zy float64) Matrix4x4 {
	return Matrix4x4{
		1, xy, xz, 0,
		yx, 1, yz, 0,
		zx, zy, 1, 0,
		0, 0, 0, 1,
	}
}

// ViewTransform orients the world relative to an eye at from looking at to
func ViewTransform(from, to Point, up Vector) Matrix4x4 {
	forward := to.Subtract(from).Normalize()
	left := forward.Cross(up.Normalize())
	trueUp := left.Cross(forward)

	orientation := Matrix4x4{
		left.X, left.Y, left.Z, 0,
		trueUp.X, trueUp.Y, trueUp.Z, 0,
		-forward.X, -forward.Y, -forward.Z, 0,
		0, 0, 0, 1,
	}
	return orientation.Multiply(Translation(-from.X, -from.Y, -from.Z))
}

// At returns the element at (row, col)
func (m Matrix4x4) At(row, col int) float64 { return at(m[:], 4, row, col) }

// Multiply returns m * other
func (m Matrix4x4) Multiply(other Matrix4x4) Matrix4x4 {
	var out Matrix4x4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out[row*4+col] = m[row*4+0]*other[0*4+col] +
				m[row*4+1]*other[1*4+col] +
				m[row*4+2]*other[2*4+col] +
				m[row*4+3]*other[3*4+col]
		}
	}
	return out
}

// MultiplyTuple returns m * t
func (m Matrix4x4) MultiplyTuple(t Tuple) Tuple {
	row := func(r int) float64 {
		return m[r*4+0]*t.X + m[r*4+1]*t.Y + m[r*4+2]*t.Z + m[r*4+3]*t.W
	}
	return Tuple{row(0), row(1), row(2), row(3)}
}

// MultiplyPoint transforms a position; translation applies
func (m Matrix4x4) MultiplyPoint(p Point) Point {
	return PointFromTuple(m.MultiplyTuple(p.Tuple()))
}

// MultiplyVector transforms a direction; translation does not apply
func (m Matrix4x4) MultiplyVector(v Vector) Vector {
	return VectorFromTuple(m.MultiplyTuple(v.Tuple()))
}

// Transpose swaps rows and columns
func (m Matrix4x4) Transpose() Matrix4x4 {
	var out Matrix4x4
	transposeData(m[:], 4, out[:])
	return out
}

// Submatrix removes the given row and column
func (m Matrix4x4) Submatrix(row, col int) Matrix3x3 {
	var out Matrix3x3
	copy(out[:], submatrixData(m[:], 4, row, col))
	return out
}

// Minor returns the determinant of the submatrix at (row, col)
func (m Matrix4x4) Minor(row, col int) float64 {
	return m.Submatrix(row, col).Determinant()
}

// Cofactor returns the signed minor at (row, col)
func (m Matrix4x4) Cofactor(row, col int) float64 { return cofactorData(m[:], 4, row, col) }

// Determinant returns the determinant of the matrix
func (m Matrix4x4) Determinant() float64 { return determinantData(m[:], 4) }

// IsInvertible reports whether the determinant is non-zero
func (m Matrix4x4) IsInvertible() bool { return m.Determinant() != 0 }

// Inverse returns the inverse, or ErrNotInvertible when the determinant is
// exactly zero
func (m Matrix4x4) Inverse() (Matrix4x4, error) {
	var out Matrix4x4
	err := inverseData(m[:], 4, out[:])
	return out, err
}

// Equal compares two matrices element-wise within Epsilon
func (m Matrix4x4) Equal(other Matrix4x4) bool { return equalData(m[:], other[:]) }

// The fluent builders below apply a new transform on top of m. The new
// transform is multiplied on the left, so
//
//	Scaling(2, 2, 2).Translate(1, 0, 0)
//
// scales first and translates second.

// Translate returns Translation(x, y, z) * m
func (m Matrix4x4) Translate(x, y, z float64) Matrix4x4 {
	return Translation(x, y, z).Multiply(m)
}

// Scale returns Scaling(x, y, z) * m
func (m Matrix4x4) Scale(x, y, z float64) Matrix4x4 {
	return Scaling(x, y, z).Multiply(m)
}

// RotateX returns RotationX(radians) * m
func (m Matrix4x4) RotateX(radians float64) Matrix4x4 {
	return RotationX(radians).Multiply(m)
}

// RotateY returns RotationY(radians) * m
func (m Matrix4x4) RotateY(radians float64) Matrix4x4 {
	return RotationY(radians).Multiply(m)
}

// RotateZ returns RotationZ(radians) * m
func (m Matrix4x4) RotateZ(radians float64) Matrix4x4 {
	return RotationZ(radians).Multiply(m)
}

// Shear returns Shearing(...) * m
func (m Matrix4x4) Shear(xy, xz, yx, yz, zx, zy float64) Matrix4x4 {
	return Shearing(xy, xz, yx, yz, zx, zy).Multiply(m)
}
