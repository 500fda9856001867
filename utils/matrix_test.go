package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrix(t *testing.T) {
	// Chained elementwise operations change the receiver, Copy does not
	{
		M := NewMatrix(2, 2, []float64{
			1, 2,
			3, 4,
		})
		A := M.Copy().Scale(2).AddScalar(1)
		assert.Equal(t, []float64{3, 5, 7, 9}, A.Data())
		assert.Equal(t, []float64{1, 2, 3, 4}, M.Data())
		A.Subtract(M).ElMul(M)
		assert.Equal(t, []float64{2, 6, 12, 20}, A.Data())
		A.ElDiv(M)
		assert.Equal(t, []float64{2, 3, 4, 5}, A.Data())
	}
	// Reductions
	{
		M := NewMatrix(2, 3, []float64{
			1, -2, 3,
			4, 5, -6,
		})
		assert.Equal(t, -6., M.Min())
		assert.Equal(t, 5., M.Max())
		assert.Equal(t, 5., M.Sum())
		assert.Equal(t, 1.+(-2.)+4.+5., M.SumRange(0, 2, 0, 2))
	}
	// Non-finite detection
	{
		M := NewMatrix(2, 2)
		assert.False(t, M.HasNaNOrInf())
		M.Set(1, 0, math.Inf(-1))
		assert.True(t, M.HasNaNOrInf())
	}
	// Size mismatch panics
	{
		assert.Panics(t, func() { NewMatrix(2, 2, []float64{1, 2, 3}) })
	}
}

func TestVector(t *testing.T) {
	// Axpy and norms
	{
		v := NewVector(3, []float64{3, 0, 4})
		assert.Equal(t, 5., v.Norm2())
		w := v.Copy().AddScaled(-1, v)
		assert.Equal(t, 0., w.Norm2())
		assert.Equal(t, 25., v.Dot(v))
	}
	// Subtract changes the receiver only
	{
		v := NewVector(2, []float64{1, 2})
		w := NewVector(2, []float64{3, 5})
		w.Subtract(v)
		assert.Equal(t, []float64{2, 3}, w.Data())
		assert.Equal(t, []float64{1, 2}, v.Data())
	}
}

func TestMat3(t *testing.T) {
	// Inverse reproduces the identity
	{
		A := Mat3{
			2, 1, 0,
			1, 3, 1,
			0, 1, 2,
		}
		inv, err := A.Inverse()
		assert.NoError(t, err)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				var sum float64
				for k := 0; k < 3; k++ {
					sum += A.At(i, k) * inv.At(k, j)
				}
				want := 0.
				if i == j {
					want = 1.
				}
				assert.InDelta(t, want, sum, 1.e-14)
			}
		}
		assert.InDelta(t, 1., A.Det()*inv.Det(), 1.e-14)
	}
	// Singular matrix is an error
	{
		A := Mat3{
			1, 2, 3,
			2, 4, 6,
			0, 0, 1,
		}
		_, err := A.Inverse()
		assert.Error(t, err)
	}
	// Gram entries are the column inner products
	{
		A := Mat3{
			1, 2, 0,
			0, 1, 0,
			0, 0, 1,
		}
		g11, g12, g13, g22, g23, g33 := A.GramEntries()
		assert.Equal(t, 1., g11)
		assert.Equal(t, 2., g12)
		assert.Equal(t, 0., g13)
		assert.Equal(t, 5., g22)
		assert.Equal(t, 0., g23)
		assert.Equal(t, 1., g33)
	}
}

func TestPartitionMap(t *testing.T) {
	// Buckets tile the index space with near-equal sizes
	{
		pm := NewPartitionMap(4, 10)
		var (
			total   int
			minSize = 10
			maxSize = 0
		)
		for n := 0; n < 4; n++ {
			beg, end := pm.GetBucketRange(n)
			size := pm.GetBucketDimension(n)
			assert.Equal(t, end-beg, size)
			if n > 0 {
				prev := pm.Partitions[n-1][1]
				assert.Equal(t, prev, beg)
			}
			if size < minSize {
				minSize = size
			}
			if size > maxSize {
				maxSize = size
			}
			total += size
		}
		assert.Equal(t, 10, total)
		assert.LessOrEqual(t, maxSize-minSize, 1)
	}
}
