package efg

import (
	"sync"
)

var (
	intSlicePool = sync.Pool{
		New: func() interface{} {
			return make([]int, 0)
		},
	}

	floatSlicePool = sync.Pool{
		New: func() interface{} {
			return make([]float64, 0)
		},
	}
)

func allocIntSlice() []int {
	return intSlicePool.Get().([]int)
}

func freeIntSlice(s []int) {
	if cap(s) > 0 {
		intSlicePool.Put(s[:0])
	}
}

func allocFloatSlice(n int) []float64 {
	s := floatSlicePool.Get().([]float64)
	if cap(s) < n {
		return make([]float64, n)
	}
	s = s[:n]
	for i := range s {
		s[i] = 0
	}
	return s
}

func freeFloatSlice(s []float64) {
	if cap(s) > 0 {
		floatSlicePool.Put(s[:0])
	}
}
