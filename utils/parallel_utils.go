package utils

// PartitionMap splits an index space into near-equal contiguous buckets, one
// per worker goroutine.
type PartitionMap struct {
	MaxIndex       int // MaxIndex is partitioned into ParallelDegree partitions
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of partitions
}

func NewPartitionMap(ParallelDegree, maxIndex int) (pm *PartitionMap) {
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: ParallelDegree,
		Partitions:     make([][2]int, ParallelDegree),
	}
	for n := 0; n < ParallelDegree; n++ {
		pm.Partitions[n] = pm.Split1D(n)
	}
	return
}

// Split1D computes the [min,max) index range of bucket threadNum, spreading
// the remainder one index at a time over the leading buckets.
func (pm *PartitionMap) Split1D(threadNum int) (bucket [2]int) {
	var (
		size      = pm.MaxIndex / pm.ParallelDegree
		remainder = pm.MaxIndex % pm.ParallelDegree
	)
	if threadNum < remainder {
		bucket[0] = threadNum * (size + 1)
		bucket[1] = bucket[0] + size + 1
	} else {
		bucket[0] = remainder*(size+1) + (threadNum-remainder)*size
		bucket[1] = bucket[0] + size
	}
	return
}

func (pm *PartitionMap) GetBucketRange(threadNum int) (min, max int) {
	min, max = pm.Partitions[threadNum][0], pm.Partitions[threadNum][1]
	return
}

func (pm *PartitionMap) GetBucketDimension(threadNum int) (size int) {
	size = pm.Partitions[threadNum][1] - pm.Partitions[threadNum][0]
	return
}
