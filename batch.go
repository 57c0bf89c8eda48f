package ggui

import (
	"github.com/gogpu/ggui/internal/parallel"
)

// defaultChunkSize is the number of invocations per work item. Below
// parallelThreshold instances the transformer stays on the calling goroutine.
const (
	defaultChunkSize  = 4096
	parallelThreshold = 256
)

// Transformer evaluates the vertex stage for whole frames.
//
// Each (instance, corner) invocation is independent. The flattened range
// [0, 4*len(instances)) is split into chunks run on a worker pool, and
// invocation k always writes output slot k, so the result is identical to
// AppendVertices no matter how the chunks are scheduled.
//
// A Transformer is safe for concurrent use. Close must not race with
// Transform.
type Transformer struct {
	pool      *parallel.WorkerPool
	chunkSize int
}

// NewTransformer starts a transformer and its worker pool.
func NewTransformer(opts ...TransformerOption) *Transformer {
	o := defaultTransformerOptions()
	for _, opt := range opts {
		opt(&o)
	}
	pool := parallel.NewWorkerPool(o.workers)
	Logger().Debug("ggui: transformer started", "workers", pool.Workers(), "chunk", o.chunkSize)
	return &Transformer{pool: pool, chunkSize: o.chunkSize}
}

// Transform writes the four vertices of every instance into dst, growing it
// if needed, and returns dst[:4*len(instances)].
func (t *Transformer) Transform(dst []OutputVertex, view ViewArgs, instances []Instance) []OutputVertex {
	n := len(instances) * CornerCount
	if cap(dst) < n {
		dst = make([]OutputVertex, n)
	}
	dst = dst[:n]

	eval := func(lo, hi int) {
		for k := lo; k < hi; k++ {
			dst[k] = TransformVertex(view, &instances[k/CornerCount], Corner(k%CornerCount))
		}
	}

	if len(instances) < parallelThreshold {
		eval(0, n)
		return dst
	}
	t.pool.ForChunks(n, t.chunkSize, eval)
	return dst
}

// Workers returns the size of the worker pool.
func (t *Transformer) Workers() int {
	return t.pool.Workers()
}

// Close stops the worker pool. Later Transform calls run on the calling
// goroutine.
func (t *Transformer) Close() {
	t.pool.Close()
}
