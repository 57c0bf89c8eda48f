package ggui

// TransformerOption configures a Transformer during creation.
//
// Example:
//
//	tr := ggui.NewTransformer(ggui.WithWorkers(4), ggui.WithChunkSize(1024))
//	defer tr.Close()
type TransformerOption func(*transformerOptions)

// transformerOptions holds optional configuration for Transformer creation.
type transformerOptions struct {
	workers   int
	chunkSize int
}

// defaultTransformerOptions returns the default transformer options.
func defaultTransformerOptions() transformerOptions {
	return transformerOptions{
		workers:   0, // GOMAXPROCS
		chunkSize: defaultChunkSize,
	}
}

// WithWorkers sets the number of worker goroutines.
// Zero or negative uses GOMAXPROCS.
func WithWorkers(n int) TransformerOption {
	return func(o *transformerOptions) {
		o.workers = n
	}
}

// WithChunkSize sets how many invocations one work item evaluates.
// Values below CornerCount are raised to CornerCount.
func WithChunkSize(n int) TransformerOption {
	return func(o *transformerOptions) {
		o.chunkSize = max(n, CornerCount)
	}
}
