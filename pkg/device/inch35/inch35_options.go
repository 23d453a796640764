package inch35

type Option func(i *Inch35)

// WithChunkSize splits pixel streams into writes of at most n bytes.
func WithChunkSize(n int) Option {
	return func(i *Inch35) {
		i.chunk = n
	}
}

// WithSize overrides the panel resolution.
func WithSize(width, height int) Option {
	return func(i *Inch35) {
		i.width = width
		i.height = height
	}
}
