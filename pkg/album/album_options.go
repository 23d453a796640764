package album

type Option func(a *Album)

// WithShuffle picks pictures at random instead of by name.
func WithShuffle() Option {
	return func(a *Album) {
		a.shuffle = true
	}
}

// WithStartAfter resumes a sequential slideshow after the named picture.
func WithStartAfter(name string) Option {
	return func(a *Album) {
		a.last = name
	}
}
