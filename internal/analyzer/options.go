package analyzer

// CompareOptions configures a comparison run
type CompareOptions struct {
	// Opacity of the softened right image under the red highlight, in [0,1]
	Opacity float64

	// SkipDiffImage computes zones only
	SkipDiffImage bool

	// MissingPlaceholder compares a present image against a blank canonical-size
	// image instead of reporting the pair as not applicable
	MissingPlaceholder bool

	// Workers > 1 compares pairs concurrently; report order is unchanged
	Workers int
}

// DefaultOptions returns default comparison options
func DefaultOptions() CompareOptions {
	return CompareOptions{
		Opacity: 1.0,
		Workers: 1,
	}
}

// WithOpacity returns options with the given background opacity
func (opts CompareOptions) WithOpacity(opacity float64) CompareOptions {
	opts.Opacity = opacity
	return opts
}

// WithWorkers returns options comparing up to n pairs at once
func (opts CompareOptions) WithWorkers(n int) CompareOptions {
	if n < 1 {
		n = 1
	}
	opts.Workers = n
	return opts
}

// WithMissingPlaceholder enables comparison against a blank image for absent counterparts
func (opts CompareOptions) WithMissingPlaceholder() CompareOptions {
	opts.MissingPlaceholder = true
	return opts
}

// WithoutDiffImage disables diff image rendering
func (opts CompareOptions) WithoutDiffImage() CompareOptions {
	opts.SkipDiffImage = true
	return opts
}
