package rvalue

// DefaultMaxDepth bounds the nesting of lists and objects accepted by the
// parser.
const DefaultMaxDepth = 10000

type loadOpts struct {
	mode     Mode
	maxDepth int
	owned    bool
}

type LoadOption func(*loadOpts)

// LoadMode sets the mode of the loaded value and everything reached from
// it.
func LoadMode(m Mode) LoadOption {
	return func(o *loadOpts) { o.mode = m }
}

func LoadStrict() LoadOption {
	return LoadMode(Strict)
}

func LoadTolerant() LoadOption {
	return LoadMode(Tolerant)
}

// LoadMaxDepth limits nesting; values <= 0 select DefaultMaxDepth.
func LoadMaxDepth(n int) LoadOption {
	return func(o *loadOpts) { o.maxDepth = n }
}

func getOpts(opts []LoadOption) *loadOpts {
	o := &loadOpts{mode: DefaultMode, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(o)
	}
	if o.maxDepth <= 0 {
		o.maxDepth = DefaultMaxDepth
	}
	return o
}
