package updatexml

// Decode limits for untrusted documents. A repository index is network
// content; the defaults are generous for any real Updates.xml.
const (
	defaultMaxDocumentSize = 64 << 20
	defaultMaxDepth        = 64
)

type options struct {
	maxDocumentSize int64
	maxDepth        int
}

// Option configures the parser.
type Option func(*options)

// MaxDocumentSize caps the number of input bytes consumed before the parse
// is rejected as unsafe. Zero or negative keeps the default (64 MiB).
func MaxDocumentSize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDocumentSize = n
		}
	}
}

// MaxDepth caps element nesting before the parse is rejected as unsafe.
// Zero or negative keeps the default (64).
func MaxDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

func resolveOptions(opts []Option) options {
	o := options{
		maxDocumentSize: defaultMaxDocumentSize,
		maxDepth:        defaultMaxDepth,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
