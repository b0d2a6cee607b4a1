package cache

// ScopedKeyer wraps a Keyer with a prefix so that several projects can
// share one backend without colliding.
//
//	k := NewScopedKeyer(NewDefaultKeyer(), "project:liver-cohort:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// PlotKey generates a prefixed figure key.
func (k *ScopedKeyer) PlotKey(resultsHash string, opts PlotKeyOpts) string {
	return k.prefix + k.inner.PlotKey(resultsHash, opts)
}

// ImportKey generates a prefixed import key.
func (k *ScopedKeyer) ImportKey(fileHash string, opts ImportKeyOpts) string {
	return k.prefix + k.inner.ImportKey(fileHash, opts)
}
