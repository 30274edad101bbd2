package cache

// ScopedKeyer prefixes every key of an inner Keyer. It keeps kolam entries
// apart from other applications sharing one Redis database.
//
//	keyer := cache.NewScopedKeyer(nil, "kolam:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer selects
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ArtifactKey(paramsHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(paramsHash, opts)
}

func (k *ScopedKeyer) GenerationKey(requestHash string) string {
	return k.prefix + k.inner.GenerationKey(requestHash)
}

func (k *ScopedKeyer) AnalysisKey(imageHash string) string {
	return k.prefix + k.inner.AnalysisKey(imageHash)
}
