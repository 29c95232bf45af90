package cache

// ScopedKeyer wraps a Keyer with a prefix so that responses fetched under
// different credentials never share entries. An authenticated GitHub client
// can see repositories an anonymous one cannot.
//
//	anon := NewDefaultKeyer()
//	authed := NewScopedKeyer(anon, CredentialScope(token))
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

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// CredentialScope returns the key prefix for a bearer credential.
// The empty credential maps to the empty prefix.
func CredentialScope(token string) string {
	if token == "" {
		return ""
	}
	return "cred:" + Hash([]byte(token))[:16] + ":"
}
