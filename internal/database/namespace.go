package database

import "context"

// Namespaced préfixe toutes les clés, pour isoler le stockage de chaque appareil
type Namespaced struct {
	inner  KeyValueStore
	prefix string
}

func Namespace(inner KeyValueStore, prefix string) *Namespaced {
	return &Namespaced{inner: inner, prefix: prefix}
}

func (n *Namespaced) Get(ctx context.Context, key string) (string, bool, error) {
	return n.inner.Get(ctx, n.prefix+key)
}

func (n *Namespaced) Set(ctx context.Context, key, value string) error {
	return n.inner.Set(ctx, n.prefix+key, value)
}

func (n *Namespaced) Del(ctx context.Context, key string) error {
	return n.inner.Del(ctx, n.prefix+key)
}

// Close ne ferme pas le store partagé
func (n *Namespaced) Close() error {
	return nil
}
