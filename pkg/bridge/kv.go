package bridge

import (
	"context"
	"fmt"
	"strings"

	"github.com/lumigraph/omebridge/pkg/types"
)

// defaultSeparator separates keys and values in concatenated output.
const defaultSeparator = "\t"

// KeyValuePairs returns all key-value content attached to a repository
// object as one separator-joined string. An empty separator defaults
// to a tab.
func (b *Bridge) KeyValuePairs(ctx context.Context, rawType string, id int64, separator string) (string, error) {
	obj, err := b.repositoryObject(ctx, rawType, id)
	if err != nil {
		return "", err
	}
	pairs, err := b.client.KeyValuePairs(ctx, obj.Addr())
	if err != nil {
		return "", fmt.Errorf("retrieve key-value pairs of %s: %w", obj.Addr(), err)
	}
	sep := separator
	if sep == "" {
		sep = defaultSeparator
	}
	parts := make([]string, 0, 2*len(pairs))
	for _, p := range pairs {
		parts = append(parts, p.Key, p.Value)
	}
	return strings.Join(parts, sep), nil
}

// GetValue returns the value stored under key on a repository object.
// When the key is absent a non-nil defaultValue substitutes for it;
// without a default the lookup fails with ErrKeyNotFound.
func (b *Bridge) GetValue(ctx context.Context, rawType string, id int64, key string, defaultValue *string) (string, error) {
	obj, err := b.repositoryObject(ctx, rawType, id)
	if err != nil {
		return "", err
	}
	pairs, err := b.client.KeyValuePairs(ctx, obj.Addr())
	if err != nil {
		return "", fmt.Errorf("retrieve key-value pairs of %s: %w", obj.Addr(), err)
	}
	for _, p := range pairs {
		if p.Key == key {
			return p.Value, nil
		}
	}
	if defaultValue != nil {
		return *defaultValue, nil
	}
	return "", fmt.Errorf("retrieve value: %w: %q", types.ErrKeyNotFound, key)
}
