// Package scriptlet resolves logical bootstrap-payload references to the
// startup scriptlets embedded in the binary. A reference has the form
// "collection:name", e.g. "bootstrap:setup_path".
package scriptlet

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

//go:embed payloads/*.py
var payloadFS embed.FS

// Collection is the collection name of the payloads shipped with the tool.
const Collection = "bootstrap"

// ErrUnknownPayload is returned when a reference names a collection or
// payload that does not exist.
var ErrUnknownPayload = errors.New("scriptlet: unknown payload")

// cacheSize bounds the resolved-payload cache. The shipped collection is
// tiny; the bound matters only when extra collections are registered.
const cacheSize = 32

// Library resolves payload references, caching resolved source text.
type Library struct {
	cache *lru.Cache[string, string]
	extra map[string]func(name string) (string, error)
}

// NewLibrary creates a payload library serving the embedded collection.
func NewLibrary() (*Library, error) {
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("scriptlet: creating payload cache: %w", err)
	}
	return &Library{
		cache: cache,
		extra: make(map[string]func(name string) (string, error)),
	}, nil
}

// RegisterCollection adds a named payload collection backed by the given
// lookup function. Used by callers that ship payloads of their own.
func (l *Library) RegisterCollection(name string, lookup func(name string) (string, error)) {
	l.extra[name] = lookup
}

// Load resolves a "collection:name" reference to payload source text.
func (l *Library) Load(ref string) (string, error) {
	if source, ok := l.cache.Get(ref); ok {
		return source, nil
	}

	collection, name, found := strings.Cut(ref, ":")
	if !found || collection == "" || name == "" {
		return "", fmt.Errorf("%w: malformed reference %q, want \"collection:name\"", ErrUnknownPayload, ref)
	}

	source, err := l.resolve(collection, name)
	if err != nil {
		return "", err
	}
	l.cache.Add(ref, source)
	return source, nil
}

func (l *Library) resolve(collection, name string) (string, error) {
	if collection == Collection {
		data, err := payloadFS.ReadFile("payloads/" + name + ".py")
		if err != nil {
			return "", fmt.Errorf("%w: %s:%s", ErrUnknownPayload, collection, name)
		}
		return string(data), nil
	}

	lookup, ok := l.extra[collection]
	if !ok {
		return "", fmt.Errorf("%w: no collection %q", ErrUnknownPayload, collection)
	}
	source, err := lookup(name)
	if err != nil {
		return "", fmt.Errorf("scriptlet: loading %s:%s: %w", collection, name, err)
	}
	return source, nil
}

// Names returns the payload names available in the embedded collection.
func Names() []string {
	entries, err := payloadFS.ReadDir("payloads")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".py"))
	}
	return names
}
