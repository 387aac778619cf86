package goshape

import (
	"math"
	"reflect"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Resolver turns field paths into Field accessors. Resolved fields are
// memoized per (element type, path).
//
// Resolver is safe for concurrent use.
type Resolver struct {
	members        *MemberCache
	compareStrings func(a, b string) int
	fields         *syncCache[fieldKey, *Field]
}

type fieldKey struct {
	typ  reflect.Type
	path string
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithMemberCache sets the member lookup cache. Resolvers share a process-wide
// cache by default.
func WithMemberCache(cache *MemberCache) ResolverOption {
	return func(r *Resolver) {
		if cache != nil {
			r.members = cache
		}
	}
}

// WithStringComparer replaces the three-way comparison used for textual
// fields. It is applied both to sorting and to keyset boundaries.
func WithStringComparer(compare func(a, b string) int) ResolverOption {
	return func(r *Resolver) {
		if compare != nil {
			r.compareStrings = compare
		}
	}
}

// WithCollation compares textual fields using the collation rules of tag.
func WithCollation(tag language.Tag, opts ...collate.Option) ResolverOption {
	var (
		mu       sync.Mutex
		collator = collate.New(tag, opts...)
	)

	// collate.Collator keeps internal buffers and is not safe for concurrent use.
	return WithStringComparer(func(a, b string) int {
		mu.Lock()
		defer mu.Unlock()

		return collator.CompareString(a, b)
	})
}

// NewResolver builds a resolver with its own field cache.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		members:        _defaultMemberCache,
		compareStrings: strings.Compare,
		fields:         newSyncCache[fieldKey, *Field](),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

var _defaultResolver = NewResolver()

// DefaultResolver returns the resolver used by the path based helpers.
// Strings are compared byte-wise and case-sensitively.
func DefaultResolver() *Resolver {
	return _defaultResolver
}

// ResolveFor resolves path against the element type T.
func ResolveFor[T any](r *Resolver, path string) (*Field, error) {
	return r.Resolve(reflect.TypeFor[T](), path)
}

// Resolve resolves path against the element type t. Segments are matched
// against exported fields, ignoring case.
func (r *Resolver) Resolve(t reflect.Type, path string) (*Field, error) {
	if r == nil {
		r = _defaultResolver
	}
	if t == nil {
		return nil, &ResolutionError{Path: path, Reason: "nil element type"}
	}

	return r.fields.getOrAdd(fieldKey{typ: t, path: path}, func() (*Field, error) {
		return r.resolve(t, path)
	})
}

func (r *Resolver) resolve(t reflect.Type, path string) (*Field, error) {
	segments, err := ParseFieldPath(path)
	if err != nil {
		return nil, &ResolutionError{Path: path, Type: t, Reason: "empty path or segment"}
	}

	f := &Field{
		owner: t,
		path:  make(FieldPath, 0, len(segments)),
	}

	current := t
	for _, segment := range segments {
		st := derefType(current)
		if st.Kind() != reflect.Struct {
			return nil, &ResolutionError{
				Path:    path,
				Type:    t,
				Segment: segment,
				Reason:  "'" + typeName(current) + "' has no members",
			}
		}

		m, ok := r.members.Lookup(st, segment)
		if !ok {
			return nil, &ResolutionError{
				Path:    path,
				Type:    t,
				Segment: segment,
				Reason:  "no public member on '" + typeName(st) + "'",
				Closest: closestName(segment, memberNames(st)),
			}
		}

		f.path = append(f.path, m.Name)
		f.names = append(f.names, m.Names...)
		f.steps = append(f.steps, m.Index...)
		current = m.Type
	}

	f.typ = current
	f.base = derefType(current)
	f.mode = ComparisonModeOf(f.base)
	f.compare = r.comparatorFor(f.base)
	f.equal = equalityFor(f.base)

	return f, nil
}

func closestName(input string, dataSet []string) string {
	minDist := math.MaxInt
	closest := ""

	lowered := []rune(strings.ToLower(input))
	for _, name := range dataSet {
		dist := levenshtein([]rune(strings.ToLower(name)), lowered)
		if dist < minDist {
			minDist = dist
			closest = name
		}
	}

	return closest
}
