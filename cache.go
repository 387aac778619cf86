package goshape

import (
	"reflect"
	"strings"
	"sync"
)

// syncCache is a read-mostly map with get-or-add semantics. The value for a
// key is computed at most once per cache, even under concurrent population.
type syncCache[K comparable, V any] struct {
	mutex sync.RWMutex
	items map[K]V
}

func newSyncCache[K comparable, V any]() *syncCache[K, V] {
	return &syncCache[K, V]{items: make(map[K]V)}
}

func (c *syncCache[K, V]) getOrAdd(key K, build func() (V, error)) (V, error) {
	c.mutex.RLock()
	v, ok := c.items[key]
	c.mutex.RUnlock()
	if ok {
		return v, nil
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	// Another goroutine may have won the race while the write lock was awaited.
	if v, ok = c.items[key]; ok {
		return v, nil
	}

	v, err := build()
	if err != nil {
		return v, err
	}
	c.items[key] = v

	return v, nil
}

func (c *syncCache[K, V]) len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.items)
}

// Member is a public struct field reachable from a struct type, possibly
// promoted through embedded structs.
type Member struct {
	// Name is the declared name of the field.
	Name string
	// Index is the index sequence for reflect.Value.FieldByIndex.
	Index []int
	// Names holds the declared names along Index, embedded structs included.
	Names []string
	// Type is the declared type of the field.
	Type reflect.Type
}

type memberKey struct {
	typ     reflect.Type
	segment string
}

type memberEntry struct {
	member Member
	found  bool
}

// MemberCache memoizes (struct type, segment) lookups. Misses are cached as
// well: the set of types and members is fixed once the program is running.
//
// MemberCache is safe for concurrent use.
type MemberCache struct {
	entries *syncCache[memberKey, memberEntry]
}

func NewMemberCache() *MemberCache {
	return &MemberCache{
		entries: newSyncCache[memberKey, memberEntry](),
	}
}

var _defaultMemberCache = NewMemberCache()

// Lookup finds the public field of struct type t named segment, ignoring
// case. An exact-case match wins over a case-folded one; among several
// case-folded candidates the shallowest and then the first declared wins.
func (c *MemberCache) Lookup(t reflect.Type, segment string) (Member, bool) {
	if c == nil {
		c = _defaultMemberCache
	}

	entry, _ := c.entries.getOrAdd(memberKey{typ: t, segment: segment}, func() (memberEntry, error) {
		m, ok := lookupMember(t, segment)
		return memberEntry{member: m, found: ok}, nil
	})

	return entry.member, entry.found
}

// Len returns the number of cached lookups, hits and misses combined.
func (c *MemberCache) Len() int {
	if c == nil {
		return 0
	}

	return c.entries.len()
}

func lookupMember(t reflect.Type, segment string) (Member, bool) {
	if t.Kind() != reflect.Struct {
		return Member{}, false
	}

	var (
		best      reflect.StructField
		bestFound bool
		bestExact bool
	)
	for _, sf := range reflect.VisibleFields(t) {
		exact := sf.Name == segment
		if !exact && !strings.EqualFold(sf.Name, segment) {
			continue
		}
		if !exportedChain(t, sf.Index) {
			continue
		}

		switch {
		case !bestFound:
		case exact && !bestExact:
		case exact == bestExact && len(sf.Index) < len(best.Index):
		default:
			continue
		}
		best, bestFound, bestExact = sf, true, exact
	}

	if !bestFound {
		return Member{}, false
	}

	return Member{
		Name:  best.Name,
		Index: best.Index,
		Names: indexNames(t, best.Index),
		Type:  best.Type,
	}, true
}

// exportedChain reports whether every field along index is exported.
func exportedChain(t reflect.Type, index []int) bool {
	for _, i := range index {
		t = derefType(t)
		sf := t.Field(i)
		if !sf.IsExported() {
			return false
		}
		t = sf.Type
	}

	return true
}

func indexNames(t reflect.Type, index []int) []string {
	names := make([]string, 0, len(index))
	for _, i := range index {
		t = derefType(t)
		sf := t.Field(i)
		names = append(names, sf.Name)
		t = sf.Type
	}

	return names
}

// memberNames lists public field names of struct type t. Used for
// suggestions only.
func memberNames(t reflect.Type) []string {
	if t.Kind() != reflect.Struct {
		return nil
	}

	var names []string
	for _, sf := range reflect.VisibleFields(t) {
		if exportedChain(t, sf.Index) {
			names = append(names, sf.Name)
		}
	}

	return names
}

func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t
}
