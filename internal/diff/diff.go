// Package diff compares two snapshots of an entity's editable fields and
// reports which of them changed. Every edit dialog runs it on each keystroke
// to gate the submit/undo controls and to build the sparse update payload.
package diff

import (
	"reflect"
	"sort"
)

// Snapshot is one observation of an entity's editable fields, keyed by field
// name. The "original" snapshot holds server truth at fetch time and must not
// be mutated during an edit session; only the "working" copy changes.
type Snapshot map[string]any

// Diff lists the fields whose working value departs from the original.
type Diff struct {
	// Keys holds the modified field names in sorted order.
	Keys []string
	// Changed maps each modified key to its working value. This sparse map
	// is the update payload sent to the backend.
	Changed map[string]any
}

// Compute compares working against original field by field and returns nil
// when nothing changed, so callers can short-circuit submission.
//
// Comparison is by identity, not deep structure: a key counts as modified
// when its values differ under ==. Values whose dynamic type is not
// comparable are always treated as modified, mirroring reference identity.
// Only keys present in working are examined.
func Compute(working, original Snapshot) *Diff {
	var keys []string
	for key, value := range working {
		if identical(value, original[key]) {
			continue
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return nil
	}
	sort.Strings(keys)

	changed := make(map[string]any, len(keys))
	for _, key := range keys {
		changed[key] = working[key]
	}
	return &Diff{Keys: keys, Changed: changed}
}

// Clone returns an independent copy of the snapshot so a working copy can be
// edited without touching the original.
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return nil
	}
	dup := make(Snapshot, len(s))
	for key, value := range s {
		dup[key] = value
	}
	return dup
}

func identical(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return false
	}
	return a == b
}
