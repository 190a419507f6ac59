// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package tileset holds the registry of tile kinds a map refers to by index.
package tileset

import (
	"errors"
	"fmt"

	"github.com/gogpu/tiles/texture"
)

// ErrInvalidIndex is returned when a kind is added with a negative index.
var ErrInvalidIndex = errors.New("tileset: invalid index")

// Entry is the result of an index lookup: either a registered kind or a
// placeholder standing in for an index nothing is registered at.
type Entry struct {
	kind        *Kind
	placeholder bool
}

// Kind returns the kind. It is never nil, also for placeholders.
func (e Entry) Kind() *Kind { return e.kind }

// Placeholder reports whether the entry stands in for a missing kind.
func (e Entry) Placeholder() bool { return e.placeholder }

// Tileset maps stable indices to kinds.
type Tileset struct {
	kinds        []*Kind
	placeholders map[int]*Kind
}

// New creates an empty tileset.
func New() *Tileset {
	return &Tileset{placeholders: make(map[int]*Kind)}
}

// Add registers k at k.Idx, replacing any kind already there.
func (ts *Tileset) Add(k *Kind) error {
	if k == nil || k.Idx < 0 {
		return ErrInvalidIndex
	}
	for len(ts.kinds) <= k.Idx {
		ts.kinds = append(ts.kinds, nil)
	}
	if old := ts.kinds[k.Idx]; old != nil && old != k {
		old.release()
	}
	ts.kinds[k.Idx] = k
	delete(ts.placeholders, k.Idx)
	return nil
}

// Len returns one past the highest registered index.
func (ts *Tileset) Len() int {
	return len(ts.kinds)
}

// Kinds returns the registered kinds in index order.
func (ts *Tileset) Kinds() []*Kind {
	out := make([]*Kind, 0, len(ts.kinds))
	for _, k := range ts.kinds {
		if k != nil {
			out = append(out, k)
		}
	}
	return out
}

// ByIdx returns the kind registered at idx. Unregistered indices return a
// placeholder that stays the same for repeated lookups of that index.
func (ts *Tileset) ByIdx(idx int) Entry {
	if idx >= 0 && idx < len(ts.kinds) && ts.kinds[idx] != nil {
		return Entry{kind: ts.kinds[idx]}
	}
	if k, ok := ts.placeholders[idx]; ok {
		return Entry{kind: k, placeholder: true}
	}

	k := NewKind(idx, "")
	k.Finalize()
	ts.placeholders[idx] = k
	slogger().Debug("tileset: placeholder created", "idx", idx)
	return Entry{kind: k, placeholder: true}
}

// Adjacent walks from idx in the direction of dir's sign and returns the
// next registered kind. With wrap the walk continues past either end;
// without it, nil is returned at the boundary. Placeholders are never
// returned.
func (ts *Tileset) Adjacent(idx, dir int, wrap bool) *Kind {
	n := len(ts.kinds)
	if n == 0 || dir == 0 {
		return nil
	}
	step := 1
	if dir < 0 {
		step = -1
	}

	i := idx
	if wrap {
		i = ((i % n) + n) % n
	} else {
		i = min(max(i, -1), n)
	}

	for range n {
		i += step
		if wrap {
			i = ((i % n) + n) % n
		} else if i < 0 || i >= n {
			return nil
		}
		if k := ts.kinds[i]; k != nil {
			return k
		}
	}
	return nil
}

// LoadTextures acquires the texture of every kind from mgr and finalizes
// the kinds. If used is non-nil, only kinds whose index is marked in used
// are loaded. Kinds whose image fails to load keep no texture; their errors
// are joined into the result.
func (ts *Tileset) LoadTextures(mgr *texture.Manager, used []bool) error {
	var errs []error
	for idx, k := range ts.kinds {
		if k == nil {
			continue
		}
		if used != nil && (idx >= len(used) || !used[idx]) {
			continue
		}
		if k.tex == nil && k.Gfx != "" {
			h, err := mgr.Acquire(k.Gfx)
			if err != nil {
				slogger().Warn("tileset: texture load failed", "idx", idx, "gfx", k.Gfx, "err", err)
				errs = append(errs, fmt.Errorf("tileset: kind %d: %w", idx, err))
			} else {
				k.SetTexture(h)
			}
		}
		k.Finalize()
	}
	return errors.Join(errs...)
}

// Clear releases every texture and forgets all kinds and placeholders.
func (ts *Tileset) Clear() {
	for _, k := range ts.kinds {
		if k != nil {
			k.release()
		}
	}
	ts.kinds = nil
	clear(ts.placeholders)
}
