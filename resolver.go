// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ion

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned by resolvers that have nowhere to look.
var ErrNotFound = errors.New("source not found")

// Resolver is used by the compiler to locate the text of sources.
type Resolver interface {
	// FindFileByPath searches for the source with the given name.
	FindFileByPath(path string) (SearchResult, error)
}

// SearchResult represents information about a source that was found by a
// [Resolver].
type SearchResult struct {
	// The text of the source. If it also implements [io.Closer], the compiler
	// closes it once it has been read.
	Source io.Reader
}

// ResolverFunc is a simple function type that implements [Resolver].
type ResolverFunc func(string) (SearchResult, error)

var _ Resolver = ResolverFunc(nil)

// FindFileByPath implements the Resolver interface.
func (f ResolverFunc) FindFileByPath(path string) (SearchResult, error) {
	return f(path)
}

// CompositeResolver is a slice of resolvers, which are consulted in order
// until one can supply a result. If none of the constituent resolvers can
// supply a result, the error returned by the first resolver is returned. If
// the slice of resolvers is empty, all operations return [ErrNotFound].
type CompositeResolver []Resolver

var _ Resolver = CompositeResolver(nil)

// FindFileByPath implements the Resolver interface.
func (f CompositeResolver) FindFileByPath(path string) (SearchResult, error) {
	if len(f) == 0 {
		return SearchResult{}, ErrNotFound
	}
	var firstErr error
	for _, res := range f {
		r, err := res.FindFileByPath(path)
		if err == nil {
			return r, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return SearchResult{}, firstErr
}

// SourceResolver can resolve sources by opening them through an accessor
// function.
type SourceResolver struct {
	// Optional list of directories in which to search. If non-empty, each
	// name is joined to every entry in turn until the accessor finds it; a
	// "not exist" error moves on to the next entry and any other error stops
	// the search. If empty, names are given to the accessor unchanged.
	ImportPaths []string

	// Used to open the named source. This field is required: this package
	// never reads from the file system on its own.
	Accessor func(path string) (io.ReadCloser, error)
}

var _ Resolver = (*SourceResolver)(nil)

// FindFileByPath implements the Resolver interface.
func (r *SourceResolver) FindFileByPath(path string) (SearchResult, error) {
	if r.Accessor == nil {
		return SearchResult{}, ErrNotFound
	}

	if len(r.ImportPaths) == 0 {
		reader, err := r.Accessor(path)
		if err != nil {
			return SearchResult{}, err
		}
		return SearchResult{Source: reader}, nil
	}

	var e error
	for _, importPath := range r.ImportPaths {
		reader, err := r.Accessor(filepath.Join(importPath, path))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				e = err
				continue
			}
			return SearchResult{}, err
		}
		return SearchResult{Source: reader}, nil
	}
	return SearchResult{}, e
}

// SourceAccessorFromMap returns a function that can be used as the Accessor
// field of a [SourceResolver] that uses the given map to load source. The
// map keys are source names and the values are the text of the sources.
func SourceAccessorFromMap(srcs map[string]string) func(string) (io.ReadCloser, error) {
	return func(path string) (io.ReadCloser, error) {
		src, ok := srcs[path]
		if !ok {
			return nil, &fs.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
		}
		return io.NopCloser(strings.NewReader(src)), nil
	}
}
