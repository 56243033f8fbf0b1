// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package registry implements the two external collaborators spec.md §6.1
// names but doesn't define: the key registry (declared key name -> integer
// index and type) and the test-op registry (operator metadata table).
package registry

// KeyType is the declared type of a context key.
type KeyType int

const (
	KeyTypeString KeyType = iota
	KeyTypeInt
	KeyTypeBool
	KeyTypeStringList
)

// KeyInfo is what the key registry knows about one declared key.
type KeyInfo struct {
	Name  string
	Index int
	Type  KeyType
}

// KeyRegistry maps a declared key name to its integer index and type. It is
// read-only after construction and may be shared across concurrent unit
// compiles (spec §5).
type KeyRegistry struct {
	byName map[string]KeyInfo
	names  []string
}

// NewKeyRegistry builds a registry from an ordered key list. Each key keeps
// the Index it carries; Names reports the keys in list order.
func NewKeyRegistry(keys []KeyInfo) *KeyRegistry {
	r := &KeyRegistry{byName: make(map[string]KeyInfo, len(keys)), names: make([]string, 0, len(keys))}
	for _, k := range keys {
		r.byName[k.Name] = k
		r.names = append(r.names, k.Name)
	}
	return r
}

// Lookup resolves a declared key name to its KeyInfo.
func (r *KeyRegistry) Lookup(name string) (KeyInfo, bool) {
	k, ok := r.byName[name]
	return k, ok
}

// Names returns every declared key name, for "did you mean" suggestions.
func (r *KeyRegistry) Names() []string {
	return r.names
}
