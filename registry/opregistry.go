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

package registry

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
)

// OpInfo is the metadata the test-op registry holds about one primitive
// operator (spec §6.1).
type OpInfo struct {
	Op        string `json:"op"`
	ReverseOp string `json:"reverse_op"`

	MinValues int  `json:"min_number_of_values"`
	MaxValues *int `json:"max_number_of_values,omitempty"`

	// NumberOfSubkeys is how many of the leading Values are "keys" rather
	// than "real values" (the virtual-key prefix, spec §4.3.2/§4.3.4).
	NumberOfSubkeys int `json:"number_of_subkeys"`

	// EqualsRealValues / UnequalsRealValues are the semantic flags
	// reduction and merging use to decide an op's polarity: Equals means
	// "value is one of the real values" (in/eq family); Unequals means
	// "value is none of the real values" (nin/neq family).
	EqualsRealValues   bool `json:"equals_real_values"`
	UnequalsRealValues bool `json:"unequals_real_values"`

	// MultipleOp is the normalization target P2 rewrites a single-value op
	// to (e.g. eq -> in), to maximize merging opportunities in P3.
	MultipleOp string `json:"multiple_op,omitempty"`
	// SingleOp is the rewrite target P3 merging collapses a multi-value op
	// to once only one real value survives (e.g. in -> eq).
	SingleOp string `json:"single_op,omitempty"`
}

// IsInFamily reports whether this op tests set membership (either polarity).
func (o OpInfo) IsInFamily() bool {
	return o.EqualsRealValues || o.UnequalsRealValues
}

// OpRegistry is the test-op metadata table, seeded from a built-in set plus
// an optional JSON overlay (spec §6.1). Read-only after construction.
type OpRegistry struct {
	byOp map[string]OpInfo
}

// builtinOps is the fixed base table every registry is seeded from.
var builtinOps = []OpInfo{
	{Op: "eq", ReverseOp: "neq", MinValues: 1, MaxValues: intPtr(1), EqualsRealValues: true, MultipleOp: "in"},
	{Op: "neq", ReverseOp: "eq", MinValues: 1, MaxValues: intPtr(1), UnequalsRealValues: true, MultipleOp: "nin"},
	{Op: "in", ReverseOp: "nin", MinValues: 1, EqualsRealValues: true, SingleOp: "eq"},
	{Op: "nin", ReverseOp: "in", MinValues: 1, UnequalsRealValues: true, SingleOp: "neq"},
	{Op: "gt", ReverseOp: "lte", MinValues: 1, MaxValues: intPtr(1)},
	{Op: "lte", ReverseOp: "gt", MinValues: 1, MaxValues: intPtr(1)},
	{Op: "gte", ReverseOp: "lt", MinValues: 1, MaxValues: intPtr(1)},
	{Op: "lt", ReverseOp: "gte", MinValues: 1, MaxValues: intPtr(1)},
	{Op: "contains", ReverseOp: "ncontains", MinValues: 1, MaxValues: intPtr(1)},
	{Op: "ncontains", ReverseOp: "contains", MinValues: 1, MaxValues: intPtr(1)},
	{Op: "len_eq", ReverseOp: "len_neq", MinValues: 1, MaxValues: intPtr(1)},
	{Op: "len_neq", ReverseOp: "len_eq", MinValues: 1, MaxValues: intPtr(1)},
}

func intPtr(v int) *int { return &v }

// NewOpRegistry builds the built-in table. Use LoadOverlay to merge a JSON
// overlay loaded once at startup.
func NewOpRegistry() *OpRegistry {
	r := &OpRegistry{byOp: make(map[string]OpInfo, len(builtinOps))}
	for _, op := range builtinOps {
		r.byOp[op.Op] = op
	}
	return r
}

// Lookup resolves an operator name to its metadata.
func (r *OpRegistry) Lookup(op string) (OpInfo, bool) {
	info, ok := r.byOp[op]
	return info, ok
}

// Names returns every registered operator name, for "did you mean" suggestions.
func (r *OpRegistry) Names() []string {
	names := make([]string, 0, len(r.byOp))
	for name := range r.byOp {
		names = append(names, name)
	}
	return names
}

// LoadOverlay merges operator definitions from a JSON file over the
// built-in table; entries in the overlay replace or add to built-ins by Op
// name. Loaded once at startup, per spec §6.1.
func (r *OpRegistry) LoadOverlay(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening test-op registry overlay %q", path)
	}
	defer f.Close()
	return r.LoadOverlayFrom(f)
}

// LoadOverlayFrom merges operator definitions read from rd.
func (r *OpRegistry) LoadOverlayFrom(rd io.Reader) error {
	var overlay []OpInfo
	if err := json.NewDecoder(rd).Decode(&overlay); err != nil {
		return errors.Wrap(err, "decoding test-op registry overlay")
	}
	for _, op := range overlay {
		r.byOp[op.Op] = op
	}
	return nil
}
