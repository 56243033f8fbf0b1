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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuiltinOpsReverseIsSymmetric(t *testing.T) {
	r := NewOpRegistry()
	for _, op := range builtinOps {
		rev, ok := r.Lookup(op.ReverseOp)
		require.True(t, ok, "reverse op %q of %q must itself be registered", op.ReverseOp, op.Op)
		require.Equal(t, op.Op, rev.ReverseOp, "reverse of reverse must be the original op")
	}
}

func TestLookupUnknownOp(t *testing.T) {
	r := NewOpRegistry()
	_, ok := r.Lookup("bogus")
	require.False(t, ok)
}

func TestLoadOverlayAddsAndReplaces(t *testing.T) {
	r := NewOpRegistry()
	overlay := `[
		{"op": "eq", "reverse_op": "neq", "min_number_of_values": 1, "max_number_of_values": 1, "equals_real_values": true, "multiple_op": "in"},
		{"op": "custom", "reverse_op": "ncustom", "min_number_of_values": 1}
	]`
	require.NoError(t, r.LoadOverlayFrom(strings.NewReader(overlay)))

	custom, ok := r.Lookup("custom")
	require.True(t, ok)
	require.Equal(t, "ncustom", custom.ReverseOp)

	eq, ok := r.Lookup("eq")
	require.True(t, ok)
	require.True(t, eq.EqualsRealValues)
}

func TestIsInFamily(t *testing.T) {
	r := NewOpRegistry()
	in, _ := r.Lookup("in")
	require.True(t, in.IsInFamily())
	gt, _ := r.Lookup("gt")
	require.False(t, gt.IsInFamily())
}
