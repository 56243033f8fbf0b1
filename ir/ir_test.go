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

package ir

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNegationOfAndNegate(t *testing.T) {
	a := &TestExpr{TestID: 5}
	b := a.Negate()
	require.Equal(t, int64(-5), b.TestID)
	require.True(t, a.NegationOf(b))
	require.True(t, b.NegationOf(a))
	require.False(t, a.NegationOf(a))
}

func TestRealValuesStripsSubkeyPrefix(t *testing.T) {
	te := &TestExpr{Values: []string{"tenantA", "gold", "silver"}, NumberOfSubkeys: 1}
	require.Equal(t, []string{"gold", "silver"}, te.RealValues())
}

func TestVirtualKeyIncludesSubkeyPrefix(t *testing.T) {
	a := &TestExpr{Key: "plan", Values: []string{"tenantA", "gold"}, NumberOfSubkeys: 1}
	b := &TestExpr{Key: "plan", Values: []string{"tenantB", "gold"}, NumberOfSubkeys: 1}
	require.NotEqual(t, a.VirtualKey(), b.VirtualKey())
}

func TestAndExprTestIDSet(t *testing.T) {
	and := &AndExpr{Tests: []*TestExpr{{TestID: 1}, {TestID: -2}}}
	set := and.TestIDSet()
	require.Len(t, set, 2)
	_, ok := set[int64(-2)]
	require.True(t, ok)
}
