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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalizeInt(t *testing.T) {
	require.Equal(t, "3", Canonicalize(KeyTypeInt, "3"))
	require.Equal(t, "3", Canonicalize(KeyTypeInt, "03"))
	require.Equal(t, "not-a-number", Canonicalize(KeyTypeInt, "not-a-number"))
}

func TestCanonicalizeBool(t *testing.T) {
	require.Equal(t, "true", Canonicalize(KeyTypeBool, "true"))
	require.Equal(t, "true", Canonicalize(KeyTypeBool, "1"))
	require.Equal(t, "false", Canonicalize(KeyTypeBool, "0"))
}

func TestCanonicalizeStringPassesThrough(t *testing.T) {
	require.Equal(t, "us-west", Canonicalize(KeyTypeString, "us-west"))
}
