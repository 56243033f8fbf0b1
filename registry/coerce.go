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

import "github.com/spf13/cast"

// Canonicalize coerces a literal value (as it arrives from the parser,
// always a string) to the canonical string form for the given key type, so
// that e.g. "3" and "03" map to the same string for an int-typed key. The
// analyzer does not call it: test identity is hashed from values as
// written. Values that don't parse as the declared type are returned unchanged;
// type-compatibility checking beyond this is explicitly out of scope
// (spec.md Non-goals: "type inference beyond operator/value compatibility").
func Canonicalize(t KeyType, value string) string {
	switch t {
	case KeyTypeInt:
		if n, err := cast.ToInt64E(value); err == nil {
			return cast.ToString(n)
		}
	case KeyTypeBool:
		if b, err := cast.ToBoolE(value); err == nil {
			return cast.ToString(b)
		}
	}
	return value
}
