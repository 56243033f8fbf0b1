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

// Package buildid mints a per-compile correlation id. `mtgc` logs it once,
// on its "starting compile" line; it is not attached to later log lines or
// to trace spans.
package buildid

import uuid "github.com/satori/go.uuid"

// New returns a fresh correlation id as its canonical string form.
func New() string {
	return uuid.NewV4().String()
}
