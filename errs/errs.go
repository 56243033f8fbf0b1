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

// Package errs defines the compiler's fatal error taxonomy (spec §7). Every
// kind except the duplicate bundle and unit name kinds (bundles and units
// carry no source location) is raised with the offending source location
// attached; all are fatal for the affected unit and none is retried.
package errs

import (
	goerrors "gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrDuplicateBundleName: two bundles in a component share a name.
	ErrDuplicateBundleName = goerrors.NewKind("duplicate bundle name %q in component %q (first seen at %s)")
	// ErrDuplicateUnitName: two units in a bundle share a name.
	ErrDuplicateUnitName = goerrors.NewKind("duplicate unit name %q in bundle %q (first seen at %s)")
	// ErrDuplicateCaseValue: a switch has two cases with the same literal value.
	ErrDuplicateCaseValue = goerrors.NewKind("duplicate case value %q on key %q at %s (first seen at %s)")
	// ErrMissingReturnStatement: a control-flow path has no terminating return.
	ErrMissingReturnStatement = goerrors.NewKind("path starting at %s falls through without a terminating return")
	// ErrDuplicateLabelName: a label name is reused within a unit.
	ErrDuplicateLabelName = goerrors.NewKind("duplicate label %q at %s (first seen at %s)")
	// ErrUndefinedLabel: a goto references a non-existent label.
	ErrUndefinedLabel = goerrors.NewKind("goto at %s references undefined label %q%s")
	// ErrUnknownTestOp: test op not in the registry.
	ErrUnknownTestOp = goerrors.NewKind("unknown test operator %q at %s%s")
	// ErrInsufficientTestOpValues: too few values supplied for the op's arity.
	ErrInsufficientTestOpValues = goerrors.NewKind("operator %q at %s requires at least %d value(s), got %d")
	// ErrTooManyTestOpValues: too many values supplied for the op's arity.
	ErrTooManyTestOpValues = goerrors.NewKind("operator %q at %s accepts at most %d value(s), got %d")
	// ErrUnreachableReturnStatement: P4 found a return whose guard is unsatisfiable.
	ErrUnreachableReturnStatement = goerrors.NewKind("return at %s is unreachable: its guard was proven unsatisfiable%s")
)

// Is reports whether err was raised as kind. Thin wrapper kept so callers
// don't need to import gopkg.in/src-d/go-errors.v1 directly.
func Is(kind *goerrors.Kind, err error) bool {
	return kind.Is(err)
}
