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

package analyzer

import (
	"github.com/dolthub/mtgc/ast"
	"github.com/dolthub/mtgc/errs"
	"github.com/dolthub/mtgc/internal/similartext"
)

// linker is P1: control-flow linking (spec §4.1). It registers every
// labeled return (regardless of reachability, since a later goto may still
// target it), resolves every goto against that table, and verifies that
// every execution path through the unit's program reaches a terminating
// Return or Goto.
//
// The body-link/link-setter-stack machinery spec.md describes is here
// modeled as plain recursion over the AST's slices with an explicit
// continuation chain (cont below) rather than a mutable stack of deferred
// setters: the two encode the same "what runs next on fallthrough"
// relationship, and recursion over a real tree is the idiomatic Go shape
// for it.
type linker struct {
	labels map[string]*ast.Return
}

func newLinker() *linker {
	return &linker{labels: make(map[string]*ast.Return)}
}

// link runs P1 over a unit's program, leaving the resolved label table in
// lk.labels; it returns the first linking error found, if any.
func (lk *linker) link(unitName string, program []ast.Statement) error {
	if err := lk.registerLabels(program); err != nil {
		return err
	}
	if err := lk.resolveGotos(program); err != nil {
		return err
	}
	ok, loc := terminatesList(program, nil)
	if !ok {
		return errs.ErrMissingReturnStatement.New(loc.String())
	}
	return nil
}

// registerLabels walks every statement, including unreachable ones, since a
// goto may still target a label that line-local control flow can't reach
// any other way.
func (lk *linker) registerLabels(stmts []ast.Statement) error {
	for _, s := range stmts {
		switch v := s.(type) {
		case *ast.Return:
			if v.Label != nil {
				if existing, ok := lk.labels[v.Label.Name]; ok && existing != v {
					return errs.ErrDuplicateLabelName.New(v.Label.Name, v.Location.String(), existing.Location.String())
				}
				lk.labels[v.Label.Name] = v
			}
		case *ast.If:
			if err := lk.registerLabels(v.Body); err != nil {
				return err
			}
			for _, ei := range v.ElseIfs {
				if err := lk.registerLabels(ei.Body); err != nil {
					return err
				}
			}
			if err := lk.registerLabels(v.Else); err != nil {
				return err
			}
		case *ast.Switch:
			for _, c := range v.Cases {
				if err := lk.registerLabels(c.Body); err != nil {
					return err
				}
			}
			if err := lk.registerLabels(v.DefaultCase); err != nil {
				return err
			}
		}
	}
	return nil
}

func (lk *linker) resolveGotos(stmts []ast.Statement) error {
	for _, s := range stmts {
		switch v := s.(type) {
		case *ast.Goto:
			if _, ok := lk.labels[v.LabelName]; !ok {
				names := make([]string, 0, len(lk.labels))
				for n := range lk.labels {
					names = append(names, n)
				}
				return errs.ErrUndefinedLabel.New(v.Location.String(), v.LabelName, similartext.Find(names, v.LabelName))
			}
		case *ast.If:
			if err := lk.resolveGotos(v.Body); err != nil {
				return err
			}
			for _, ei := range v.ElseIfs {
				if err := lk.resolveGotos(ei.Body); err != nil {
					return err
				}
			}
			if err := lk.resolveGotos(v.Else); err != nil {
				return err
			}
		case *ast.Switch:
			for _, c := range v.Cases {
				if err := lk.resolveGotos(c.Body); err != nil {
					return err
				}
			}
			if err := lk.resolveGotos(v.DefaultCase); err != nil {
				return err
			}
		}
	}
	return nil
}

// cont is a chained "what statements run next under fall-through"
// continuation, used by both terminatesList (P1) and the P2 walk.
type cont struct {
	stmts []ast.Statement
	next  *cont
}

func (c *cont) terminates() (bool, ast.SourceLocation) {
	if c == nil {
		return false, ast.SourceLocation{Offset: ast.DummyOffset}
	}
	return terminatesList(c.stmts, c.next)
}

// terminatesList reports whether every path through stmts, continuing into
// next when stmts runs out, reaches a terminating Return or Goto.
func terminatesList(stmts []ast.Statement, next *cont) (bool, ast.SourceLocation) {
	if len(stmts) == 0 {
		return next.terminates()
	}
	rest := &cont{stmts: stmts[1:], next: next}
	switch v := stmts[0].(type) {
	case *ast.Return, *ast.Goto:
		return true, ast.SourceLocation{}
	case *ast.If:
		if ok, loc := terminatesList(v.Body, rest); !ok {
			return false, loc
		}
		for _, ei := range v.ElseIfs {
			if ok, loc := terminatesList(ei.Body, rest); !ok {
				return false, loc
			}
		}
		if len(v.Else) == 0 {
			if ok, loc := rest.terminates(); !ok {
				if loc.Offset == ast.DummyOffset {
					loc = v.Location
				}
				return false, loc
			}
			return true, ast.SourceLocation{}
		}
		return terminatesList(v.Else, rest)
	case *ast.Switch:
		for _, c := range v.Cases {
			if ok, loc := terminatesList(c.Body, rest); !ok {
				return false, loc
			}
		}
		if !v.HasDefault {
			if ok, loc := rest.terminates(); !ok {
				if loc.Offset == ast.DummyOffset {
					loc = v.Location
				}
				return false, loc
			}
			return true, ast.SourceLocation{}
		}
		return terminatesList(v.DefaultCase, rest)
	default:
		panic("analyzer: unreachable statement kind")
	}
}
