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
	"github.com/dolthub/mtgc/registry"
)

// target accumulates, for one distinct return destination, every formula
// under which control reaches it (one entry per Return/Goto occurrence that
// routes there). P3 turns this list into a minimized OrExpr.
type target struct {
	location   ast.SourceLocation
	transforms []*ast.Transform
	isDefault  bool
	offsets    []int
	conditions []formula
}

// compiler holds P2's running state for one unit: the symbol table, the
// accumulated per-target condition lists, and the registries its operator
// validation draws on.
type compiler struct {
	ops  *registry.OpRegistry
	keys *registry.KeyRegistry
	syms *symbolTable

	// byKey indexes targets by their Return's own file offset; the
	// synthetic default-fallthrough target is keyed by ast.DummyOffset and
	// collects every bare (empty-transform) return.
	byKey map[int]*target
	order []int // insertion order of byKey, for deterministic iteration
}

func newCompiler(ops *registry.OpRegistry, keys *registry.KeyRegistry) *compiler {
	return &compiler{
		ops:   ops,
		keys:  keys,
		syms:  newSymbolTable(),
		byKey: make(map[int]*target),
	}
}

func (c *compiler) targetFor(ret *ast.Return) *target {
	key := ret.Location.Offset
	if len(ret.Transforms) == 0 {
		key = ast.DummyOffset
	}
	t, ok := c.byKey[key]
	if !ok {
		t = &target{location: ret.Location, transforms: ret.Transforms, isDefault: key == ast.DummyOffset}
		c.byKey[key] = t
		c.order = append(c.order, key)
	}
	// offsets may collect the same Return's offset more than once (e.g. a
	// labeled empty-transform return reached by several gotos); P3 dedupes
	// before publishing ReturnPoint.SourceOffsets.
	t.offsets = append(t.offsets, ret.Location.Offset)
	return t
}

// allocValidatedTest allocates (or reuses) the symbol for a Test condition,
// validating its operator and arity against the op registry (spec §4.2,
// §7: UnknownTestOp / InsufficientTestOpValues / TooManyTestOpValues), and
// rewriting a single-value op to its MultipleOp form to maximize later
// merging (spec §6.1).
func (c *compiler) allocValidatedTest(t ast.Test) (*symbol, error) {
	info, ok := c.ops.Lookup(t.Op)
	if !ok {
		return nil, errs.ErrUnknownTestOp.New(t.Op, t.Location.String(), similartext.Find(c.ops.Names(), t.Op))
	}
	if len(t.Values) < info.MinValues {
		return nil, errs.ErrInsufficientTestOpValues.New(t.Op, t.Location.String(), info.MinValues, len(t.Values))
	}
	if info.MaxValues != nil && len(t.Values) > *info.MaxValues {
		return nil, errs.ErrTooManyTestOpValues.New(t.Op, t.Location.String(), *info.MaxValues, len(t.Values))
	}
	if info.MultipleOp != "" && len(t.Values) == 1 {
		t.Op = info.MultipleOp
	}
	return c.syms.allocTest(t), nil
}

// walk is P2's symbolic execution pass: it walks stmts under the Boolean
// path condition path, continuing into cont when stmts falls through, and
// records every Return/Goto reached together with the conjunction of
// conditions that leads there.
func (c *compiler) walk(unit *unitCtx, stmts []ast.Statement, path formula, next *cont) error {
	for i, s := range stmts {
		rest := &cont{stmts: stmts[i+1:], next: next}
		switch v := s.(type) {
		case *ast.Return:
			t := c.targetFor(v)
			t.conditions = append(t.conditions, path)
			return nil
		case *ast.Goto:
			ret := unit.labels[v.LabelName]
			c.targetFor(ret).conditions = append(c.targetFor(ret).conditions, path)
			return nil
		case *ast.If:
			cond, err := c.buildFormula(v.Condition)
			if err != nil {
				return err
			}
			if err := c.walk(unit, v.Body, andFormula{a: path, b: cond}, rest); err != nil {
				return err
			}
			other := negateFormula(cond)
			for _, ei := range v.ElseIfs {
				eiCond, err := c.buildFormula(ei.Condition)
				if err != nil {
					return err
				}
				combined := andFormula{a: path, b: andFormula{a: other, b: eiCond}}
				if err := c.walk(unit, ei.Body, combined, rest); err != nil {
					return err
				}
				other = andFormula{a: other, b: negateFormula(eiCond)}
			}
			elsePath := andFormula{a: path, b: other}
			if len(v.Else) == 0 {
				return c.continueWith(unit, rest, elsePath)
			}
			return c.walk(unit, v.Else, elsePath, rest)
		case *ast.Switch:
			var noneMatched formula = constFormula{val: true}
			for _, cc := range v.Cases {
				var caseCond formula
				for j, cv := range cc.Values {
					sym := c.syms.allocCase(v, cv)
					lit := litFormula{sym: sym}
					if j == 0 {
						caseCond = lit
					} else {
						caseCond = orFormula{a: caseCond, b: lit}
					}
				}
				if err := c.walk(unit, cc.Body, andFormula{a: path, b: andFormula{a: noneMatched, b: caseCond}}, rest); err != nil {
					return err
				}
				noneMatched = andFormula{a: noneMatched, b: negateFormula(caseCond)}
			}
			defaultPath := andFormula{a: path, b: noneMatched}
			if !v.HasDefault {
				return c.continueWith(unit, rest, defaultPath)
			}
			return c.walk(unit, v.DefaultCase, defaultPath, rest)
		default:
			panic("analyzer: unreachable statement kind")
		}
	}
	return c.continueWith(unit, next, path)
}

// continueWith resumes execution at a fall-through continuation under an
// extended path condition; P1 already guarantees next is non-nil whenever
// this is reachable.
func (c *compiler) continueWith(unit *unitCtx, next *cont, path formula) error {
	if next == nil {
		panic("analyzer: fall-through past end of unit program despite P1 clearance")
	}
	return c.walk(unit, next.stmts, path, next.next)
}

// unitCtx bundles the per-unit state P2 needs beyond the compiler's
// registries: the resolved label table built in P1.
type unitCtx struct {
	labels map[string]*ast.Return
}
