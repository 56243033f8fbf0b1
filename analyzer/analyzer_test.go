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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/mtgc/ast"
	"github.com/dolthub/mtgc/errs"
	"github.com/dolthub/mtgc/ir"
)

var nextOffset int

func loc() ast.SourceLocation {
	nextOffset++
	return ast.SourceLocation{File: "t.mtg", Offset: nextOffset, Line: nextOffset}
}

func test(key, op string, values ...string) ast.Condition {
	return ast.Test{Key: key, Op: op, Values: values, Location: loc()}
}

func ret(transforms ...*ast.Transform) *ast.Return {
	return &ast.Return{Transforms: transforms, Location: loc()}
}

func labeledRet(label string, transforms ...*ast.Transform) *ast.Return {
	return &ast.Return{Transforms: transforms, Label: &ast.Label{Name: label}, Location: loc()}
}

func xform(spec string) *ast.Transform {
	return &ast.Transform{Spec: spec}
}

func ifStmt(cond ast.Condition, body ...ast.Statement) *ast.If {
	return &ast.If{Condition: cond, Body: body, Location: loc()}
}

func compileOne(t *testing.T, program []ast.Statement) ([]*ir.ReturnPoint, error) {
	t.Helper()
	a := New(Config{OptimizationLevel: OptimizationNone})
	component := &ast.Component{
		Name: "c",
		Bundles: []*ast.Bundle{{
			Name: "b",
			Units: []*ast.Unit{{Name: "u", Program: program}},
		}},
	}
	out, err := a.CompileComponent(component)
	if err != nil {
		return nil, err
	}
	return out.Units[0].Points, nil
}

func TestMissingReturnStatement(t *testing.T) {
	nextOffset = 0
	program := []ast.Statement{
		ifStmt(test("region", "eq", "us"), ret(xform("A"))),
		// falls off the end when region != us
	}
	_, err := compileOne(t, program)
	require.Error(t, err)
	require.True(t, errs.Is(errs.ErrMissingReturnStatement, err))
}

func TestSimpleIfElseAlwaysTerminates(t *testing.T) {
	nextOffset = 0
	ifs := ifStmt(test("region", "eq", "us"), ret(xform("A")))
	ifs.Else = []ast.Statement{ret(xform("B"))}
	points, err := compileOne(t, []ast.Statement{ifs})
	require.NoError(t, err)
	require.Len(t, points, 2)
}

func TestGotoToLabeledReturn(t *testing.T) {
	nextOffset = 0
	target := labeledRet("done", xform("A"))
	program := []ast.Statement{
		ifStmt(test("region", "eq", "us"), &ast.Goto{LabelName: "done", Location: loc()}),
		target,
	}
	points, err := compileOne(t, program)
	require.NoError(t, err)
	require.Len(t, points, 1)
}

func TestUndefinedLabel(t *testing.T) {
	nextOffset = 0
	program := []ast.Statement{
		&ast.Goto{LabelName: "nope", Location: loc()},
	}
	_, err := compileOne(t, program)
	require.Error(t, err)
	require.True(t, errs.Is(errs.ErrUndefinedLabel, err))
}

func TestDuplicateCaseValue(t *testing.T) {
	nextOffset = 0
	sw := &ast.Switch{
		Key: "plan",
		Cases: []ast.CaseClause{
			{Values: []ast.CaseValue{{Value: "gold", Location: loc()}}, Body: []ast.Statement{ret(xform("A"))}},
			{Values: []ast.CaseValue{{Value: "gold", Location: loc()}}, Body: []ast.Statement{ret(xform("B"))}},
		},
		HasDefault:  true,
		DefaultCase: []ast.Statement{ret()},
		Location:    loc(),
	}
	_, err := compileOne(t, []ast.Statement{sw})
	require.Error(t, err)
	require.True(t, errs.Is(errs.ErrDuplicateCaseValue, err))
}

func TestUnknownTestOp(t *testing.T) {
	nextOffset = 0
	program := []ast.Statement{
		ifStmt(test("region", "frobnicate", "us"), ret(xform("A"))),
	}
	program[0].(*ast.If).Else = []ast.Statement{ret(xform("B"))}
	_, err := compileOne(t, program)
	require.Error(t, err)
	require.True(t, errs.Is(errs.ErrUnknownTestOp, err))
}

func TestDirectConflictDropsReturnPoint(t *testing.T) {
	nextOffset = 0
	// region eq us AND region eq ca can never both hold: the inner return
	// is unreachable once the outer condition already fixed region to "us".
	inner := ifStmt(test("region", "eq", "ca"), ret(xform("unreachable")))
	inner.Else = []ast.Statement{ret(xform("fallback"))}
	outer := ifStmt(test("region", "eq", "us"), ast.Statement(inner))
	outer.Else = []ast.Statement{ret(xform("other"))}
	_, err := compileOne(t, []ast.Statement{outer})
	require.Error(t, err)
	require.True(t, errs.Is(errs.ErrUnreachableReturnStatement, err))
}

func TestConstantTrueInAndCollapsesAway(t *testing.T) {
	nextOffset = 0
	// (true AND region=us) simplifies to just region=us: the constant
	// conjunct shouldn't survive into the return point's test list.
	cond := ast.Composite{Kind: ast.LogicalAnd, C1: ast.Constant{Value: true}, C2: test("region", "eq", "us")}
	program := []ast.Statement{ifStmt(cond, ret(xform("A")))}
	program[0].(*ast.If).Else = []ast.Statement{ret(xform("B"))}
	points, err := compileOne(t, program)
	require.NoError(t, err)
	require.Len(t, points, 2)
	for _, p := range points {
		for _, and := range p.Or.Ands {
			for _, test := range and.Tests {
				require.NotEmpty(t, test.Key)
			}
		}
	}
}

func TestConstantFalseInOrCollapsesAway(t *testing.T) {
	nextOffset = 0
	// (false OR region=us) simplifies to just region=us.
	cond := ast.Composite{Kind: ast.LogicalOr, C1: ast.Constant{Value: false}, C2: test("region", "eq", "us")}
	program := []ast.Statement{ifStmt(cond, ret(xform("A")))}
	program[0].(*ast.If).Else = []ast.Statement{ret(xform("B"))}
	points, err := compileOne(t, program)
	require.NoError(t, err)
	require.Len(t, points, 2)
}
