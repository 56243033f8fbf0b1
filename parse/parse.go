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

// Package parse loads a source Component from its on-disk YAML form. The
// DSL's concrete surface syntax is explicitly out of scope (spec.md §1
// treats the lexer/parser as a collaborator); this package exists only so
// the rest of the module has one concrete, real implementation to build
// and test against, so it stays deliberately thin -- a structural decode
// plus file-offset assignment, no grammar of its own.
package parse

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/dolthub/mtgc/ast"
)

// docComponent through docStatement mirror ast's shape closely enough for a
// direct YAML decode; offsets are assigned afterward in document order
// since YAML gives no natural byte-offset per node.
type docComponent struct {
	Name    string      `yaml:"name"`
	Alias   string      `yaml:"alias"`
	Bundles []docBundle `yaml:"bundles"`
}

type docBundle struct {
	Name  string   `yaml:"name"`
	Units []docUnit `yaml:"units"`
}

type docUnit struct {
	Name              string         `yaml:"name"`
	Alias             string         `yaml:"alias"`
	DefaultTransforms []docTransform `yaml:"default_transforms"`
	Program           []docStatement `yaml:"program"`
}

type docTransform struct {
	Spec       interface{} `yaml:"spec"`
	Annotation string      `yaml:"annotation"`
}

type docCondition struct {
	// Exactly one of these is set, per the surface grammar's kind tag.
	Const *bool           `yaml:"const,omitempty"`
	Test  *docTest        `yaml:"test,omitempty"`
	Not   *docCondition   `yaml:"not,omitempty"`
	And   []docCondition  `yaml:"and,omitempty"`
	Or    []docCondition  `yaml:"or,omitempty"`
}

type docTest struct {
	Key    string   `yaml:"key"`
	Op     string   `yaml:"op"`
	Values []string `yaml:"values"`
	Fact   string   `yaml:"fact"`
}

type docCaseValue struct {
	Value string `yaml:"value"`
	Fact  string `yaml:"fact"`
}

type docCase struct {
	Values []docCaseValue `yaml:"values"`
	Body   []docStatement `yaml:"body"`
}

type docElseIf struct {
	Condition docCondition   `yaml:"condition"`
	Body      []docStatement `yaml:"body"`
}

type docStatement struct {
	Return *struct {
		Transforms []docTransform `yaml:"transforms"`
		Label      string         `yaml:"label"`
	} `yaml:"return,omitempty"`
	Goto *struct {
		Label string `yaml:"label"`
	} `yaml:"goto,omitempty"`
	If *struct {
		Condition   docCondition   `yaml:"condition"`
		Body        []docStatement `yaml:"body"`
		ElseIfs     []docElseIf    `yaml:"else_ifs"`
		Else        []docStatement `yaml:"else"`
	} `yaml:"if,omitempty"`
	Switch *struct {
		Key     string         `yaml:"key"`
		Cases   []docCase      `yaml:"cases"`
		Default []docStatement `yaml:"default"`
	} `yaml:"switch,omitempty"`
}

// offsetAssigner hands out unique, increasing synthetic file offsets in
// decode order.
type offsetAssigner struct {
	file string
	next int
}

func (a *offsetAssigner) loc() ast.SourceLocation {
	a.next++
	return ast.SourceLocation{File: a.file, Offset: a.next, Line: a.next}
}

// LoadComponent reads and decodes a Component from a YAML file at path.
func LoadComponent(path string) (*ast.Component, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening component file %q", path)
	}
	defer f.Close()

	var doc docComponent
	if err := yaml.NewDecoder(f).Decode(&doc); err != nil {
		return nil, errors.Wrapf(err, "decoding component file %q", path)
	}

	a := &offsetAssigner{file: path}
	return convertComponent(a, doc), nil
}

func convertComponent(a *offsetAssigner, doc docComponent) *ast.Component {
	c := &ast.Component{Name: doc.Name, Alias: doc.Alias}
	for _, db := range doc.Bundles {
		c.Bundles = append(c.Bundles, convertBundle(a, db))
	}
	return c
}

func convertBundle(a *offsetAssigner, doc docBundle) *ast.Bundle {
	b := &ast.Bundle{Name: doc.Name}
	for _, du := range doc.Units {
		b.Units = append(b.Units, convertUnit(a, du))
	}
	return b
}

func convertUnit(a *offsetAssigner, doc docUnit) *ast.Unit {
	u := &ast.Unit{Name: doc.Name, Alias: doc.Alias}
	for _, dt := range doc.DefaultTransforms {
		u.DefaultTransforms = append(u.DefaultTransforms, convertTransform(dt))
	}
	u.Program = convertStatements(a, doc.Program)
	return u
}

func convertTransform(doc docTransform) *ast.Transform {
	return &ast.Transform{Spec: doc.Spec, Annotation: doc.Annotation}
}

func convertStatements(a *offsetAssigner, docs []docStatement) []ast.Statement {
	var out []ast.Statement
	for _, d := range docs {
		out = append(out, convertStatement(a, d))
	}
	return out
}

func convertStatement(a *offsetAssigner, d docStatement) ast.Statement {
	switch {
	case d.Return != nil:
		loc := a.loc()
		var transforms []*ast.Transform
		for _, dt := range d.Return.Transforms {
			transforms = append(transforms, convertTransform(dt))
		}
		var label *ast.Label
		if d.Return.Label != "" {
			label = &ast.Label{Name: d.Return.Label}
		}
		return &ast.Return{Transforms: transforms, Label: label, Location: loc}
	case d.Goto != nil:
		loc := a.loc()
		return &ast.Goto{LabelName: d.Goto.Label, Location: loc}
	case d.If != nil:
		loc := a.loc()
		cond := convertCondition(a, d.If.Condition)
		body := convertStatements(a, d.If.Body)
		var elseIfs []ast.ElseIfClause
		for _, ei := range d.If.ElseIfs {
			elseIfs = append(elseIfs, ast.ElseIfClause{
				Condition: convertCondition(a, ei.Condition),
				Body:      convertStatements(a, ei.Body),
			})
		}
		elseBody := convertStatements(a, d.If.Else)
		return &ast.If{Condition: cond, Body: body, ElseIfs: elseIfs, Else: elseBody, Location: loc}
	case d.Switch != nil:
		loc := a.loc()
		sw := &ast.Switch{Key: d.Switch.Key, Location: loc}
		for _, dc := range d.Switch.Cases {
			var cc ast.CaseClause
			for _, cv := range dc.Values {
				cc.Values = append(cc.Values, ast.CaseValue{Value: cv.Value, Fact: cv.Fact, Location: a.loc()})
			}
			cc.Body = convertStatements(a, dc.Body)
			sw.Cases = append(sw.Cases, cc)
		}
		if d.Switch.Default != nil {
			sw.HasDefault = true
			sw.DefaultCase = convertStatements(a, d.Switch.Default)
		}
		return sw
	default:
		panic("parse: statement with no recognized kind set")
	}
}

func convertCondition(a *offsetAssigner, d docCondition) ast.Condition {
	switch {
	case d.Const != nil:
		return ast.Constant{Value: *d.Const}
	case d.Test != nil:
		return ast.Test{
			Key: d.Test.Key, Op: d.Test.Op, Values: d.Test.Values,
			FactTemplate: d.Test.Fact, Location: a.loc(),
		}
	case d.Not != nil:
		return ast.Composite{Kind: ast.LogicalNot, C1: convertCondition(a, *d.Not)}
	case len(d.And) == 2:
		return ast.Composite{Kind: ast.LogicalAnd, C1: convertCondition(a, d.And[0]), C2: convertCondition(a, d.And[1])}
	case len(d.Or) == 2:
		return ast.Composite{Kind: ast.LogicalOr, C1: convertCondition(a, d.Or[0]), C2: convertCondition(a, d.Or[1])}
	default:
		panic("parse: condition with no recognized kind set")
	}
}
