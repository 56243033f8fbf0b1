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

// Package emit turns compiled IR into the on-disk bundle format consumers
// load at match-time, and lints it for suspicious but non-fatal shapes
// (spec.md §6.3 frames both as thin collaborators kept outside the analyzer
// proper).
package emit

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/dolthub/mtgc/analyzer"
	"github.com/dolthub/mtgc/ir"
)

// TestExprDoc is one test predicate in the wire format.
type TestExprDoc struct {
	TestID     int64    `json:"test_id"`
	IsNegative bool     `json:"is_negative"`
	Key        string   `json:"key"`
	KeyIndex   int      `json:"key_index"`
	Op         string   `json:"op"`
	Values     []string `json:"values"`
	Fact       string   `json:"fact,omitempty"`
	Dismissed  bool     `json:"dismissed,omitempty"`
	Merged     bool     `json:"merged,omitempty"`
}

// AndExprDoc is one conjunction in the wire format.
type AndExprDoc struct {
	Index int           `json:"index"`
	Tests []TestExprDoc `json:"tests"`
}

// ReturnPointDoc is one return point in the wire format.
type ReturnPointDoc struct {
	Location  string       `json:"location"`
	IsDefault bool         `json:"is_default,omitempty"`
	Ands      []AndExprDoc `json:"ands"`
}

// UnitDoc is one compiled unit in the wire format.
type UnitDoc struct {
	Bundle string           `json:"bundle"`
	Unit   string           `json:"unit"`
	Points []ReturnPointDoc `json:"return_points"`
}

// BundleDoc is the top-level document written for one compiled component.
type BundleDoc struct {
	Component string    `json:"component"`
	Units     []UnitDoc `json:"units"`
}

// BuildBundleDoc converts an analyzer.CompiledComponent into its wire
// representation.
func BuildBundleDoc(c *analyzer.CompiledComponent) BundleDoc {
	doc := BundleDoc{Component: c.Name}
	for _, u := range c.Units {
		doc.Units = append(doc.Units, buildUnitDoc(u))
	}
	return doc
}

func buildUnitDoc(u *analyzer.CompiledUnit) UnitDoc {
	ud := UnitDoc{Bundle: u.BundleName, Unit: u.UnitName}
	for _, rp := range u.Points {
		ud.Points = append(ud.Points, buildReturnPointDoc(rp))
	}
	return ud
}

func buildReturnPointDoc(rp *ir.ReturnPoint) ReturnPointDoc {
	rpd := ReturnPointDoc{Location: rp.Location.String(), IsDefault: rp.IsDefault}
	for _, and := range rp.Or.Ands {
		rpd.Ands = append(rpd.Ands, buildAndExprDoc(and))
	}
	return rpd
}

func buildAndExprDoc(and *ir.AndExpr) AndExprDoc {
	aed := AndExprDoc{Index: and.Index}
	for _, t := range and.Tests {
		aed.Tests = append(aed.Tests, TestExprDoc{
			TestID: t.TestID, IsNegative: t.IsNegative,
			Key: t.Key, KeyIndex: t.KeyIndex, Op: t.Op, Values: t.Values,
			Fact: t.Fact, Dismissed: t.IsDismissed, Merged: t.IsMerged,
		})
	}
	return aed
}

// WriteBundle encodes a compiled component's bundle document to w as
// indented JSON.
func WriteBundle(w io.Writer, c *analyzer.CompiledComponent) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(BuildBundleDoc(c)); err != nil {
		return errors.Wrap(err, "encoding bundle document")
	}
	return nil
}
