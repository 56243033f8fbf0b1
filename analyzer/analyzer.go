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

// Package analyzer runs the four-pass compilation pipeline over a source
// Component: P1 control-flow linking, P2 symbolic execution, P3 DNF
// simplification, and P4 reachability checking (spec §4). Its entry point is
// Analyzer.CompileComponent; the passes themselves are pipeline-internal.
package analyzer

import (
	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"

	"github.com/dolthub/mtgc/ast"
	"github.com/dolthub/mtgc/errs"
	"github.com/dolthub/mtgc/ir"
	"github.com/dolthub/mtgc/registry"
)

// OptimizationLevel gates how aggressively P3 rewrites the DNF it builds
// (spec §4.3): 0 runs only 4.3.1/4.3.2, 1 adds 4.3.4's merge/rerank, 2 adds
// 4.3.3's cross-conjunction dismissal on top.
type OptimizationLevel int

const (
	OptimizationNone OptimizationLevel = iota
	OptimizationMerge
	OptimizationDismiss
)

// Config controls one Analyzer's behavior.
type Config struct {
	OptimizationLevel OptimizationLevel
	Log               *logrus.Logger
	Tracer            opentracing.Tracer
	Ops               *registry.OpRegistry
	Keys              *registry.KeyRegistry
}

// Analyzer compiles source Components into Core IR bundles.
type Analyzer struct {
	cfg Config
}

// New builds an Analyzer from cfg, filling unset fields with sane defaults
// (a discarding logger and a no-op tracer), matching the teacher's
// convention of defaulting collaborators rather than requiring every field.
func New(cfg Config) *Analyzer {
	if cfg.Log == nil {
		cfg.Log = logrus.New()
		cfg.Log.SetLevel(logrus.WarnLevel)
	}
	if cfg.Tracer == nil {
		cfg.Tracer = opentracing.NoopTracer{}
	}
	if cfg.Ops == nil {
		cfg.Ops = registry.NewOpRegistry()
	}
	return &Analyzer{cfg: cfg}
}

// CompiledUnit is one Unit's compiled IR, indexed by bundle/unit name for
// emit (package emit) to address.
type CompiledUnit struct {
	BundleName string
	UnitName   string
	Points     []*ir.ReturnPoint
}

// CompiledComponent is the full compiled output of one Component.
type CompiledComponent struct {
	Name  string
	Units []*CompiledUnit
}

// CompileComponent runs the four passes over every unit in every bundle of
// c, enforcing DuplicateBundleName/DuplicateUnitName across the whole
// component before compiling any unit's body.
func (a *Analyzer) CompileComponent(c *ast.Component) (*CompiledComponent, error) {
	span := a.cfg.Tracer.StartSpan("analyzer.CompileComponent")
	defer span.Finish()
	log := a.cfg.Log.WithField("component", c.Name)

	bundleNames := make(map[string]bool)
	for _, b := range c.Bundles {
		if bundleNames[b.Name] {
			return nil, errs.ErrDuplicateBundleName.New(b.Name, c.Name, "an earlier bundle in this component")
		}
		bundleNames[b.Name] = true

		unitNames := make(map[string]bool)
		for _, u := range b.Units {
			if unitNames[u.Name] {
				return nil, errs.ErrDuplicateUnitName.New(u.Name, b.Name, "an earlier unit in this bundle")
			}
			unitNames[u.Name] = true
		}
	}

	out := &CompiledComponent{Name: c.Name}
	for _, b := range c.Bundles {
		for _, u := range b.Units {
			log.WithFields(logrus.Fields{"bundle": b.Name, "unit": u.Name}).Debug("compiling unit")
			cu, err := a.compileUnit(b.Name, u)
			if err != nil {
				return nil, err
			}
			out.Units = append(out.Units, cu)
		}
	}
	return out, nil
}

func (a *Analyzer) compileUnit(bundleName string, u *ast.Unit) (*CompiledUnit, error) {
	span := a.cfg.Tracer.StartSpan("analyzer.compileUnit")
	defer span.Finish()

	lk := newLinker()
	if err := lk.link(u.Name, u.Program); err != nil {
		return nil, err
	}

	c := newCompiler(a.cfg.Ops, a.cfg.Keys)
	if err := c.checkSwitchCaseValues(u.Program); err != nil {
		return nil, err
	}
	uc := &unitCtx{labels: lk.labels}
	if err := c.walk(uc, u.Program, constFormula{val: true}, nil); err != nil {
		return nil, err
	}

	ids := newIDRegistry()
	points, vanishedExpand := c.makeReturnPoints(ids)
	points, vanishedReduce := reduce(points)
	vanished := append(vanishedExpand, vanishedReduce...)
	if err := checkReachability(points, vanished); err != nil {
		return nil, err
	}

	if a.cfg.OptimizationLevel >= OptimizationDismiss {
		dismissCrossConjunction(points)
	}
	if a.cfg.OptimizationLevel >= OptimizationMerge {
		mergeAndRerank(a.cfg.Ops, points)
	} else {
		// Index must still be dense and deterministic even with merging
		// disabled (spec §3.2 invariant 5).
		idx := 0
		for _, rp := range points {
			for _, and := range rp.Or.Ands {
				and.Index = idx
				idx++
			}
		}
	}

	return &CompiledUnit{BundleName: bundleName, UnitName: u.Name, Points: points}, nil
}

// checkSwitchCaseValues walks u's program looking for switches with
// duplicate case values on the same key (spec §7: DuplicateCaseValue),
// ahead of P2's symbolic execution so the error surfaces before any partial
// IR is built.
func (c *compiler) checkSwitchCaseValues(stmts []ast.Statement) error {
	for _, s := range stmts {
		switch v := s.(type) {
		case *ast.Switch:
			seen := make(map[string]ast.SourceLocation)
			for _, cc := range v.Cases {
				for _, cv := range cc.Values {
					if first, ok := seen[cv.Value]; ok {
						return errs.ErrDuplicateCaseValue.New(cv.Value, v.Key, cv.Location.String(), first.String())
					}
					seen[cv.Value] = cv.Location
				}
				if err := c.checkSwitchCaseValues(cc.Body); err != nil {
					return err
				}
			}
			if err := c.checkSwitchCaseValues(v.DefaultCase); err != nil {
				return err
			}
		case *ast.If:
			if err := c.checkSwitchCaseValues(v.Body); err != nil {
				return err
			}
			for _, ei := range v.ElseIfs {
				if err := c.checkSwitchCaseValues(ei.Body); err != nil {
					return err
				}
			}
			if err := c.checkSwitchCaseValues(v.Else); err != nil {
				return err
			}
		}
	}
	return nil
}
