// Copyright 2020-2022 Dolthub, Inc.
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

// Command mtgc compiles a match-transform-generation Component into a
// bundle document: load the component (package parse), run the analyzer,
// lint and write the result.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/dolthub/mtgc/analyzer"
	"github.com/dolthub/mtgc/emit"
	"github.com/dolthub/mtgc/internal/buildid"
	"github.com/dolthub/mtgc/registry"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: mtgc <config.yaml>")
		os.Exit(2)
	}

	log := logrus.New()
	buildID := buildid.New()
	log.WithField("build_id", buildID).Info("starting compile")

	cfg, err := LoadConfig(os.Args[1])
	if err != nil {
		log.WithError(err).Fatal("loading config")
	}

	ops := registry.NewOpRegistry()
	if cfg.OpOverlayPath != "" {
		if err := ops.LoadOverlay(cfg.OpOverlayPath); err != nil {
			log.WithError(err).Fatal("loading test-op overlay")
		}
	}

	store, err := registry.OpenBoltStore(cfg.KeyRegistryPath)
	if err != nil {
		log.WithError(err).Fatal("opening key registry store")
	}
	defer store.Close()
	keys, err := store.Load()
	if err != nil {
		log.WithError(err).Fatal("loading key registry")
	}

	component, err := cfg.ParseComponent()
	if err != nil {
		log.WithError(err).Fatal("parsing component")
	}

	az := analyzer.New(analyzer.Config{
		OptimizationLevel: analyzer.OptimizationLevel(cfg.OptimizationLevel),
		Log:               log,
		Ops:               ops,
		Keys:              keys,
	})
	compiled, err := az.CompileComponent(component)
	if err != nil {
		log.WithError(err).Fatal("compiling component")
	}

	doc := emit.BuildBundleDoc(compiled)
	for _, finding := range emit.Lint(doc) {
		log.Warn(finding.String())
	}

	out, err := os.Create(cfg.OutputPath)
	if err != nil {
		log.WithError(err).Fatal("opening output bundle")
	}
	defer out.Close()
	if err := emit.WriteBundle(out, compiled); err != nil {
		log.WithError(err).Fatal("writing bundle")
	}
}
