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

package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/dolthub/mtgc/ast"
	"github.com/dolthub/mtgc/parse"
)

// Config is the CLI's own YAML-driven configuration -- not to be confused
// with the Component source file it points at, which has its own YAML
// shape (package parse).
type Config struct {
	ComponentPath     string `yaml:"component_path"`
	OutputPath        string `yaml:"output_path"`
	KeyRegistryPath   string `yaml:"key_registry_path"`
	OpOverlayPath     string `yaml:"op_overlay_path"`
	OptimizationLevel int    `yaml:"optimization_level"`
}

// LoadConfig reads and decodes a CLI config from path.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening config %q", path)
	}
	defer f.Close()
	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, errors.Wrapf(err, "decoding config %q", path)
	}
	return &cfg, nil
}

// ParseComponent loads the Component this config points at.
func (c *Config) ParseComponent() (*ast.Component, error) {
	return parse.LoadComponent(c.ComponentPath)
}
