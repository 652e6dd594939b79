// Package hclconf loads the optional host configuration file for the
// discovery CLI. The file is HCL and may reference environment variables
// through the `env` map:
//
//	discovery {
//	  enabled     = true
//	  search_path = ["${env.HOME}/deploy", "testdata"]
//	}
//
//	logging {
//	  level  = "debug"
//	  format = "json"
//	}
package hclconf

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// Config is the decoded host configuration.
type Config struct {
	Discovery *Discovery `hcl:"discovery,block"`
	Logging   *Logging   `hcl:"logging,block"`
}

// Discovery configures the manifest search.
type Discovery struct {
	Enabled    *bool    `hcl:"enabled,optional"`
	SearchPath []string `hcl:"search_path,optional"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

// Load parses and decodes the configuration file at path.
func Load(path string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, diags)
	}
	return &cfg, nil
}

// evalContext exposes the process environment as the `env` map, the only
// variable configuration expressions may reference.
func evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			vars[k] = cty.StringVal(v)
		}
	}
	env := cty.MapValEmpty(cty.String)
	if len(vars) > 0 {
		env = cty.MapVal(vars)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": env},
	}
}
