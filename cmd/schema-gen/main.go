/*
Copyright © 2025 Jayson Grace <jayson.e.grace@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

// Package main generates JSON schemas for the em.yaml boilerplate manifest and
// the em config file. The schemas enable IDE autocompletion and validation.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cowdogmoo/emrocks/config"
	"github.com/cowdogmoo/emrocks/templates"
	"github.com/invopop/jsonschema"
)

var (
	outputDir = flag.String("o", "schema", "Output directory for JSON schemas")
)

// schemaSpec describes one generated schema file.
type schemaSpec struct {
	file        string
	id          string
	title       string
	description string
	value       interface{}
	example     map[string]interface{}
}

var schemas = []schemaSpec{
	{
		file:        "em-manifest.json",
		id:          "https://github.com/cowdogmoo/emrocks/schema/em-manifest.json",
		title:       "em Boilerplate Manifest",
		description: "Schema for the em.yaml file at the root of an em boilerplate repository",
		value:       &templates.Manifest{},
		example: map[string]interface{}{
			"name":        "ember-rocks-basic",
			"description": "Ember app served by an express server",
			"requires": map[string]interface{}{
				"em": ">=1.0.0",
			},
			"substitute": []string{"package.json", "bower.json", "client/index.html"},
		},
	},
	{
		file:        "em-config.json",
		id:          "https://github.com/cowdogmoo/emrocks/schema/em-config.json",
		title:       "em Configuration",
		description: "Schema for $XDG_CONFIG_HOME/em/config.yaml",
		value:       &config.Config{},
		example: map[string]interface{}{
			"log": map[string]interface{}{
				"level":  "info",
				"format": "color",
			},
			"project": map[string]interface{}{
				"client_dir": "client",
				"app_dir":    "app",
			},
			"exit_codes": map[string]interface{}{
				"user_error":   0,
				"precondition": 1,
			},
		},
	},
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	reflector := jsonschema.Reflector{
		ExpandedStruct:            true,
		DoNotReference:            false,
		AllowAdditionalProperties: false,
	}

	// Type-level doc comments; field descriptions come from the same pass.
	if err := reflector.AddGoComments("github.com/cowdogmoo/emrocks", "./"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to extract type-level comments: %v\n", err)
	}

	if err := os.MkdirAll(*outputDir, config.DirPermReadWriteExec); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, spec := range schemas {
		if err := writeSchema(&reflector, spec); err != nil {
			return err
		}
	}
	return nil
}

func writeSchema(reflector *jsonschema.Reflector, spec schemaSpec) error {
	schema := reflector.Reflect(spec.value)
	schema.ID = jsonschema.ID(spec.id)
	schema.Title = spec.title
	schema.Description = spec.description
	schema.Examples = []interface{}{spec.example}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema %s: %w", spec.file, err)
	}
	// Append newline to satisfy end-of-file-fixer
	data = append(data, '\n')

	path := filepath.Join(*outputDir, spec.file)
	if err := os.WriteFile(path, data, config.FilePermReadWrite); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}

	fmt.Printf("✓ Generated JSON schema: %s\n", path)
	return nil
}
