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

package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// withOutputDir points the -o flag at dir for the duration of the test.
func withOutputDir(t *testing.T, dir string) {
	t.Helper()
	original := *outputDir
	*outputDir = dir
	t.Cleanup(func() {
		*outputDir = original
	})
}

func readSchema(t *testing.T, path string) map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	var schema map[string]interface{}
	if err := json.Unmarshal(data, &schema); err != nil {
		t.Fatalf("schema JSON is not valid: %v", err)
	}
	return schema
}

func TestRun(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) string
		wantErr bool
	}{
		{
			name: "writes schema output",
			setup: func(t *testing.T) string {
				t.Helper()
				return filepath.Join(t.TempDir(), "schema")
			},
		},
		{
			name: "returns error on unwritable output",
			setup: func(t *testing.T) string {
				t.Helper()
				if os.Geteuid() == 0 {
					t.Skip("root can write to read-only directories")
				}
				tmpDir := t.TempDir()
				readOnlyDir := filepath.Join(tmpDir, "readonly")
				if err := os.Mkdir(readOnlyDir, 0500); err != nil {
					t.Fatalf("mkdir: %v", err)
				}
				t.Cleanup(func() {
					_ = os.Chmod(readOnlyDir, 0700)
				})
				return filepath.Join(readOnlyDir, "schema")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)
			withOutputDir(t, dir)

			err := run()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("run() error = %v", err)
			}

			for _, spec := range schemas {
				if _, err := os.Stat(filepath.Join(dir, spec.file)); err != nil {
					t.Errorf("missing %s: %v", spec.file, err)
				}
			}
		})
	}
}

func TestRunManifestSchema(t *testing.T) {
	dir := t.TempDir()
	withOutputDir(t, dir)

	if err := run(); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	schema := readSchema(t, filepath.Join(dir, "em-manifest.json"))

	if schema["title"] != "em Boilerplate Manifest" {
		t.Errorf("schema title = %v", schema["title"])
	}
	if _, ok := schema["$schema"]; !ok {
		t.Error("schema missing $schema field")
	}

	props, ok := schema["properties"].(map[string]interface{})
	if !ok {
		t.Fatalf("schema properties is not an object, got %T", schema["properties"])
	}
	for _, key := range []string{"name", "description", "requires", "substitute"} {
		if _, ok := props[key]; !ok {
			t.Errorf("manifest schema missing property %q", key)
		}
	}

	examples, ok := schema["examples"].([]interface{})
	if !ok || len(examples) != 1 {
		t.Fatalf("schema examples = %v", schema["examples"])
	}
}

func TestRunConfigSchema(t *testing.T) {
	dir := t.TempDir()
	withOutputDir(t, dir)

	if err := run(); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	schema := readSchema(t, filepath.Join(dir, "em-config.json"))

	if schema["$id"] != "https://github.com/cowdogmoo/emrocks/schema/em-config.json" {
		t.Errorf("schema $id = %v", schema["$id"])
	}

	props, ok := schema["properties"].(map[string]interface{})
	if !ok {
		t.Fatalf("schema properties is not an object, got %T", schema["properties"])
	}
	for _, key := range []string{"log", "template", "project", "generate", "install", "runner", "exit_codes"} {
		if _, ok := props[key]; !ok {
			t.Errorf("config schema missing property %q", key)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "em-config.json"))
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	if strings.Contains(string(data), `"token"`) {
		t.Error("config schema must not expose the token")
	}
}
