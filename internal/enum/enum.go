// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// enum generates the boilerplate for Go enums described in YAML.
//
// To generate boilerplate for a given file, use
//
//	//go:generate go run github.com/bufbuild/ion/internal/enum kind.yaml
//
// The YAML file holds a list of enums, each with a name, an underlying type,
// optional docs, the values in order, and the string methods to generate.
// The output is written next to it, replacing the .yaml extension with .go.
package main

import (
	"bytes"
	"cmp"
	_ "embed"
	"errors"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

type enumDef struct {
	Name    string      `yaml:"name"`
	Type    string      `yaml:"type"`
	Docs    string      `yaml:"docs"`
	Methods []methodDef `yaml:"methods"`
	Values  []valueDef  `yaml:"values"`
}

type valueDef struct {
	Name string `yaml:"name"`
	// The text the string methods return; defaults to Name.
	Label string `yaml:"string"`
	Docs  string `yaml:"docs"`
}

// methodDef describes a method that maps each value to a string.
//
// Kind is "string", which maps to the value's label, or "go-string", which
// maps to the qualified Go name of the value.
type methodDef struct {
	Kind string `yaml:"kind"`
	Name string `yaml:"name"`
	Docs string `yaml:"docs"`
}

var methodDefaults = map[string]methodDef{
	"string":    {Name: "String", Docs: "String implements [fmt.Stringer]."},
	"go-string": {Name: "GoString", Docs: "GoString implements [fmt.GoStringer]."},
}

//go:embed enum.go.tmpl
var tmplText string

var tmpl = template.Must(template.New("enum").
	Funcs(template.FuncMap{"makeDocs": makeDocs}).
	Parse(tmplText))

// load reads the enums in path and fills in defaults.
func load(path string) ([]enumDef, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var enums []enumDef
	if err := yaml.Unmarshal(text, &enums); err != nil {
		return nil, err
	}

	for i := range enums {
		e := &enums[i]
		if e.Name == "" || e.Type == "" {
			return nil, fmt.Errorf("enum #%d: name and type are required", i+1)
		}
		if len(e.Values) == 0 {
			return nil, fmt.Errorf("enum %s: no values", e.Name)
		}

		for j := range e.Methods {
			m := &e.Methods[j]
			def, ok := methodDefaults[m.Kind]
			if !ok {
				return nil, fmt.Errorf("enum %s: unknown method kind %q", e.Name, m.Kind)
			}
			m.Name = cmp.Or(m.Name, def.Name)
			m.Docs = cmp.Or(m.Docs, def.Docs)
		}
		for j := range e.Values {
			v := &e.Values[j]
			v.Label = cmp.Or(v.Label, v.Name)
		}
	}
	return enums, nil
}

// render generates a gofmt'ed Go file declaring enums in package pkg.
func render(pkg, config string, enums []enumDef) ([]byte, error) {
	var out bytes.Buffer
	err := tmpl.Execute(&out, struct {
		Package, Config string
		Enums           []enumDef
	}{pkg, config, enums})
	if err != nil {
		return nil, err
	}

	source, err := format.Source(out.Bytes())
	if err != nil {
		return nil, fmt.Errorf("generated invalid Go: %w", err)
	}
	return source, nil
}

// makeDocs converts text into doc comments, each line prefixed with indent.
func makeDocs(text, indent string) string {
	if text == "" {
		return ""
	}

	var out strings.Builder
	for line := range strings.SplitSeq(strings.TrimSpace(text), "\n") {
		out.WriteString(indent)
		if line == "" {
			out.WriteString("//\n")
			continue
		}
		fmt.Fprintf(&out, "// %s\n", line)
	}
	return out.String()
}

// Main generates the Go file for the YAML file at config. The package name
// comes from $GOPACKAGE, as set by go generate.
func Main(config string) error {
	if filepath.Ext(config) != ".yaml" {
		return errors.New("file argument must end in .yaml")
	}

	enums, err := load(config)
	if err != nil {
		return err
	}
	source, err := render(os.Getenv("GOPACKAGE"), filepath.Base(config), enums)
	if err != nil {
		return err
	}
	return os.WriteFile(strings.TrimSuffix(config, ".yaml")+".go", source, 0o644)
}

func main() {
	var failed bool
	for _, config := range os.Args[1:] {
		if err := Main(config); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", config, err)
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}
