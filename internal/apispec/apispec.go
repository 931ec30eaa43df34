// Package apispec checks an OpenAPI document against the contract a server
// actually implements.
package apispec

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const jsonMediaType = "application/json"

// Document is the subset of OpenAPI 3 that Check inspects.
type Document struct {
	Paths      map[string]map[string]Operation `yaml:"paths"`
	Components struct {
		Schemas map[string]Schema `yaml:"schemas"`
	} `yaml:"components"`
}

// Operation is a single method under a path.
type Operation struct {
	Responses map[string]Response `yaml:"responses"`
}

// Response is one status entry of an operation.
type Response struct {
	Content map[string]struct {
		Schema Schema `yaml:"schema"`
	} `yaml:"content"`
}

// Schema is a JSON schema object or reference.
type Schema struct {
	Type       string            `yaml:"type"`
	Ref        string            `yaml:"$ref"`
	Properties map[string]Schema `yaml:"properties"`
	Required   []string          `yaml:"required"`
	Items      *Schema           `yaml:"items"`
}

// Route is an endpoint the server serves, with the statuses it can return.
type Route struct {
	Path     string
	Method   string
	Statuses []string
}

// Field is a required string-or-typed property of a schema.
type Field struct {
	Name string
	Type string
}

// SchemaRule names a component schema and the fields it must require.
type SchemaRule struct {
	Name     string
	Required []Field
}

// Contract is what the document must describe.
type Contract struct {
	Routes  []Route
	Schemas []SchemaRule
}

// Load reads and parses an OpenAPI YAML document.
func Load(path string) (Document, error) {
	var doc Document
	raw, err := os.ReadFile(path)
	if err != nil {
		return doc, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// Check reports every mismatch between doc and c.
func Check(doc Document, c Contract) error {
	var errs []error
	for _, route := range c.Routes {
		errs = append(errs, checkRoute(doc, route)...)
	}
	for _, rule := range c.Schemas {
		if err := checkSchema(doc, rule); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func checkRoute(doc Document, route Route) []error {
	method := strings.ToLower(route.Method)
	op, ok := doc.Paths[route.Path][method]
	if !ok {
		return []error{fmt.Errorf("%s %s missing", route.Method, route.Path)}
	}
	var errs []error
	for _, status := range route.Statuses {
		resp, ok := op.Responses[status]
		if !ok {
			errs = append(errs, fmt.Errorf("%s %s: response %s missing", route.Method, route.Path, status))
			continue
		}
		media, ok := resp.Content[jsonMediaType]
		if !ok {
			errs = append(errs, fmt.Errorf("%s %s: response %s has no %s body", route.Method, route.Path, status, jsonMediaType))
			continue
		}
		if ref := strings.TrimSpace(media.Schema.Ref); ref != "" {
			if _, err := resolve(doc, ref); err != nil {
				errs = append(errs, fmt.Errorf("%s %s: response %s: %w", route.Method, route.Path, status, err))
			}
		}
	}
	return errs
}

func checkSchema(doc Document, rule SchemaRule) error {
	s, ok := doc.Components.Schemas[rule.Name]
	if !ok {
		return fmt.Errorf("schema %q missing", rule.Name)
	}
	if s.Type != "object" {
		return fmt.Errorf("schema %q must be object", rule.Name)
	}
	required := make(map[string]bool, len(s.Required))
	for _, name := range s.Required {
		required[strings.TrimSpace(name)] = true
	}
	for _, f := range rule.Required {
		if !required[f.Name] {
			return fmt.Errorf("%s.required must include %q", rule.Name, f.Name)
		}
		prop, ok := s.Properties[f.Name]
		if !ok || prop.Type != f.Type {
			return fmt.Errorf("%s.%s must be %s", rule.Name, f.Name, f.Type)
		}
	}
	return nil
}

func resolve(doc Document, ref string) (Schema, error) {
	const prefix = "#/components/schemas/"
	if !strings.HasPrefix(ref, prefix) {
		return Schema{}, fmt.Errorf("unsupported ref %q", ref)
	}
	s, ok := doc.Components.Schemas[strings.TrimPrefix(ref, prefix)]
	if !ok {
		return Schema{}, fmt.Errorf("unresolved ref %q", ref)
	}
	return s, nil
}
