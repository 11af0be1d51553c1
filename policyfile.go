package htmlsanitizer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// policyFile is the YAML form of a Policy. Pointer fields distinguish
// "not set" from a zero value so that a document only overrides what it
// names.
type policyFile struct {
	// Base selects the starting policy: "default" (or empty), "strict"
	// or "none".
	Base string `yaml:"base"`

	AllowedTags       []string            `yaml:"allowed_tags"`
	AllowedAttributes map[string][]string `yaml:"allowed_attributes"`
	AllowedSchemes    []string            `yaml:"allowed_schemes"`
	StripDisallowed   *bool               `yaml:"strip_disallowed"`
	Linkify           *bool               `yaml:"linkify"`
	MaxDepth          *int                `yaml:"max_depth"`

	PreserveComments           *bool    `yaml:"preserve_comments"`
	EntityEncodeIntlCharacters *bool    `yaml:"entity_encode_intl_characters"`
	AllowedEmptyTags           []string `yaml:"allowed_empty_tags"`
	RequiresClosingTags        []string `yaml:"requires_closing_tags"`
	BooleanAttributes          []string `yaml:"boolean_attributes"`
}

// LoadPolicy reads a YAML policy document from r. Keys that are present
// replace the corresponding field of the base policy; absent keys keep
// the base value. Unknown keys are an error.
//
//	base: strict
//	allowed_tags: [b, i, a]
//	allowed_attributes:
//	  a: [href]
//	preserve_comments: true
func LoadPolicy(r io.Reader) (*Policy, error) {
	var f policyFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, &PolicyError{Err: err}
	}
	return f.policy()
}

// LoadPolicyFile reads a YAML policy document from path.
func LoadPolicyFile(path string) (*Policy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := LoadPolicy(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func (f *policyFile) policy() (*Policy, error) {
	var p *Policy
	switch strings.ToLower(f.Base) {
	case "", "default":
		p = DefaultPolicy()
	case "strict":
		p = StrictPolicy()
	case "none":
		p = &Policy{AllowedAttributes: map[string][]string{}}
	default:
		return nil, &PolicyError{Field: "base", Err: fmt.Errorf("unknown base %q", f.Base)}
	}

	for field, names := range map[string][]string{
		"allowed_tags":          f.AllowedTags,
		"allowed_empty_tags":    f.AllowedEmptyTags,
		"requires_closing_tags": f.RequiresClosingTags,
		"boolean_attributes":    f.BooleanAttributes,
	} {
		if err := checkNames(names); err != nil {
			return nil, &PolicyError{Field: field, Err: err}
		}
	}
	for tag, attrs := range f.AllowedAttributes {
		if err := checkNames(append([]string{tag}, attrs...)); err != nil {
			return nil, &PolicyError{Field: "allowed_attributes", Err: err}
		}
	}
	for _, s := range f.AllowedSchemes {
		if s == "" || strings.ContainsAny(s, ": \t\n") {
			return nil, &PolicyError{Field: "allowed_schemes", Err: fmt.Errorf("bad scheme %q", s)}
		}
	}
	if f.MaxDepth != nil && *f.MaxDepth < 0 {
		return nil, &PolicyError{Field: "max_depth", Err: errors.New("must not be negative")}
	}

	if f.AllowedTags != nil {
		p.AllowedTags = f.AllowedTags
	}
	if f.AllowedAttributes != nil {
		p.AllowedAttributes = f.AllowedAttributes
	}
	if f.AllowedSchemes != nil {
		p.AllowedSchemes = f.AllowedSchemes
	}
	if f.AllowedEmptyTags != nil {
		p.AllowedEmptyTags = f.AllowedEmptyTags
	}
	if f.RequiresClosingTags != nil {
		p.RequiresClosingTags = f.RequiresClosingTags
	}
	if f.BooleanAttributes != nil {
		p.BooleanAttributes = f.BooleanAttributes
	}
	setBool(&p.StripDisallowed, f.StripDisallowed)
	setBool(&p.Linkify, f.Linkify)
	setBool(&p.PreserveComments, f.PreserveComments)
	setBool(&p.EntityEncodeIntlCharacters, f.EntityEncodeIntlCharacters)
	if f.MaxDepth != nil {
		p.MaxDepth = *f.MaxDepth
	}
	return p, nil
}

func checkNames(names []string) error {
	for _, n := range names {
		if n == "" || strings.ContainsAny(n, " \t\n<>\"'/=") {
			return fmt.Errorf("bad name %q", n)
		}
	}
	return nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
