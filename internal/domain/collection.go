// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domain

import (
	"regexp"
	"strconv"
)

// CollectionID is a stable, opaque handle to a GeneCollection held by a
// Store.
type CollectionID int

const invalidCollectionID CollectionID = -1

// ParserRule is one (regex, replace template, optional splice-variant
// capture group) rule used to resolve a raw gene name to a canonical name
// and an optional splice-variant number, per spec §3/§4.1. Match must match
// the entire raw name for the rule to apply. Replace is expanded against
// Match's submatches using regexp.Expand syntax ($1, $2, ...). SpliceGroup
// is the 1-based index, among Match's own subexpressions, of the group that
// captures the splice-variant number; 0 means the rule carries no
// splice-variant concept.
type ParserRule struct {
	Match       *regexp.Regexp
	Replace     string
	SpliceGroup int
}

// NewParserRule compiles pattern and returns a ParserRule. It panics if
// pattern does not compile, mirroring the ingest-time fatality of a
// malformed parser rule (spec §7 kind 1).
func NewParserRule(pattern, replace string, spliceGroup int) ParserRule {
	return ParserRule{Match: regexp.MustCompile(pattern), Replace: replace, SpliceGroup: spliceGroup}
}

// Pattern returns the rule's original regular expression text, as given
// to NewParserRule (used by internal/persist to serialise a rule without
// round-tripping the compiled *regexp.Regexp directly).
func (r ParserRule) Pattern() string { return r.Match.String() }

// parse attempts to resolve raw using this rule. ok is false if the rule's
// pattern does not match raw in its entirety. variant is 0 when the rule
// has no splice-variant group, or when the group did not participate in
// the match.
func (r ParserRule) parse(raw string) (canonical string, variant int, ok bool) {
	loc := r.Match.FindStringSubmatchIndex(raw)
	if loc == nil || loc[0] != 0 || loc[1] != len(raw) {
		return "", 0, false
	}
	canonical = string(r.Match.ExpandString(nil, r.Replace, raw, loc))
	if r.SpliceGroup > 0 && 2*r.SpliceGroup+1 < len(loc) {
		start, end := loc[2*r.SpliceGroup], loc[2*r.SpliceGroup+1]
		if start >= 0 {
			v, err := strconv.Atoi(raw[start:end])
			if err == nil {
				variant = v
			}
		}
	}
	return canonical, variant, true
}

// GeneCollection is a named namespace of genes for one species/source. It
// carries an ordered list of parser rules tried in order against every raw
// gene name first referencing that collection.
type GeneCollection struct {
	id        CollectionID
	name      string
	species   string
	webPage   string // optional template, "$name" substituted with the gene's canonical name
	rules     []ParserRule
	isUnknown bool

	nameToGene map[string]GeneID // canonicalKey(name) -> gene id
	geneOrder  []GeneID          // insertion order, for iter_genes
}

// ID returns the collection's stable handle.
func (c *GeneCollection) ID() CollectionID { return c.id }

// Name returns the collection's display name.
func (c *GeneCollection) Name() string { return c.name }

// Species returns the collection's species name, or the empty string if
// unset.
func (c *GeneCollection) Species() string { return c.species }

// IsUnknown reports whether this is the store's distinguished "unknown"
// collection.
func (c *GeneCollection) IsUnknown() bool { return c.isUnknown }

// GeneWebPage returns the web-page URL for gene, with "$name" substituted
// by gene's canonical name, or ("", false) if no template is set.
func (c *GeneCollection) GeneWebPage(gene string) (string, bool) {
	if c.webPage == "" {
		return "", false
	}
	return expandName(c.webPage, gene), true
}

// WebPageTemplate returns the collection's raw, unexpanded gene web-page
// template (SPEC_FULL §3 EXPANSION), or "" if unset. Used by
// internal/persist to round-trip a collection without reconstructing it
// from GeneWebPage.
func (c *GeneCollection) WebPageTemplate() string { return c.webPage }

// Rules returns the collection's parser rules, in the order they are
// tried (spec §3, §4.1).
func (c *GeneCollection) Rules() []ParserRule {
	return append([]ParserRule(nil), c.rules...)
}

func expandName(template, name string) string {
	out := make([]byte, 0, len(template))
	for i := 0; i < len(template); i++ {
		if i+5 <= len(template) && template[i:i+5] == "$name" {
			out = append(out, name...)
			i += 4
			continue
		}
		out = append(out, template[i])
	}
	return string(out)
}

// parse tries the collection's rules in order and returns the first match.
func (c *GeneCollection) parse(raw string) (canonical string, variant int, ok bool) {
	for _, rule := range c.rules {
		if canonical, variant, ok = rule.parse(raw); ok {
			return canonical, variant, true
		}
	}
	return "", 0, false
}
