// Package ruletable loads recruitment rule tables from YAML documents.
//
// A document lists, per rule set, the clan and non-clan profession tables:
//
//	rulesets:
//	  camops:
//	    non_clan:
//	      - {profession: mekwarrior, weight: 40, count: 10, intro_year: 2439, extinct_year: -1}
//	    clan:
//	      - {profession: mekwarrior, weight: 50, count: 12, intro_year: 2807}
package ruletable

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/louisbranch/personnel.dynamics/internal/market"
	apperrors "github.com/louisbranch/personnel.dynamics/internal/platform/errors"
	"github.com/louisbranch/personnel.dynamics/internal/roster"
)

type document struct {
	RuleSets map[string]ruleSet `yaml:"rulesets"`
}

type ruleSet struct {
	Clan    []market.Entry `yaml:"clan"`
	NonClan []market.Entry `yaml:"non_clan"`
}

var knownRuleSets = []string{market.RuleSetMekHQ, market.RuleSetCamOps}

// Load decodes a rule table document. Unknown rule sets and entries without
// a profession are rejected; everything else is left to Problems.
func Load(r io.Reader) (market.TableSet, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, apperrors.Wrap(apperrors.CodeRuleTableInvalid, "decode rule tables", err)
	}
	set := make(market.TableSet, len(doc.RuleSets))
	for name, rs := range doc.RuleSets {
		name = strings.ToLower(strings.TrimSpace(name))
		if !slices.Contains(knownRuleSets, name) {
			return nil, apperrors.WithMetadata(apperrors.CodeRuleTableInvalid, "unknown rule set", map[string]string{
				"ruleset": name,
			})
		}
		for _, entries := range [][]market.Entry{rs.Clan, rs.NonClan} {
			for i, e := range entries {
				if strings.TrimSpace(string(e.Profession)) == "" {
					return nil, apperrors.WithMetadata(apperrors.CodeRuleTableInvalid, "entry has no profession", map[string]string{
						"ruleset": name,
						"index":   fmt.Sprint(i),
					})
				}
			}
		}
		set[name] = market.Tables{
			Clan:    market.NewTable(rs.Clan...),
			NonClan: market.NewTable(rs.NonClan...),
		}
	}
	return set, nil
}

// LoadFile reads a rule table document from path.
func LoadFile(path string) (market.TableSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeFixtureLoad, fmt.Sprintf("open rule tables %s", path), err)
	}
	defer f.Close()
	return Load(f)
}

// Problems lists configuration defects the market will degrade around:
// tables with nothing eligible, fallbacks to absent professions, and
// fallback cycles. The result is sorted for stable logs.
func Problems(set market.TableSet) []error {
	var problems []error
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		tables := set[name]
		for _, side := range []struct {
			label string
			table market.Table
		}{{"clan", tables.Clan}, {"non_clan", tables.NonClan}} {
			problems = append(problems, tableProblems(name, side.label, side.table)...)
		}
	}
	return problems
}

func tableProblems(ruleset, side string, table market.Table) []error {
	if len(table) == 0 {
		return nil
	}
	meta := func(extra ...string) map[string]string {
		m := map[string]string{"ruleset": ruleset, "table": side}
		for i := 0; i+1 < len(extra); i += 2 {
			m[extra[i]] = extra[i+1]
		}
		return m
	}
	var problems []error
	if len(market.Sanitize(table)) == 0 {
		problems = append(problems, apperrors.WithMetadata(apperrors.CodeRuleTableEmpty, "no entry has positive weight and count", meta()))
	}
	for _, e := range market.Sorted(table) {
		if e.Fallback == "" {
			continue
		}
		if _, ok := table.Lookup(e.Fallback); !ok {
			problems = append(problems, apperrors.WithMetadata(apperrors.CodeFallbackMissing, "fallback names an absent profession", meta(
				"profession", string(e.Profession), "fallback", string(e.Fallback))))
			continue
		}
		if cyclic(table, e.Profession) {
			problems = append(problems, apperrors.WithMetadata(apperrors.CodeFallbackExhausted, "fallback chain loops", meta(
				"profession", string(e.Profession))))
		}
	}
	return problems
}

func cyclic(table market.Table, start roster.Profession) bool {
	seen := map[roster.Profession]bool{start: true}
	current := start
	for {
		e, ok := table.Lookup(current)
		if !ok || e.Fallback == "" {
			return false
		}
		if seen[e.Fallback] {
			return true
		}
		seen[e.Fallback] = true
		current = e.Fallback
	}
}
