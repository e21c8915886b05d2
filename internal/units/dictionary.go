package units

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jci-public/numerics/internal/config"
	"github.com/jci-public/numerics/internal/resolver"
)

// dictionary maps a stripped unit name to its resolved Info. It is built
// once by buildDictionary and is read-only afterward; every lookup this
// package performs during construction reads from the same instance a
// later insert may still be filling in, which is the self-referential
// construction a unit expression referencing another derived unit
// requires.
type dictionary struct {
	dimension int
	entries   map[string]Info
	trie      *suggestTrie
}

func newDictionary(dimension int) *dictionary {
	return &dictionary{dimension: dimension, entries: make(map[string]Info)}
}

func (d *dictionary) lookup(name string) (Info, bool) {
	v, ok := d.entries[stripSpaces(name)]
	return v, ok
}

func stripSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

// namedEntry is one name parsed out of a "units" config key, together with
// the prefix families (if any) that apply to that name alone.
type namedEntry struct {
	name     string
	families []string
}

// parseNames splits a units config key such as "[si,binary]kg,g" into
// [{name: "kg", families: [si, binary]}, {name: "g", families: nil}]. A
// family tag only applies to the single name that immediately follows it;
// it does not carry across commas.
func parseNames(raw string) ([]namedEntry, error) {
	var out []namedEntry
	i, n := 0, len(raw)
	for i < n {
		var families []string
		if raw[i] == '[' {
			end := strings.IndexByte(raw[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated family tag in %q", ErrInvalidConfig, raw)
			}
			for _, f := range strings.Split(raw[i+1:i+end], ",") {
				if f = strings.TrimSpace(f); f != "" {
					families = append(families, f)
				}
			}
			i += end + 1
		}
		start := i
		for i < n && raw[i] != ',' {
			i++
		}
		name := stripSpaces(raw[start:i])
		if name == "" {
			return nil, fmt.Errorf("%w: empty unit name in %q", ErrInvalidConfig, raw)
		}
		out = append(out, namedEntry{name: name, families: families})
		if i < n && raw[i] == ',' {
			i++
		}
	}
	return out, nil
}

type pendingUnit struct {
	key     string
	expr    string
	entries []namedEntry
}

// resolvedUnit is a pending unit that has resolved to a concrete Info,
// carried forward from the bare-name insertion pass to the prefix
// expansion pass.
type resolvedUnit struct {
	entries []namedEntry
	info    Info
}

// buildDictionary constructs the dictionary and the engine used to build
// it: base units first, then unit entries resolved against the
// dictionary under construction, then prefix expansion.
//
// cfg.Units is a Go map, so its iteration order is not the config
// author's order; since one unit's expression may legitimately reference
// another derived unit, construction resolves in a fixed-point loop
// instead of a single deterministic-order pass — every entry whose
// expression only names already-known units resolves on some pass, and a
// pass that resolves nothing leaves a genuine forward reference, reported
// by name per the "fails with InvalidConfig naming that unit" rule.
//
// Bare names and prefix expansions are inserted in two separate passes
// rather than interleaved per unit: every pending unit's bare name goes
// in first, across every fixed-point pass, and only once that full set is
// settled does prefix expansion run. A prefix candidate's collision check
// must see the dictionary's final bare-name set, not whatever partial
// state existed at the moment that one unit happened to resolve — doing
// the two kinds of insert in the same pass makes the bracket-fallback
// outcome depend on cfg.Units' (arbitrary) key sort order instead of on
// what names actually exist.
func buildDictionary(cfg *config.Config) (*dictionary, *resolver.Resolver[Info], error) {
	dimension := len(cfg.BaseUnits)
	dict := newDictionary(dimension)
	engine := resolver.New[Info](&algebra{dict: dict})
	if err := registerOperators(engine); err != nil {
		return nil, nil, err
	}

	baseSet := make(map[string]bool, dimension)
	for idx, name := range cfg.BaseUnits {
		name = stripSpaces(name)
		if name == "" {
			return nil, nil, fmt.Errorf("%w: empty base unit name", ErrInvalidConfig)
		}
		dict.entries[name] = newNamedInfo(name, baseExponentVector(dimension, idx), 1, 0)
		baseSet[name] = true
	}

	pending := make([]pendingUnit, 0, len(cfg.Units))
	for key, expr := range cfg.Units {
		entries, err := parseNames(key)
		if err != nil {
			return nil, nil, err
		}
		pending = append(pending, pendingUnit{key: key, expr: expr, entries: entries})
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].key < pending[j].key })

	var resolved []resolvedUnit
	for len(pending) > 0 {
		var stillPending []pendingUnit
		progressed := false

		for _, p := range pending {
			info, err := engine.Resolve(p.expr)
			if err != nil {
				if errors.Is(err, resolver.ErrUnknownName) {
					stillPending = append(stillPending, p)
					continue
				}
				return nil, nil, fmt.Errorf("%w: unit %q: %v", ErrInvalidConfig, p.key, err)
			}
			insertBareNames(dict, baseSet, p.entries, info)
			resolved = append(resolved, resolvedUnit{entries: p.entries, info: info})
			progressed = true
		}

		if !progressed {
			keys := make([]string, len(stillPending))
			for i, p := range stillPending {
				keys[i] = p.key
			}
			return nil, nil, fmt.Errorf("%w: unresolvable forward reference(s): %s", ErrInvalidConfig, strings.Join(keys, ", "))
		}
		pending = stillPending
	}

	for _, ru := range resolved {
		if err := insertPrefixExpansions(dict, cfg, ru.entries, ru.info); err != nil {
			return nil, nil, err
		}
	}

	return dict, engine, nil
}

// insertBareNames inserts a resolved unit's Info under each of its bare
// names. A bare name never overwrites a base unit; it may still overwrite
// another derived unit's bare-name entry, since cfg.Units carries no
// bare-vs-bare conflict policy beyond "last one wins."
func insertBareNames(dict *dictionary, baseSet map[string]bool, entries []namedEntry, info Info) {
	for _, e := range entries {
		if baseSet[e.name] {
			continue
		}
		dict.entries[e.name] = newNamedInfo(e.name, info.Exponents(), info.Factor, info.Offset)
	}
}

// insertPrefixExpansions inserts every prefix-expanded variant of a
// resolved unit's names, run only after every pending unit's bare name
// has already been inserted. A prefixed name that collides with an
// existing entry falls back to the bracketed spelling instead of
// overwriting it.
func insertPrefixExpansions(dict *dictionary, cfg *config.Config, entries []namedEntry, info Info) error {
	for _, e := range entries {
		for _, family := range e.families {
			prefixes, ok := cfg.Prefixes[family]
			if !ok {
				return fmt.Errorf("%w: unknown prefix family %q for unit %q", ErrInvalidConfig, family, e.name)
			}
			for prefix, scale := range prefixes {
				candidate := prefix + e.name
				if _, exists := dict.entries[candidate]; exists {
					candidate = "[" + prefix + "]" + e.name
				}
				dict.entries[candidate] = newNamedInfo(candidate, info.Exponents(), info.Factor*scale, info.Offset)
			}
		}
	}
	return nil
}

// freeze builds the suggestion prefilter trie over the final key set and
// marks construction complete. It must run after every insert.
func (d *dictionary) freeze() {
	t := newSuggestTrie()
	for name := range d.entries {
		t.insert(name)
	}
	d.trie = t
}
