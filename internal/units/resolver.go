// Package units specializes the generic resolver for unit-of-measure
// algebra: exponent-vector operands, a dictionary built from configured
// base units and expressions, and prefix-expanded name variants.
package units

import (
	"errors"
	"fmt"

	"github.com/jci-public/numerics/internal/config"
	"github.com/jci-public/numerics/internal/resolver"
)

// Resolver resolves unit expression text into Info against a dictionary
// built once from a Config. It performs no caching of its own; callers
// that want memoized lookups use internal/system, which layers a cache on
// top of exactly this type.
type Resolver struct {
	dict   *dictionary
	engine *resolver.Resolver[Info]
}

// NewResolver builds the dictionary described by cfg — base units, then
// derived units resolved against the dictionary under construction, then
// prefix-expanded variants — and returns a Resolver ready for concurrent
// use. It fails with ErrInvalidConfig on malformed config or an
// unresolvable seed expression.
func NewResolver(cfg *config.Config) (*Resolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	dict, engine, err := buildDictionary(cfg)
	if err != nil {
		return nil, err
	}
	dict.freeze()
	return &Resolver{dict: dict, engine: engine}, nil
}

// Resolve parses text and reduces it to a single Info. An unrecognized
// sub-token is decorated with up to 11 near-match dictionary names.
func (r *Resolver) Resolve(text string) (Info, error) {
	info, err := r.engine.Resolve(text)
	if err != nil {
		return Info{}, r.decorate(text, err)
	}
	return info, nil
}

func (r *Resolver) decorate(text string, err error) error {
	var posErr *resolver.PositionError
	if !errors.As(err, &posErr) || !errors.Is(err, resolver.ErrUnknownName) {
		return err
	}
	names := r.dict.suggest(posErr.Token)
	msg := fmt.Sprintf("%s: Unrecognized unit expression %q at position %d.", text, posErr.Token, posErr.Pos)
	if len(names) > 0 {
		msg += " Did you mean: "
		for i, n := range names {
			if i > 0 {
				msg += ", "
			}
			msg += n
		}
		msg += "?"
	}
	return fmt.Errorf("%w: %s", ErrUnknownUnit, msg)
}
