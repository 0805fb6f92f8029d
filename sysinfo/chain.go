package sysinfo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

var errNoMarker = errors.New("presence marker missing")

// fetcher produces the raw text of one source.
type fetcher struct {
	name  string
	fetch func() (string, error)
}

// attempt is one entry in a probe's fallback chain.
type attempt[T any] struct {
	fetcher
	parse func(string) (T, bool)
}

func parsed[T any](f fetcher, parse func(string) (T, bool)) attempt[T] {
	return attempt[T]{fetcher: f, parse: parse}
}

// firstOf evaluates attempts in order and returns the first parsed value,
// or fallback once every attempt has failed.
func firstOf[T any](log *zap.Logger, probe string, fallback T, attempts ...attempt[T]) T {
	for _, a := range attempts {
		raw, err := a.fetch()
		if err != nil {
			log.Debug("source unavailable", zap.String("probe", probe), zap.String("source", a.name), zap.Error(err))
			continue
		}
		if v, ok := a.parse(raw); ok {
			return v
		}
		log.Debug("source unparsable", zap.String("probe", probe), zap.String("source", a.name))
	}
	log.Debug("using placeholder", zap.String("probe", probe))
	return fallback
}

func (p *Prober) file(path string) fetcher {
	return fetcher{
		name:  path,
		fetch: func() (string, error) { return p.src.ReadFile(path) },
	}
}

func (p *Prober) command(ctx context.Context, name string, args ...string) fetcher {
	return fetcher{
		name:  strings.TrimSpace(name + " " + strings.Join(args, " ")),
		fetch: func() (string, error) { return p.src.Run(ctx, name, args...) },
	}
}

func (p *Prober) env(key string) fetcher {
	return fetcher{
		name: "$" + key,
		fetch: func() (string, error) {
			v, ok := p.lookupEnv(key)
			if !ok {
				return "", fmt.Errorf("%s not set", key)
			}
			return v, nil
		},
	}
}

// gated only runs f when the marker path exists.
func (p *Prober) gated(marker string, f fetcher) fetcher {
	fetch := f.fetch
	f.fetch = func() (string, error) {
		if !p.src.Exists(marker) {
			return "", fmt.Errorf("%s: %w", marker, errNoMarker)
		}
		return fetch()
	}
	return f
}
