package equalizer

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/ini.v1"
)

// matchFileExt is appended by the codec; callers pass the base name only.
const matchFileExt = ".match"

const matchFileHeader = "# IMAGE MATCH DATA"

// SaveMatch writes the configuration to `<base>.match`: one section per
// selected category, each holding a backend key plus one encoded parameter
// per key, in registration order. Categories without a selected backend are
// omitted, so every stored backend key names a catalog member.
func (e *Equalizer) SaveMatch(base string) error {
	cfg := ini.Empty()
	for _, c := range Categories() {
		backend, err := e.Backend(c)
		if err != nil {
			return err
		}
		if backend == "" {
			log.Trace().Str("category", string(c)).Msg("no backend selected, section omitted")
			continue
		}
		sec, err := cfg.NewSection(string(c))
		if err != nil {
			return fmt.Errorf("section %s: %w", c, err)
		}
		if _, err := sec.NewKey("backend", backend); err != nil {
			return fmt.Errorf("section %s: %w", c, err)
		}
		ps := e.params[c]
		for _, name := range ps.Names() {
			p, _ := ps.Get(name)
			if _, err := sec.NewKey(name, p.Encode()); err != nil {
				return fmt.Errorf("section %s key %s: %w", c, name, err)
			}
		}
	}

	path := base + matchFileExt
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write match file: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, matchFileHeader); err != nil {
		return fmt.Errorf("write match file: %w", err)
	}
	if _, err := cfg.WriteTo(f); err != nil {
		return fmt.Errorf("write match file: %w", err)
	}
	log.Debug().Str("path", path).Msg("saved match file")
	return nil
}

// LoadMatch reads `<base>.match` and applies it to the registry. A stored
// backend differing from the current selection triggers SetBackend (and its
// destructive parameter reset) before the stored parameters overwrite the
// regenerated ones. Unknown sections and extra keys are accepted; a
// parameter that fails to decode aborts the load.
func (e *Equalizer) LoadMatch(base string) error {
	path := base + matchFileExt
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNoMatchFile, path)
		}
		return fmt.Errorf("read match file: %w", err)
	}
	cfg, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("read match file: %w", err)
	}

	for _, c := range Categories() {
		sec, err := cfg.GetSection(string(c))
		if err != nil {
			continue
		}
		if !sec.HasKey("backend") {
			return fmt.Errorf("match file section %s has no backend key", c)
		}
		stored := sec.Key("backend").String()
		current, err := e.Backend(c)
		if err != nil {
			return err
		}
		if stored != current {
			if err := e.SetBackend(c, stored); err != nil {
				return err
			}
		}
		for _, k := range sec.Keys() {
			if k.Name() == "backend" {
				continue
			}
			p, err := Decode(k.Value())
			if err != nil {
				return fmt.Errorf("match file %s/%s: %w", c, k.Name(), err)
			}
			e.params[c].Put(k.Name(), p)
		}
	}
	log.Debug().Str("path", path).Msg("loaded match file")
	return nil
}
