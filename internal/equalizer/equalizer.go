// Package equalizer models the tunable parameters of a pluggable
// image-matching pipeline: per-category backend selection, parameter
// registration and calibration marking, capability-based synchronization
// with live algorithm objects, and match-file persistence.
package equalizer

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"matchtuner/internal/settings"
)

var (
	// ErrUnknownCategory reports an operation addressing a category outside
	// the five matching stages.
	ErrUnknownCategory = errors.New("unknown matching category")

	// ErrUnsupportedAlgorithm reports a backend name outside a category's
	// algorithm catalog.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

	// ErrNoMatchFile reports a missing match file on load.
	ErrNoMatchFile = errors.New("match file not found")

	// ErrMalformedParameter reports text that does not satisfy the encoded
	// parameter grammar.
	ErrMalformedParameter = errors.New("malformed parameter")
)

// Category identifies one of the five fixed matching stages.
type Category string

const (
	CategoryFind           Category = "find"
	CategoryTemplateMatch  Category = "tmatch"
	CategoryFeatureDetect  Category = "fdetect"
	CategoryFeatureExtract Category = "fextract"
	CategoryFeatureMatch   Category = "fmatch"
)

// Categories returns the five matching stages in match-file section order.
func Categories() []Category {
	return []Category{
		CategoryFind,
		CategoryTemplateMatch,
		CategoryFeatureDetect,
		CategoryFeatureExtract,
		CategoryFeatureMatch,
	}
}

// catalogs holds the closed algorithm enumeration per category. The names
// are part of the match-file format; changing them breaks stored files.
var catalogs = map[Category][]string{
	CategoryFind: {"autopy", "template", "feature", "hybrid"},
	CategoryTemplateMatch: {
		"sqdiff", "ccorr", "ccoeff",
		"sqdiff_normed", "ccorr_normed", "ccoeff_normed",
	},
	CategoryFeatureDetect: {
		"ORB", "BRISK", "KAZE", "AKAZE", "MSER",
		"AgastFeatureDetector", "FastFeatureDetector", "GFTTDetector",
		"SimpleBlobDetector", "oldSURF",
	},
	CategoryFeatureExtract: {"ORB", "BRISK", "KAZE", "AKAZE"},
	CategoryFeatureMatch: {
		"BruteForce", "BruteForce-L1", "BruteForce-Hamming",
		"BruteForce-Hamming(2)", "in-house-raw", "in-house-region",
	},
}

// Algorithms returns the algorithm catalog for a category.
func Algorithms(c Category) ([]string, error) {
	cat, ok := catalogs[c]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	out := make([]string, len(cat))
	copy(out, cat)
	return out, nil
}

// TunableParam is one readable numeric/boolean attribute of an external
// algorithm object.
type TunableParam struct {
	Name  string
	Value Value
}

// Tunable is the capability surface of an external algorithm object:
// enumeration of readable numeric/boolean attributes in a stable order,
// plus a named attribute setter. Set reports false for attributes that are
// unknown or read-only.
type Tunable interface {
	Params() []TunableParam
	Set(name string, v Value) bool
}

// TunableFactory creates live algorithm objects so the equalizer can
// discover their adjustable parameters.
type TunableFactory interface {
	Create(c Category, algorithm string) (Tunable, error)
}

// Equalizer owns the backend selection and the parameter registry for every
// matching category. It is not safe for concurrent use; callers sharing one
// across goroutines must serialize access.
type Equalizer struct {
	factory TunableFactory
	current map[Category]int
	params  map[Category]*ParamSet
}

// New returns an equalizer with no backend selected for any category. The
// factory may be nil, in which case introspective categories register only
// their closed-form parameters.
func New(factory TunableFactory) *Equalizer {
	e := &Equalizer{
		factory: factory,
		current: make(map[Category]int),
		params:  make(map[Category]*ParamSet),
	}
	for _, c := range Categories() {
		e.current[c] = -1
		e.params[c] = newParamSet()
	}
	return e
}

// NewDefault returns an equalizer with the given find method selected and
// every other category set to its global default backend.
func NewDefault(factory TunableFactory, find string) (*Equalizer, error) {
	e := New(factory)
	err := e.Configure(Selection{
		Find:           find,
		TemplateMatch:  settings.TemplateMatchBackend(),
		FeatureDetect:  settings.FeatureDetectBackend(),
		FeatureExtract: settings.FeatureExtractBackend(),
		FeatureMatch:   settings.FeatureMatchBackend(),
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Backend returns the currently selected algorithm name for a category, or
// the empty string when nothing has been selected yet.
func (e *Equalizer) Backend(c Category) (string, error) {
	cat, ok := catalogs[c]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	idx := e.current[c]
	if idx < 0 {
		return "", nil
	}
	return cat[idx], nil
}

// SetBackend selects an algorithm for a category and regenerates the
// category's parameter mapping from the algorithm's defaults. This is a
// destructive reset: prior overrides for the category are discarded. On
// error the previous selection and mapping are left untouched.
func (e *Equalizer) SetBackend(c Category, name string) error {
	cat, ok := catalogs[c]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	idx := -1
	for i, a := range cat {
		if a == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %q for category %s", ErrUnsupportedAlgorithm, name, c)
	}

	ps, err := e.defaultParams(c, name)
	if err != nil {
		return err
	}
	e.current[c] = idx
	e.params[c] = ps
	log.Trace().Str("category", string(c)).Str("backend", name).Msg("backend selected")
	return nil
}

// Selection chooses a backend per category for Configure. Empty fields
// leave the corresponding category unchanged.
type Selection struct {
	Find           string
	TemplateMatch  string
	FeatureDetect  string
	FeatureExtract string
	FeatureMatch   string
}

// Configure applies SetBackend for every non-empty field of the selection.
// Categories are independent; a partial selection never touches the rest.
func (e *Equalizer) Configure(sel Selection) error {
	steps := []struct {
		c    Category
		name string
	}{
		{CategoryFind, sel.Find},
		{CategoryTemplateMatch, sel.TemplateMatch},
		{CategoryFeatureDetect, sel.FeatureDetect},
		{CategoryFeatureExtract, sel.FeatureExtract},
		{CategoryFeatureMatch, sel.FeatureMatch},
	}
	for _, s := range steps {
		if s.name == "" {
			continue
		}
		if err := e.SetBackend(s.c, s.name); err != nil {
			return err
		}
	}
	return nil
}

// Params returns the parameter mapping currently registered for a category.
// The equalizer retains ownership; callers may mutate Value and Fixed only.
func (e *Equalizer) Params(c Category) (*ParamSet, error) {
	ps, ok := e.params[c]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	return ps, nil
}

// defaultParams builds the parameter mapping for a freshly selected
// algorithm. The tables mirror what each category exposes for tuning.
func (e *Equalizer) defaultParams(c Category, name string) (*ParamSet, error) {
	ps := newParamSet()
	switch c {
	case CategoryFind:
		ps.Put("similarity", mustNew(Float(0.9), Float(0.0), Float(1.0), 0.1, 0.1))
		if name == "feature" || name == "hybrid" {
			ps.Put("ransacReprojThreshold", mustNew(Float(0.0), Float(0.0), Float(200.0), 10.0, 1.0))
		}
		if name == "template" || name == "hybrid" {
			ps.Put("nocolor", mustNew(Bool(false), None(), None(), 1.0, 0.1))
		}
		if name == "hybrid" {
			// first-stage threshold for the template front end
			ps.Put("front_similarity", mustNew(Float(0.8), Float(0.0), Float(1.0), 0.1, 0.1))
		}
		return ps, nil

	case CategoryTemplateMatch:
		// nothing tunable beyond the algorithm choice itself
		return ps, nil

	case CategoryFeatureDetect:
		ps.Put("nzoom", mustNew(Float(4.0), Float(1.0), Float(10.0), 1.0, 1.0))
		ps.Put("hzoom", mustNew(Float(4.0), Float(1.0), Float(10.0), 1.0, 1.0))
		if name == "oldSURF" {
			// legacy detector keeps a single threshold, no discovery
			ps.Put("oldSURFdetect", mustNew(Int(85), None(), None(), 1.0, 0.1))
			return ps, nil
		}
		if err := e.discover(c, name, ps); err != nil {
			return nil, err
		}
		return ps, nil

	case CategoryFeatureExtract:
		if err := e.discover(c, name, ps); err != nil {
			return nil, err
		}
		return ps, nil

	case CategoryFeatureMatch:
		if name == "in-house-region" {
			ps.Put("refinements", mustNew(Int(50), Int(1), None(), 1.0, 0.1))
			ps.Put("recalc_interval", mustNew(Int(10), Int(1), None(), 1.0, 0.1))
			ps.Put("variants_k", mustNew(Int(100), Int(1), None(), 1.0, 0.1))
			ps.Put("variants_ratio", mustNew(Float(0.33), Float(0.0001), Float(1.0), 1.0, 0.1))
			return ps, nil
		}
		ps.Put("ratioThreshold", mustNew(Float(0.65), Float(0.0), Float(1.0), 0.1, 0.1))
		ps.Put("ratioTest", mustNew(Bool(false), None(), None(), 1.0, 0.1))
		ps.Put("symmetryTest", mustNew(Bool(false), None(), None(), 1.0, 0.1))
		// No discovery for any matcher: in-house variants expose nothing,
		// and OpenCV crashes when matcher parameters are read back through
		// its descriptor matcher interface.
		return ps, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
}

// discover asks the backend factory for a live algorithm object and
// registers a parameter for every readable attribute it exposes. A short
// list of well-known attributes gets bespoke bounds; everything else is
// seeded unbounded with the discovered value.
func (e *Equalizer) discover(c Category, name string, ps *ParamSet) error {
	if e.factory == nil {
		log.Trace().Str("category", string(c)).Str("backend", name).
			Msg("no backend factory, skipping parameter discovery")
		return nil
	}
	b, err := e.factory.Create(c, name)
	if err != nil {
		return fmt.Errorf("create %s backend %q: %w", c, name, err)
	}

	for _, tp := range b.Params() {
		var p *Parameter
		switch tp.Name {
		case "firstLevel":
			p, err = NewParameter(tp.Value, Int(0), Int(100), 1.0, 0.1)
		case "nFeatures":
			p, err = NewParameter(tp.Value, None(), None(), 100.0, 0.1)
		case "WTA_K":
			p, err = NewParameter(tp.Value, Int(2), Int(4), 1.0, 0.1)
		case "scaleFactor":
			p, err = NewParameter(tp.Value, Float(1.01), Float(2.0), 1.0, 0.1)
		default:
			p, err = NewParameter(tp.Value, None(), None(), 1.0, 0.1)
		}
		if err != nil {
			return fmt.Errorf("discover %s/%s: %w", c, tp.Name, err)
		}
		ps.Put(tp.Name, p)
		log.Trace().Str("category", string(c)).Str("param", tp.Name).
			Stringer("value", tp.Value).Msg("discovered parameter")
	}
	return nil
}

// MarkCalibratable sets the lock flag on every parameter of a category:
// enabled unlocks them for the calibrator, disabled locks them all.
func (e *Equalizer) MarkCalibratable(c Category, enabled bool) error {
	ps, ok := e.params[c]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	for _, name := range ps.Names() {
		p, _ := ps.Get(name)
		// The descriptor byte length of the feature extractors crashes
		// OpenCV when changed after construction; keep it locked no matter
		// what the caller asked for.
		if c == CategoryFeatureExtract && name == "bytes" {
			p.Fixed = true
			continue
		}
		p.Fixed = !enabled
	}
	return nil
}

// Sync pushes the registry's values for a category onto a live algorithm
// object. Attributes without a registered parameter, and parameters without
// a settable attribute, are left untouched.
func (e *Equalizer) Sync(c Category, b Tunable) error {
	ps, ok := e.params[c]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}

	backend, err := e.Backend(c)
	if err != nil {
		return err
	}
	switch {
	case c == CategoryFind || c == CategoryTemplateMatch:
		// nothing externally adjustable at these stages
		return nil
	case c == CategoryFeatureDetect && backend == "oldSURF":
		// legacy detector is configured through its own threshold only
		return nil
	case c == CategoryFeatureMatch:
		// in-house matchers carry no external object; for the BruteForce
		// family OpenCV crashes when matcher parameters are touched through
		// its interface, so the whole category stays unsynchronized
		return nil
	}

	if b == nil {
		return nil
	}
	for _, tp := range b.Params() {
		p, ok := ps.Get(tp.Name)
		if !ok {
			continue
		}
		if b.Set(tp.Name, p.Value) {
			log.Trace().Str("category", string(c)).Str("param", tp.Name).
				Stringer("value", p.Value).Msg("synced parameter")
		}
	}
	return nil
}
