// Package vision provides gocv-backed algorithm adapters for the matching
// equalizer's capability-sync boundary. Each adapter carries an ordered
// table of the underlying OpenCV algorithm's constructor parameters; the
// equalizer discovers and pushes values through the table and callers
// materialize configured gocv objects with Build.
package vision

import (
	"fmt"

	"matchtuner/internal/equalizer"
)

// Factory maps (category, algorithm) pairs to live adapter instances.
// It implements equalizer.TunableFactory.
type Factory struct{}

// NewFactory returns a factory over the gocv-backed adapters.
func NewFactory() *Factory { return &Factory{} }

// Create returns a fresh adapter for the requested algorithm. Only the
// feature detection, extraction and matching categories have live external
// objects; the find and template-match stages are driven by values alone.
func (f *Factory) Create(c equalizer.Category, algorithm string) (equalizer.Tunable, error) {
	switch c {
	case equalizer.CategoryFeatureDetect, equalizer.CategoryFeatureExtract:
		if d, ok := detectorFor(algorithm); ok {
			return d, nil
		}
	case equalizer.CategoryFeatureMatch:
		if m, ok := NewBFMatcher(algorithm); ok {
			return m, nil
		}
	default:
		return nil, fmt.Errorf("category %s has no live backend object", c)
	}
	return nil, fmt.Errorf("no adapter for %s algorithm %q", c, algorithm)
}

func detectorFor(algorithm string) (equalizer.Tunable, bool) {
	switch algorithm {
	case "ORB":
		return NewORB(), true
	case "BRISK":
		return NewBRISK(), true
	case "KAZE":
		return NewKAZE(), true
	case "AKAZE":
		return NewAKAZE(), true
	case "MSER":
		return NewMSER(), true
	case "AgastFeatureDetector":
		return NewAgast(), true
	case "FastFeatureDetector":
		return NewFAST(), true
	case "GFTTDetector":
		return NewGFTT(), true
	case "SimpleBlobDetector":
		return NewSimpleBlob(), true
	default:
		return nil, false
	}
}
