package vision

import (
	"gocv.io/x/gocv"

	"matchtuner/internal/equalizer"
)

// bfNorms maps the matcher catalog names to OpenCV norm constants.
var bfNorms = map[string]int{
	"BruteForce":            4, // NORM_L2
	"BruteForce-L1":         2, // NORM_L1
	"BruteForce-Hamming":    6, // NORM_HAMMING
	"BruteForce-Hamming(2)": 7, // NORM_HAMMING2
}

// BFMatcher adapts cv::BFMatcher for one of the BruteForce catalog entries.
// The equalizer never syncs the feature-match category (see the policy note
// there), but the adapter still builds configured matchers for callers that
// run matching.
type BFMatcher struct {
	table
}

// NewBFMatcher returns a matcher adapter for a BruteForce variant.
func NewBFMatcher(algorithm string) (*BFMatcher, bool) {
	norm, ok := bfNorms[algorithm]
	if !ok {
		return nil, false
	}
	m := &BFMatcher{newTable()}
	m.add("crossCheck", equalizer.Bool(false), true)
	m.add("normType", equalizer.Int(norm), true)
	return m, true
}

// Build creates the gocv matcher from the current parameter values.
// The caller owns the returned object and must Close it.
func (m *BFMatcher) Build() gocv.BFMatcher {
	return gocv.NewBFMatcherWithParams(
		gocv.NormType(m.intVal("normType")),
		m.boolVal("crossCheck"),
	)
}
