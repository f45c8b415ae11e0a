package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchtuner/internal/equalizer"
)

func paramNames(t equalizer.Tunable) []string {
	params := t.Params()
	names := make([]string, 0, len(params))
	for _, p := range params {
		names = append(names, p.Name)
	}
	return names
}

func TestORBDefaults(t *testing.T) {
	orb := NewORB()
	assert.Equal(t,
		[]string{
			"WTA_K", "edgeThreshold", "fastThreshold", "firstLevel",
			"nFeatures", "nLevels", "patchSize", "scaleFactor", "scoreType",
		},
		paramNames(orb))

	params := orb.Params()
	byName := make(map[string]equalizer.Value, len(params))
	for _, p := range params {
		byName[p.Name] = p.Value
	}
	assert.Equal(t, equalizer.Int(500), byName["nFeatures"])
	assert.Equal(t, equalizer.Float(1.2), byName["scaleFactor"])
	assert.Equal(t, equalizer.Int(2), byName["WTA_K"])
}

func TestORBSetRoundTrip(t *testing.T) {
	orb := NewORB()
	require.True(t, orb.Set("nFeatures", equalizer.Int(1000)))

	for _, p := range orb.Params() {
		if p.Name == "nFeatures" {
			assert.Equal(t, equalizer.Int(1000), p.Value)
			return
		}
	}
	t.Fatal("nFeatures not reported back")
}

func TestSetRejectsUnknownName(t *testing.T) {
	orb := NewORB()
	assert.False(t, orb.Set("warpFactor", equalizer.Int(9)))
}

func TestReadOnlyAdapterRejectsSet(t *testing.T) {
	brisk := NewBRISK()
	assert.Equal(t, []string{"octaves", "patternScale", "thresh"}, paramNames(brisk))
	assert.False(t, brisk.Set("thresh", equalizer.Int(40)))
}

func TestFASTIsFullySettable(t *testing.T) {
	fast := NewFAST()
	assert.True(t, fast.Set("threshold", equalizer.Int(25)))
	assert.True(t, fast.Set("nonmaxSuppression", equalizer.Bool(false)))
	assert.True(t, fast.Set("type", equalizer.Int(1)))
}

func TestBFMatcherNorms(t *testing.T) {
	cases := map[string]int{
		"BruteForce":            4,
		"BruteForce-L1":         2,
		"BruteForce-Hamming":    6,
		"BruteForce-Hamming(2)": 7,
	}
	for name, norm := range cases {
		m, ok := NewBFMatcher(name)
		require.True(t, ok, name)
		for _, p := range m.Params() {
			if p.Name == "normType" {
				assert.Equal(t, equalizer.Int(norm), p.Value, name)
			}
		}
	}

	_, ok := NewBFMatcher("in-house-raw")
	assert.False(t, ok)
}

func TestFactoryDispatch(t *testing.T) {
	f := NewFactory()

	for _, alg := range []string{
		"ORB", "BRISK", "KAZE", "AKAZE", "MSER",
		"AgastFeatureDetector", "FastFeatureDetector", "GFTTDetector",
		"SimpleBlobDetector",
	} {
		b, err := f.Create(equalizer.CategoryFeatureDetect, alg)
		require.NoError(t, err, alg)
		assert.NotEmpty(t, b.Params(), alg)
	}

	b, err := f.Create(equalizer.CategoryFeatureExtract, "ORB")
	require.NoError(t, err)
	assert.NotEmpty(t, b.Params())

	b, err = f.Create(equalizer.CategoryFeatureMatch, "BruteForce-Hamming")
	require.NoError(t, err)
	assert.NotEmpty(t, b.Params())
}

func TestFactoryRejectsValueOnlyCategories(t *testing.T) {
	f := NewFactory()
	_, err := f.Create(equalizer.CategoryFind, "hybrid")
	assert.Error(t, err)
	_, err = f.Create(equalizer.CategoryTemplateMatch, "ccoeff_normed")
	assert.Error(t, err)
}

func TestFactoryRejectsUnknownAlgorithm(t *testing.T) {
	f := NewFactory()
	_, err := f.Create(equalizer.CategoryFeatureDetect, "SURF")
	assert.Error(t, err)
	_, err = f.Create(equalizer.CategoryFeatureDetect, "oldSURF")
	assert.Error(t, err)
}
