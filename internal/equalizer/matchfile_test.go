package equalizer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveMatchFileFormat(t *testing.T) {
	eq := New(nil)
	require.NoError(t, eq.SetBackend(CategoryFind, "template"))

	base := filepath.Join(t.TempDir(), "needle")
	require.NoError(t, eq.SaveMatch(base))

	data, err := os.ReadFile(base + ".match")
	require.NoError(t, err)
	text := string(data)

	assert.True(t, strings.HasPrefix(text, "# IMAGE MATCH DATA\n"))
	assert.Contains(t, text, "[find]")
	assert.Contains(t, text, "backend")
	assert.Contains(t, text, "template")
	assert.Contains(t, text,
		"similarity = <value='0.9' min='0.0' max='1.0' delta='0.1' tolerance='0.1' fixed='True'>")
}

func TestSaveMatchOmitsUnselectedCategories(t *testing.T) {
	eq := New(nil)
	require.NoError(t, eq.SetBackend(CategoryFind, "autopy"))

	base := filepath.Join(t.TempDir(), "needle")
	require.NoError(t, eq.SaveMatch(base))

	data, err := os.ReadFile(base + ".match")
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "[find]")
	for _, c := range []Category{CategoryTemplateMatch, CategoryFeatureDetect, CategoryFeatureExtract, CategoryFeatureMatch} {
		assert.NotContains(t, text, "["+string(c)+"]")
	}
	assert.NotContains(t, text, "backend = \n")

	// the partial file loads back without touching the omitted categories
	loaded := New(nil)
	require.NoError(t, loaded.LoadMatch(base))
	name, _ := loaded.Backend(CategoryFind)
	assert.Equal(t, "autopy", name)
	name, _ = loaded.Backend(CategoryTemplateMatch)
	assert.Equal(t, "", name)
}

func TestSaveMatchAllCategoriesWhenConfigured(t *testing.T) {
	eq, err := NewDefault(nil, "hybrid")
	require.NoError(t, err)

	base := filepath.Join(t.TempDir(), "needle")
	require.NoError(t, eq.SaveMatch(base))

	data, err := os.ReadFile(base + ".match")
	require.NoError(t, err)
	for _, c := range Categories() {
		assert.Contains(t, string(data), "["+string(c)+"]")
	}
}

func TestMatchFileRoundTrip(t *testing.T) {
	eq := New(nil)
	require.NoError(t, eq.Configure(Selection{
		Find:           "hybrid",
		TemplateMatch:  "sqdiff",
		FeatureDetect:  "oldSURF",
		FeatureExtract: "BRISK",
		FeatureMatch:   "in-house-region",
	}))
	ps, _ := eq.Params(CategoryFind)
	sim, _ := ps.Get("similarity")
	sim.Value = Float(0.75)
	sim.Fixed = false
	nocolor, _ := ps.Get("nocolor")
	nocolor.Value = Bool(true)

	base := filepath.Join(t.TempDir(), "needle")
	require.NoError(t, eq.SaveMatch(base))

	loaded := New(nil)
	require.NoError(t, loaded.LoadMatch(base))

	for _, c := range Categories() {
		want, _ := eq.Backend(c)
		got, err := loaded.Backend(c)
		require.NoError(t, err)
		assert.Equal(t, want, got, "backend for %s", c)
	}

	ps, _ = loaded.Params(CategoryFind)
	assert.Equal(t,
		[]string{"similarity", "ransacReprojThreshold", "nocolor", "front_similarity"},
		ps.Names())
	sim, _ = ps.Get("similarity")
	assert.Equal(t, Float(0.75), sim.Value)
	assert.False(t, sim.Fixed)
	nocolor, _ = ps.Get("nocolor")
	assert.Equal(t, Bool(true), nocolor.Value)

	ps, _ = loaded.Params(CategoryFeatureDetect)
	surf, ok := ps.Get("oldSURFdetect")
	require.True(t, ok)
	assert.Equal(t, Int(85), surf.Value)

	ps, _ = loaded.Params(CategoryFeatureMatch)
	ratio, ok := ps.Get("variants_ratio")
	require.True(t, ok)
	assert.Equal(t, Float(0.33), ratio.Value)
}

func TestLoadMatchMissingFile(t *testing.T) {
	eq := New(nil)
	err := eq.LoadMatch(filepath.Join(t.TempDir(), "absent"))
	assert.ErrorIs(t, err, ErrNoMatchFile)
}

func TestLoadMatchSwitchesBackend(t *testing.T) {
	saver := New(nil)
	require.NoError(t, saver.SetBackend(CategoryFind, "feature"))
	base := filepath.Join(t.TempDir(), "needle")
	require.NoError(t, saver.SaveMatch(base))

	loader := New(nil)
	require.NoError(t, loader.SetBackend(CategoryFind, "template"))
	require.NoError(t, loader.LoadMatch(base))

	name, _ := loader.Backend(CategoryFind)
	assert.Equal(t, "feature", name)
	ps, _ := loader.Params(CategoryFind)
	_, hasProj := ps.Get("ransacReprojThreshold")
	assert.True(t, hasProj)
	_, hasNocolor := ps.Get("nocolor")
	assert.False(t, hasNocolor)
}

func TestLoadMatchIgnoresUnknownSections(t *testing.T) {
	base := filepath.Join(t.TempDir(), "needle")
	content := "# IMAGE MATCH DATA\n" +
		"[find]\n" +
		"backend = autopy\n" +
		"similarity = <value='0.6' min='0.0' max='1.0' delta='0.1' tolerance='0.1' fixed='True'>\n" +
		"[mystery]\n" +
		"backend = whatever\n"
	require.NoError(t, os.WriteFile(base+".match", []byte(content), 0o644))

	eq := New(nil)
	require.NoError(t, eq.LoadMatch(base))
	name, _ := eq.Backend(CategoryFind)
	assert.Equal(t, "autopy", name)
	ps, _ := eq.Params(CategoryFind)
	sim, _ := ps.Get("similarity")
	assert.Equal(t, Float(0.6), sim.Value)
}

func TestLoadMatchAcceptsExtraKeys(t *testing.T) {
	base := filepath.Join(t.TempDir(), "needle")
	content := "# IMAGE MATCH DATA\n" +
		"[find]\n" +
		"backend = autopy\n" +
		"extra = <value='7' min='None' max='None' delta='1' tolerance='0.9' fixed='True'>\n"
	require.NoError(t, os.WriteFile(base+".match", []byte(content), 0o644))

	eq := New(nil)
	require.NoError(t, eq.LoadMatch(base))
	ps, _ := eq.Params(CategoryFind)
	extra, ok := ps.Get("extra")
	require.True(t, ok)
	assert.Equal(t, Int(7), extra.Value)
}

func TestLoadMatchMissingBackendKey(t *testing.T) {
	base := filepath.Join(t.TempDir(), "needle")
	content := "# IMAGE MATCH DATA\n" +
		"[find]\n" +
		"similarity = <value='0.6' min='0.0' max='1.0' delta='0.1' tolerance='0.1' fixed='True'>\n"
	require.NoError(t, os.WriteFile(base+".match", []byte(content), 0o644))

	eq := New(nil)
	assert.Error(t, eq.LoadMatch(base))
}

func TestLoadMatchRejectsMalformedParameter(t *testing.T) {
	base := filepath.Join(t.TempDir(), "needle")
	content := "# IMAGE MATCH DATA\n" +
		"[find]\n" +
		"backend = autopy\n" +
		"similarity = not-an-encoded-parameter\n"
	require.NoError(t, os.WriteFile(base+".match", []byte(content), 0o644))

	eq := New(nil)
	err := eq.LoadMatch(base)
	assert.ErrorIs(t, err, ErrMalformedParameter)
}
