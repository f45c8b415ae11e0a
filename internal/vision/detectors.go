package vision

import (
	"gocv.io/x/gocv"

	"matchtuner/internal/equalizer"
)

// ORB adapts cv::ORB. All constructor parameters are adjustable; Build
// materializes a detector/extractor with the current values.
type ORB struct{ table }

// NewORB returns an ORB adapter seeded with OpenCV's constructor defaults.
func NewORB() *ORB {
	o := &ORB{newTable()}
	o.add("WTA_K", equalizer.Int(2), true)
	o.add("edgeThreshold", equalizer.Int(31), true)
	o.add("fastThreshold", equalizer.Int(20), true)
	o.add("firstLevel", equalizer.Int(0), true)
	o.add("nFeatures", equalizer.Int(500), true)
	o.add("nLevels", equalizer.Int(8), true)
	o.add("patchSize", equalizer.Int(31), true)
	o.add("scaleFactor", equalizer.Float(1.2), true)
	o.add("scoreType", equalizer.Int(0), true) // 0 = Harris, 1 = FAST
	return o
}

// Build creates the gocv detector from the current parameter values.
// The caller owns the returned object and must Close it.
func (o *ORB) Build() gocv.ORB {
	return gocv.NewORBWithParams(
		o.intVal("nFeatures"),
		float32(o.floatVal("scaleFactor")),
		o.intVal("nLevels"),
		o.intVal("edgeThreshold"),
		o.intVal("firstLevel"),
		o.intVal("WTA_K"),
		gocv.ORBScoreType(o.intVal("scoreType")),
		o.intVal("patchSize"),
		o.intVal("fastThreshold"),
	)
}

// FAST adapts cv::FastFeatureDetector.
type FAST struct{ table }

// NewFAST returns a FAST adapter seeded with OpenCV's defaults.
func NewFAST() *FAST {
	d := &FAST{newTable()}
	d.add("nonmaxSuppression", equalizer.Bool(true), true)
	d.add("threshold", equalizer.Int(10), true)
	d.add("type", equalizer.Int(2), true) // 2 = TYPE_9_16
	return d
}

// Build creates the gocv detector from the current parameter values.
func (d *FAST) Build() gocv.FastFeatureDetector {
	return gocv.NewFastFeatureDetectorWithParams(
		d.intVal("threshold"),
		d.boolVal("nonmaxSuppression"),
		gocv.FastFeatureDetectorType(d.intVal("type")),
	)
}

// BRISK adapts cv::BRISK. gocv exposes only the default constructor, so the
// parameters are readable for discovery but not settable.
type BRISK struct{ table }

func NewBRISK() *BRISK {
	d := &BRISK{newTable()}
	d.add("octaves", equalizer.Int(3), false)
	d.add("patternScale", equalizer.Float(1.0), false)
	d.add("thresh", equalizer.Int(30), false)
	return d
}

func (d *BRISK) Build() gocv.BRISK { return gocv.NewBRISK() }

// KAZE adapts cv::KAZE; read-only for the same reason as BRISK.
type KAZE struct{ table }

func NewKAZE() *KAZE {
	d := &KAZE{newTable()}
	d.add("diffusivity", equalizer.Int(1), false)
	d.add("extended", equalizer.Bool(false), false)
	d.add("nOctaveLayers", equalizer.Int(4), false)
	d.add("nOctaves", equalizer.Int(4), false)
	d.add("threshold", equalizer.Float(0.001), false)
	d.add("upright", equalizer.Bool(false), false)
	return d
}

func (d *KAZE) Build() gocv.KAZE { return gocv.NewKAZE() }

// AKAZE adapts cv::AKAZE; read-only for the same reason as BRISK.
type AKAZE struct{ table }

func NewAKAZE() *AKAZE {
	d := &AKAZE{newTable()}
	d.add("descriptorChannels", equalizer.Int(3), false)
	d.add("descriptorSize", equalizer.Int(0), false)
	d.add("descriptorType", equalizer.Int(5), false) // 5 = MLDB
	d.add("diffusivity", equalizer.Int(1), false)
	d.add("nOctaveLayers", equalizer.Int(4), false)
	d.add("nOctaves", equalizer.Int(4), false)
	d.add("threshold", equalizer.Float(0.001), false)
	return d
}

func (d *AKAZE) Build() gocv.AKAZE { return gocv.NewAKAZE() }

// MSER adapts cv::MSER; read-only.
type MSER struct{ table }

func NewMSER() *MSER {
	d := &MSER{newTable()}
	d.add("delta", equalizer.Int(5), false)
	d.add("maxArea", equalizer.Int(14400), false)
	d.add("minArea", equalizer.Int(60), false)
	return d
}

func (d *MSER) Build() gocv.MSER { return gocv.NewMSER() }

// Agast adapts cv::AgastFeatureDetector; read-only.
type Agast struct{ table }

func NewAgast() *Agast {
	d := &Agast{newTable()}
	d.add("nonmaxSuppression", equalizer.Bool(true), false)
	d.add("threshold", equalizer.Int(10), false)
	d.add("type", equalizer.Int(3), false) // 3 = OAST_9_16
	return d
}

func (d *Agast) Build() gocv.AgastFeatureDetector {
	return gocv.NewAgastFeatureDetector()
}

// GFTT adapts cv::GFTTDetector; read-only.
type GFTT struct{ table }

func NewGFTT() *GFTT {
	d := &GFTT{newTable()}
	d.add("blockSize", equalizer.Int(3), false)
	d.add("harrisDetector", equalizer.Bool(false), false)
	d.add("k", equalizer.Float(0.04), false)
	d.add("maxFeatures", equalizer.Int(1000), false)
	d.add("minDistance", equalizer.Float(1.0), false)
	d.add("qualityLevel", equalizer.Float(0.01), false)
	return d
}

func (d *GFTT) Build() gocv.GFTTDetector { return gocv.NewGFTTDetector() }

// SimpleBlob adapts cv::SimpleBlobDetector; read-only.
type SimpleBlob struct{ table }

func NewSimpleBlob() *SimpleBlob {
	d := &SimpleBlob{newTable()}
	d.add("filterByArea", equalizer.Bool(true), false)
	d.add("filterByCircularity", equalizer.Bool(false), false)
	d.add("filterByColor", equalizer.Bool(true), false)
	d.add("filterByConvexity", equalizer.Bool(true), false)
	d.add("filterByInertia", equalizer.Bool(true), false)
	d.add("maxThreshold", equalizer.Float(220.0), false)
	d.add("minArea", equalizer.Float(25.0), false)
	d.add("minDistBetweenBlobs", equalizer.Float(10.0), false)
	d.add("minThreshold", equalizer.Float(50.0), false)
	d.add("thresholdStep", equalizer.Float(10.0), false)
	return d
}

func (d *SimpleBlob) Build() gocv.SimpleBlobDetector {
	return gocv.NewSimpleBlobDetector()
}
