// Package settings holds process-wide operational defaults used when no
// specific configuration is set: input timing, image logging, and the
// default backend per matching category.
package settings

import (
	"fmt"

	"github.com/rs/zerolog"

	"matchtuner/internal/control"
)

var (
	clickDelay        = 0.1
	dragDelay         = 0.5
	dropDelay         = 0.5
	keysDelay         = 0.2
	typeDelay         = 0.1
	rescanSpeedOnFind = 0.2

	screenAutoconnect      = true
	preprocessSpecialChars = true
	saveNeedleOnError      = true

	imageLoggingLevel       = zerolog.ErrorLevel
	imageLoggingDestination = "./imglog"
	imageLoggingStepWidth   = 3
	imageQuality            = 3

	desktopControlBackend = "autopy"

	// matching backends are validated by the equalizer on selection,
	// not here
	findBackend           = "hybrid"
	templateMatchBackend  = "ccoeff_normed"
	featureDetectBackend  = "ORB"
	featureExtractBackend = "ORB"
	featureMatchBackend   = "BruteForce-Hamming"
)

// ClickDelay is the time in seconds between the two clicks of a double click.
func ClickDelay() float64 { return clickDelay }
func SetClickDelay(v float64) { clickDelay = v }

// DragDelay is the timeout before a drag operation.
func DragDelay() float64 { return dragDelay }
func SetDragDelay(v float64) { dragDelay = v }

// DropDelay is the timeout before a drop operation.
func DropDelay() float64 { return dropDelay }
func SetDropDelay(v float64) { dropDelay = v }

// KeysDelay is the timeout before a key press operation.
func KeysDelay() float64 { return keysDelay }
func SetKeysDelay(v float64) { keysDelay = v }

// TypeDelay is the time between two consecutively typed keys.
func TypeDelay() float64 { return typeDelay }
func SetTypeDelay(v float64) { typeDelay = v }

// RescanSpeedOnFind is the pause between two matching attempts, used to
// reduce CPU overhead while waiting for a target to appear.
func RescanSpeedOnFind() float64 { return rescanSpeedOnFind }
func SetRescanSpeedOnFind(v float64) { rescanSpeedOnFind = v }

// ScreenAutoconnect reports whether the desktop control backend connects
// its screen during initialization.
func ScreenAutoconnect() bool { return screenAutoconnect }
func SetScreenAutoconnect(v bool) { screenAutoconnect = v }

// PreprocessSpecialChars reports whether capital and special characters are
// preprocessed before being handed to the control backend.
func PreprocessSpecialChars() bool { return preprocessSpecialChars }
func SetPreprocessSpecialChars(v bool) { preprocessSpecialChars = v }

// SaveNeedleOnError reports whether the needle image is dumped on a
// matching error.
func SaveNeedleOnError() bool { return saveNeedleOnError }
func SetSaveNeedleOnError(v bool) { saveNeedleOnError = v }

// ImageLoggingLevel is the level at which step images are logged.
func ImageLoggingLevel() zerolog.Level { return imageLoggingLevel }
func SetImageLoggingLevel(v zerolog.Level) { imageLoggingLevel = v }

// ImageLoggingDestination is the directory for image logging steps.
func ImageLoggingDestination() string { return imageLoggingDestination }
func SetImageLoggingDestination(v string) { imageLoggingDestination = v }

// ImageLoggingStepWidth is the number of digits used when enumerating the
// image logging steps, e.g. 3 for 001, 002.
func ImageLoggingStepWidth() int { return imageLoggingStepWidth }
func SetImageLoggingStepWidth(v int) { imageLoggingStepWidth = v }

// ImageQuality is the compression of image dumps, 0 (none) to 9 (maximum).
func ImageQuality() int { return imageQuality }
func SetImageQuality(v int) { imageQuality = v }

// DesktopControlBackend is the default backend for desktop control.
func DesktopControlBackend() string { return desktopControlBackend }

// SetDesktopControlBackend rejects names outside the control catalog.
func SetDesktopControlBackend(name string) error {
	for _, b := range control.Backends() {
		if b == name {
			desktopControlBackend = name
			return nil
		}
	}
	return fmt.Errorf("unsupported backend for desktop control: %q", name)
}

// FindBackend is the default find method.
func FindBackend() string { return findBackend }
func SetFindBackend(name string) { findBackend = name }

// TemplateMatchBackend is the default template matching algorithm.
func TemplateMatchBackend() string { return templateMatchBackend }
func SetTemplateMatchBackend(name string) { templateMatchBackend = name }

// FeatureDetectBackend is the default feature detection algorithm.
func FeatureDetectBackend() string { return featureDetectBackend }
func SetFeatureDetectBackend(name string) { featureDetectBackend = name }

// FeatureExtractBackend is the default feature extraction algorithm.
func FeatureExtractBackend() string { return featureExtractBackend }
func SetFeatureExtractBackend(name string) { featureExtractBackend = name }

// FeatureMatchBackend is the default feature matching algorithm.
func FeatureMatchBackend() string { return featureMatchBackend }
func SetFeatureMatchBackend(name string) { featureMatchBackend = name }
