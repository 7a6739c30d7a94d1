package config

import "strings"

// AppVersion is the version of the tool.
var AppVersion string // Or get it from version.txt during build

// AppName is the name of the tool.
const AppName = "unframe"

// LogSubDir is the sub directory for the log files.
var LogSubDir = "." + strings.ToLower(AppName)

// LogExt is the extension for the log files.
var LogExt = ".log"

// OutputExt is the extension of every encoded output file.
const OutputExt = ".png"

// Default detection parameters.
const (
	DefaultThreshold      = 32   // per-channel difference sum that marks a border-to-content transition
	DefaultSearchFraction = 0.5  // fraction of min(width, height) scanned inward from each corner
	DefaultMinAreaRatio   = 0.01 // minimum quad area relative to image area
	DefaultSlack          = 2.0  // pixels a corner point may fall outside the image rectangle
)

// Default output sizing parameters.
const (
	DefaultAspectW   = 16.0
	DefaultAspectH   = 9.0
	DefaultMaxHeight = 1024
	DefaultMaxWidth  = 1024 * 16 / 9
)
