// Package composition builds Shotstack render payloads from user selections.
// Everything in this package is a pure function of its inputs: the mapping
// tables (aspect ratio, caption style, preset) each carry a single documented
// default fallback so unrecognized values never reach the provider verbatim.
package composition

import (
	"math"
	"strings"

	"github.com/reelforge/reelforge-api/internal/shotstack"
)

// Alignment values for caption placement.
const (
	AlignTop    = "top"
	AlignMiddle = "middle"
	AlignBottom = "bottom"
)

// Captions holds the user's caption configuration.
type Captions struct {
	// Disabled suppresses the caption track entirely.
	Disabled bool
	// Style is the internal caption style identifier.
	Style string
	// Alignment is one of top, middle, bottom.
	Alignment string
}

// Request is the provider-agnostic composition input.
type Request struct {
	// Script is the narration text. Callers validate non-emptiness.
	Script string
	// AspectRatio is the frame ratio selection, e.g. "9:16".
	AspectRatio string
	// Captions configures the caption track.
	Captions Captions
	// Preset is the optional art preset identifier.
	Preset string
}

// wordsPerSecond is the speaking-rate assumption (~150 words/minute)
// used to estimate narration length.
const wordsPerSecond = 2.5

// defaultClipLength is the clip length in seconds used when the script
// yields no usable estimate.
const defaultClipLength = 10

// backgroundColor fills the frame behind all tracks.
const backgroundColor = "#000000"

// musicVolume keeps background music under the narration.
const musicVolume = 0.3

// aspectDimensions is the fixed aspect-ratio lookup table.
var aspectDimensions = map[string]shotstack.Size{
	"1:1":  {Width: 1080, Height: 1080},
	"16:9": {Width: 1920, Height: 1080},
	"9:16": {Width: 1080, Height: 1920},
	"4:3":  {Width: 1440, Height: 1080},
	"3:4":  {Width: 1080, Height: 1440},
}

// defaultDimensions is the documented fallback for unknown ratios: square.
var defaultDimensions = shotstack.Size{Width: 1080, Height: 1080}

// Dimensions maps an aspect ratio to concrete pixel dimensions.
// Unknown ratios fall back to the square default rather than erroring.
func Dimensions(aspectRatio string) shotstack.Size {
	if size, ok := aspectDimensions[aspectRatio]; ok {
		return size
	}
	return defaultDimensions
}

// captionStyles is the allow-list mapping internal caption style ids to
// the provider's accepted title style vocabulary. Unmapped ids fall back
// to DefaultCaptionStyle instead of being forwarded verbatim, which the
// provider would reject.
var captionStyles = map[string]string{
	"basic":      "minimal",
	"revid":      "subtitle",
	"hormozi":    "blockbuster",
	"ali":        "vogue",
	"faceless":   "future",
	"elegant":    "chaplin",
	"movie":      "chaplin",
	"playful":    "sketchy",
	"bold-punch": "blockbuster",
	"outline":    "marker",
}

// DefaultCaptionStyle is the documented fallback caption style.
const DefaultCaptionStyle = "minimal"

// CaptionStyle maps an internal caption style id to the provider vocabulary.
func CaptionStyle(id string) string {
	if style, ok := captionStyles[strings.ToLower(id)]; ok {
		return style
	}
	return DefaultCaptionStyle
}

// DefaultPreset is the documented fallback preset.
const DefaultPreset = "default"

// presets normalizes known art preset names to canonical identifiers.
var presets = map[string]string{
	"default":      "default",
	"ghibli":       "ghibli",
	"educational":  "educational",
	"pixar":        "pixar",
	"anime":        "anime",
	"realist":      "realism",
	"realism":      "realism",
	"movie":        "movie",
	"pixel-art":    "pixel-art",
	"manga":        "manga",
	"illustration": "illustration",
}

// Preset normalizes an art preset id, falling back to DefaultPreset.
func Preset(id string) string {
	if p, ok := presets[strings.ToLower(id)]; ok {
		return p
	}
	return DefaultPreset
}

// EstimateDurationSec estimates the narration length in whole seconds
// from the script's word count at the fixed speaking-rate assumption.
// Returns defaultClipLength for an empty script.
func EstimateDurationSec(script string) int {
	words := len(strings.Fields(script))
	if words == 0 {
		return defaultClipLength
	}
	return int(math.Ceil(float64(words) / wordsPerSecond))
}

// captionPosition maps an alignment to the provider's position vocabulary.
func captionPosition(alignment string) string {
	switch alignment {
	case AlignBottom:
		return "bottom"
	case AlignTop:
		return "top"
	default:
		return "center"
	}
}

// Build assembles the provider render payload from the composed request and
// the resolved asset URLs. musicURL may be empty, in which case no music
// track is emitted; the same goes for the caption track when captions are
// disabled. Absent tracks are omitted entirely rather than sent as empty
// placeholders.
//
// Clip timing prefers the provider's "auto" and "end" length sentinels;
// only the background color clip needs an explicit length, taken from the
// estimated narration duration.
func Build(req Request, speechURL, musicURL string) shotstack.Edit {
	dims := Dimensions(req.AspectRatio)
	duration := EstimateDurationSec(req.Script)

	var tracks []shotstack.Track

	// Caption track sits on top of the stack.
	if !req.Captions.Disabled {
		tracks = append(tracks, shotstack.Track{
			Clips: []shotstack.Clip{{
				Asset: shotstack.Asset{
					Type:     "title",
					Text:     req.Script,
					Style:    CaptionStyle(req.Captions.Style),
					Color:    "#FFFFFF",
					Size:     "large",
					Position: captionPosition(req.Captions.Alignment),
				},
				Start:  0,
				Length: "end",
			}},
		})
	}

	// Narration track.
	tracks = append(tracks, shotstack.Track{
		Clips: []shotstack.Clip{{
			Alias: "voiceover",
			Asset: shotstack.Asset{
				Type: "audio",
				Src:  speechURL,
			},
			Start:  0,
			Length: "auto",
		}},
	})

	// Music track, only when a track was selected.
	if musicURL != "" {
		tracks = append(tracks, shotstack.Track{
			Clips: []shotstack.Clip{{
				Asset: shotstack.Asset{
					Type: "audio",
					Src:  musicURL,
				},
				Start:  0,
				Length: "end",
				Volume: musicVolume,
			}},
		})
	}

	// Background color track sits at the bottom of the stack.
	tracks = append(tracks, shotstack.Track{
		Clips: []shotstack.Clip{{
			Asset: shotstack.Asset{
				Type:  "color",
				Color: backgroundColor,
			},
			Start:  0,
			Length: float64(duration),
		}},
	})

	return shotstack.Edit{
		Timeline: shotstack.Timeline{
			Background: backgroundColor,
			Tracks:     tracks,
		},
		Output: shotstack.Output{
			Format: "mp4",
			FPS:    30,
			Size:   dims,
		},
	}
}
