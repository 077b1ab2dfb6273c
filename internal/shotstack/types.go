// Package shotstack provides an HTTP client for the Shotstack video render API.
package shotstack

// Status represents the status of a Shotstack render.
type Status string

// Shotstack render statuses aligned with the Shotstack API.
const (
	StatusQueued    Status = "queued"
	StatusFetching  Status = "fetching"
	StatusRendering Status = "rendering"
	StatusSaving    Status = "saving"
	StatusDone      Status = "done"
	StatusFailed    Status = "failed"
)

// IsTerminal returns true if the status is a terminal state.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusDone, StatusFailed:
		return true
	default:
		return false
	}
}

// Edit is the top-level render request body.
type Edit struct {
	Timeline Timeline `json:"timeline"`
	Output   Output   `json:"output"`
}

// Timeline holds the ordered set of tracks to render.
type Timeline struct {
	Background string  `json:"background,omitempty"`
	Tracks     []Track `json:"tracks"`
}

// Track is a layer of clips. Track order determines stacking.
type Track struct {
	Clips []Clip `json:"clips"`
}

// Clip places an asset on the timeline. Length accepts a number of
// seconds or one of the provider sentinels "auto" and "end".
type Clip struct {
	Alias  string  `json:"alias,omitempty"`
	Asset  Asset   `json:"asset"`
	Start  float64 `json:"start"`
	Length any     `json:"length"`
	Volume float64 `json:"volume,omitempty"`
}

// Asset is a polymorphic clip payload discriminated by Type.
// Unused fields must stay empty so they are omitted from the wire;
// the provider rejects null placeholders.
type Asset struct {
	Type     string `json:"type"`
	Color    string `json:"color,omitempty"`    // type=color, type=title text color
	Src      string `json:"src,omitempty"`      // type=audio
	Text     string `json:"text,omitempty"`     // type=title
	Style    string `json:"style,omitempty"`    // type=title
	Size     string `json:"size,omitempty"`     // type=title
	Position string `json:"position,omitempty"` // type=title
}

// Output selects the container format and frame size.
type Output struct {
	Format string `json:"format"`
	FPS    int    `json:"fps,omitempty"`
	Size   Size   `json:"size"`
}

// Size is the output frame size in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// renderResponse represents the response from Shotstack's POST /render endpoint.
type renderResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Response struct {
		ID      string `json:"id"`
		Message string `json:"message,omitempty"`
	} `json:"response"`
}

// statusResponse represents the response from Shotstack's GET /render/{id} endpoint.
type statusResponse struct {
	Success  bool `json:"success"`
	Response struct {
		ID       string `json:"id"`
		Status   string `json:"status"`
		Progress int    `json:"progress,omitempty"`
		URL      string `json:"url,omitempty"`
		Error    string `json:"error,omitempty"`
		Created  string `json:"created,omitempty"`
		Updated  string `json:"updated,omitempty"`
	} `json:"response"`
}

// PollResult contains the result of polling a render's status.
type PollResult struct {
	Status   Status
	Progress int    // Provider-reported percent, 0 when absent
	URL      string // Artifact URL (only set when Status is StatusDone)
	Error    string // Error message (only set when Status is StatusFailed)
}
