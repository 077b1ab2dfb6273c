// Package assets resolves logical asset references (voice ids, music track
// ids) to durable, fetchable URLs. Voices resolve through speech synthesis
// plus an upload round trip; music resolves against a fixed catalog.
package assets

// Voice describes a selectable narration voice.
type Voice struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Tags  []string `json:"tags"`
}

// voiceCatalog lists the supported narration voices.
var voiceCatalog = []Voice{
	{ID: "alloy", Label: "Alloy", Tags: []string{"American", "En", "Conversational"}},
	{ID: "ash", Label: "Ash", Tags: []string{"Middle aged", "En", "Male"}},
	{ID: "ballad", Label: "Ballad", Tags: []string{"Warm", "Narration", "En"}},
	{ID: "coral", Label: "Coral", Tags: []string{"Friendly", "En", "Female"}},
	{ID: "echo", Label: "Echo", Tags: []string{"Crisp", "Clear", "En"}},
	{ID: "fable", Label: "Fable", Tags: []string{"Storytelling", "Soft", "En"}},
	{ID: "nova", Label: "Nova", Tags: []string{"Young", "En", "Conversational"}},
	{ID: "onyx", Label: "Onyx", Tags: []string{"Deep", "Male", "En"}},
	{ID: "sage", Label: "Sage", Tags: []string{"Calm", "Informative", "En"}},
	{ID: "shimmer", Label: "Shimmer", Tags: []string{"Bright", "Upbeat", "En"}},
}

// Voices returns the narration voice catalog.
func Voices() []Voice {
	out := make([]Voice, len(voiceCatalog))
	copy(out, voiceCatalog)
	return out
}

// VoiceByID looks up a voice by its identifier.
func VoiceByID(id string) (Voice, bool) {
	for _, v := range voiceCatalog {
		if v.ID == id {
			return v, true
		}
	}
	return Voice{}, false
}

// Track describes a selectable background music track.
type Track struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// musicCatalog lists the supported background tracks. IDs are the CDN
// file slugs.
var musicCatalog = []Track{
	{ID: "observer", Title: "Observer"},
	{ID: "upbeat-electronic-music-with-a-driving-beat-suitable-for-a-fast-paced-social-media-reel-music", Title: "Upbeat Electronic"},
	{ID: "a-future", Title: "A Future"},
	{ID: "paris-else", Title: "Paris - Else"},
	{ID: "cartoon", Title: "Cartoon"},
	{ID: "burlesque", Title: "Burlesque"},
	{ID: "snowfall", Title: "Snowfall"},
	{ID: "bladerunner-remix", Title: "Bladerunner Remix"},
	{ID: "izzamuzzic", Title: "Izzamuzzic"},
	{ID: "corny-candy", Title: "Corny Candy"},
}

// Tracks returns the background music catalog.
func Tracks() []Track {
	out := make([]Track, len(musicCatalog))
	copy(out, musicCatalog)
	return out
}

// TrackByID looks up a music track by its identifier.
func TrackByID(id string) (Track, bool) {
	for _, t := range musicCatalog {
		if t.ID == id {
			return t, true
		}
	}
	return Track{}, false
}
