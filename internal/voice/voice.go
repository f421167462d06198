// Package voice implements the Timbre voice registry: a concurrency-safe,
// in-memory catalogue that unifies two sources of voice metadata for a
// text-to-speech server.
//
// Predefined voices are fixed at construction time and map a voice name to an
// opaque descriptor. File voices are discovered by scanning a flat directory
// for .wav files; a sibling .txt file with the same base name supplies an
// optional reference transcript. The registry never opens or validates audio
// content; file existence and extension are the discovery criteria.
//
// The file-voice list is replaced wholesale by [Registry.Refresh] and is the
// only mutable state; all scan I/O happens outside the lock so readers only
// ever wait on an O(1) slice swap.
package voice

// Source identifies where a voice's metadata came from.
type Source string

const (
	// SourcePredefined marks a voice supplied in the registry's constructor.
	SourcePredefined Source = "predefined"

	// SourceFile marks a voice discovered by scanning the voices directory.
	SourceFile Source = "file"
)

// IsValid reports whether s is a recognised voice source.
func (s Source) IsValid() bool {
	return s == SourcePredefined || s == SourceFile
}

// VoiceInfo describes one voice known to the registry. It is a plain value:
// callers may copy and retain it freely.
type VoiceInfo struct {
	// Name identifies the voice. Unique within its source category but not
	// necessarily across categories.
	Name string

	// Source tells which catalogue the voice belongs to.
	Source Source

	// FilePath is the absolute path of the backing .wav file.
	// Empty for predefined voices.
	FilePath string

	// Transcript is the trimmed contents of the sibling .txt file, when one
	// exists and was readable. Nil means no transcript; a non-nil pointer to
	// an empty string means the transcript file trimmed to nothing.
	Transcript *string
}
