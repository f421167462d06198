package voice

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/timbre-tts/timbre/internal/observe"
)

const (
	audioExt      = ".wav"
	transcriptExt = ".txt"
)

// transcriptReaders bounds the fan-out of concurrent transcript reads during
// a scan. Transcripts are small, so the limit exists to cap open file handles
// rather than bandwidth.
const transcriptReaders = 8

// scanVoices lists the voices directory and builds the complete file-voice
// set. The returned slice is ordered by filename regardless of filesystem
// enumeration order.
//
// listed is false when the directory is missing, is not a directory, or could
// not be read; the voice slice is empty in that case. scanVoices never fails:
// every filesystem problem degrades to an empty result or a nil transcript.
func scanVoices(ctx context.Context, dir string, log *slog.Logger, metrics *observe.Metrics) (voices []VoiceInfo, listed bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		// Missing and unreadable directories both mean "no file voices",
		// but an unreadable one is worth surfacing for operators.
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn("voices directory could not be listed", "dir", dir, "error", err)
		}
		return nil, false
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), audioExt) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	voices = make([]VoiceInfo, len(names))

	// Transcript reads are the only per-voice I/O; fan them out with a small
	// limit and assemble by index so ordering stays deterministic. Workers
	// absorb their own errors, so Wait never returns one.
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(transcriptReaders)
	for i, name := range names {
		g.Go(func() error {
			path := filepath.Join(dir, name)
			abs, err := filepath.Abs(path)
			if err != nil {
				abs = path
			}
			voices[i] = VoiceInfo{
				Name:       strings.TrimSuffix(name, filepath.Ext(name)),
				Source:     SourceFile,
				FilePath:   abs,
				Transcript: readTranscript(ctx, path, log, metrics),
			}
			return nil
		})
	}
	_ = g.Wait()

	return voices, true
}

// readTranscript loads the sibling .txt transcript for the audio file at
// wavPath. Returns nil when the transcript is absent, unreadable, or not
// valid UTF-8; only the latter two log a warning. One bad transcript never
// affects the rest of the scan.
func readTranscript(ctx context.Context, wavPath string, log *slog.Logger, metrics *observe.Metrics) *string {
	path := strings.TrimSuffix(wavPath, filepath.Ext(wavPath)) + transcriptExt
	name := strings.TrimSuffix(filepath.Base(wavPath), filepath.Ext(wavPath))

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		log.Warn("failed to read transcript", "path", path, "error", err)
		metrics.RecordTranscriptError(ctx, name)
		return nil
	}

	if !utf8.Valid(data) {
		log.Warn("transcript is not valid UTF-8", "path", path)
		metrics.RecordTranscriptError(ctx, name)
		return nil
	}

	text := strings.TrimSpace(string(data))
	return &text
}
