// Package assets resolves per-puzzle media (answer images and sounds) through
// an ordered chain of sources with memoized positive and negative results.
package assets

import (
	"errors"
	"path"
	"regexp"
	"strings"
)

// Kind distinguishes the two media families.
type Kind string

const (
	KindImage Kind = "image"
	KindSound Kind = "sound"
)

// ImageExtensions are probed in order for answer images.
var ImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

// ErrInvalidName is returned for a sound filename outside the safe pattern.
var ErrInvalidName = errors.New("invalid asset name")

var soundNameRE = regexp.MustCompile(`^[A-Za-z0-9_-]+\.(mp3|wav|ogg|m4a)$`)

var contentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".m4a":  "audio/mp4",
}

// Key identifies one logical asset.
type Key struct {
	Kind Kind
	Name string // puzzle id for images, filename for sounds
}

// ImageKey is the answer image for a puzzle id.
func ImageKey(puzzleID string) Key {
	return Key{Kind: KindImage, Name: puzzleID}
}

// SoundKey validates filename and returns its key.
func SoundKey(filename string) (Key, error) {
	if !ValidSoundName(filename) {
		return Key{}, ErrInvalidName
	}
	return Key{Kind: KindSound, Name: filename}, nil
}

// ValidSoundName reports whether filename is a plain, safe sound filename.
func ValidSoundName(filename string) bool {
	return soundNameRE.MatchString(filename)
}

func (k Key) String() string { return string(k.Kind) + ":" + k.Name }

// Candidates lists the filenames to probe for k, in order.
func (k Key) Candidates() []string {
	if k.Kind == KindSound {
		return []string{k.Name}
	}
	out := make([]string, 0, len(ImageExtensions))
	for _, ext := range ImageExtensions {
		out = append(out, k.Name+ext)
	}
	return out
}

// ContentTypeFor guesses a media type from a filename's extension.
func ContentTypeFor(filename string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}
