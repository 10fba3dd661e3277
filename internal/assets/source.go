package assets

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"
)

// Status tags the outcome of one fetch attempt.
type Status int

const (
	// Miss means the source does not hold the candidate.
	Miss Status = iota
	// Found means Asset is populated.
	Found
	// TransportError means the source could not be asked; Err says why.
	TransportError
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case TransportError:
		return "transport_error"
	default:
		return "miss"
	}
}

// Asset is resolved media.
type Asset struct {
	Data        []byte
	ContentType string
}

// Result is the tagged outcome of Source.Fetch. Only Found stops the chain.
type Result struct {
	Status Status
	Asset  Asset
	Err    error
}

func missed() Result { return Result{Status: Miss} }

func failed(err error) Result { return Result{Status: TransportError, Err: err} }

func found(data []byte, ct string) Result {
	return Result{Status: Found, Asset: Asset{Data: data, ContentType: ct}}
}

// Source is one tier of the resolution chain.
type Source interface {
	Name() string
	Fetch(ctx context.Context, kind Kind, filename string) Result
}

// DirSource serves media from local directory trees, one per kind.
type DirSource struct {
	roots map[Kind]fs.FS
}

// NewDirSource roots images at imageDir and sounds at soundDir. An empty
// directory disables that kind.
func NewDirSource(imageDir, soundDir string) *DirSource {
	roots := make(map[Kind]fs.FS, 2)
	if imageDir != "" {
		roots[KindImage] = os.DirFS(imageDir)
	}
	if soundDir != "" {
		roots[KindSound] = os.DirFS(soundDir)
	}
	return &DirSource{roots: roots}
}

// NewFSSource builds a DirSource over arbitrary file systems.
func NewFSSource(images, sounds fs.FS) *DirSource {
	roots := make(map[Kind]fs.FS, 2)
	if images != nil {
		roots[KindImage] = images
	}
	if sounds != nil {
		roots[KindSound] = sounds
	}
	return &DirSource{roots: roots}
}

func (d *DirSource) Name() string { return "local" }

// Fetch reads filename directly under the kind's root. Names containing a
// separator or a dot-dot element are a Miss.
func (d *DirSource) Fetch(_ context.Context, kind Kind, filename string) Result {
	root, ok := d.roots[kind]
	if !ok || !fs.ValidPath(filename) || filename == "." || strings.Contains(filename, "/") {
		return missed()
	}
	b, err := fs.ReadFile(root, filename)
	if errors.Is(err, fs.ErrNotExist) {
		return missed()
	}
	if err != nil {
		return failed(err)
	}
	return found(b, ContentTypeFor(filename))
}
