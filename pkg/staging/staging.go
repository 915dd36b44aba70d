// Package staging manages locally-selected image files for one create/edit
// session: staging with previews, removal, and upload-and-URL-substitution
// at submit time. Staged files never cross the gateway boundary; only the
// hosted URLs they resolve to do.
package staging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// MaxImages caps how many images one entity can stage.
const MaxImages = 5

// ErrCapacity rejects a Stage call that would exceed MaxImages. The staged
// set is untouched; nothing is partially applied.
var ErrCapacity = fmt.Errorf("staging: at most %d images may be staged", MaxImages)

// Uploader resolves one staged file to a hosted URL.
type Uploader interface {
	Upload(ctx context.Context, name string, r io.Reader) (string, error)
}

// StagedImage is one locally-selected file held open for upload, plus its
// derived preview.
type StagedImage struct {
	Path    string
	Name    string
	Size    int64
	Preview Preview

	file *os.File
}

// Pipeline owns the staged set for the duration of one editor session.
type Pipeline struct {
	uploader Uploader
	staged   []*StagedImage
}

func New(uploader Uploader) *Pipeline {
	return &Pipeline{uploader: uploader}
}

// Stage opens and appends the given files in order. The capacity check runs
// before anything is opened: a batch that would overflow is rejected in full.
// An unreadable file likewise rejects the whole batch.
func (p *Pipeline) Stage(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	if len(p.staged)+len(paths) > MaxImages {
		return ErrCapacity
	}

	batch := make([]*StagedImage, 0, len(paths))
	for _, path := range paths {
		img, err := stageFile(path)
		if err != nil {
			for _, opened := range batch {
				opened.release()
			}
			return err
		}
		batch = append(batch, img)
	}
	p.staged = append(p.staged, batch...)
	return nil
}

func stageFile(path string) (*StagedImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("staging: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("staging: %w", err)
	}
	preview := computePreview(f)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("staging: rewind %s: %w", path, err)
	}
	return &StagedImage{
		Path:    path,
		Name:    filepath.Base(path),
		Size:    info.Size(),
		Preview: preview,
		file:    f,
	}, nil
}

// Staged returns the current staged set in staging order.
func (p *Pipeline) Staged() []*StagedImage {
	out := make([]*StagedImage, len(p.staged))
	copy(out, p.staged)
	return out
}

func (p *Pipeline) Len() int {
	return len(p.staged)
}

// Names lists the staged file names in order, for display and for keeping a
// form's images field in sync with the pipeline.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.staged))
	for i, img := range p.staged {
		names[i] = img.Name
	}
	return names
}

// Unstage removes exactly one staged entry by index and releases its file
// handle.
func (p *Pipeline) Unstage(i int) error {
	if i < 0 || i >= len(p.staged) {
		return errors.New("staging: index out of range")
	}
	p.staged[i].release()
	p.staged = append(p.staged[:i], p.staged[i+1:]...)
	return nil
}

// ResolveAll uploads every staged file concurrently and returns the hosted
// URLs in staging order, regardless of completion order. If any upload fails
// the whole call fails and every file stays staged so the operator can retry
// without re-selecting; partial image sets are never handed to the caller.
func (p *Pipeline) ResolveAll(ctx context.Context) ([]string, error) {
	if len(p.staged) == 0 {
		return nil, nil
	}
	if p.uploader == nil {
		return nil, errors.New("staging: no uploader configured")
	}

	urls := make([]string, len(p.staged))
	g, ctx := errgroup.WithContext(ctx)
	for i, img := range p.staged {
		g.Go(func() error {
			// Rewind so a retry after a failed submission re-reads
			// from the start.
			if _, err := img.file.Seek(0, io.SeekStart); err != nil {
				return fmt.Errorf("staging: rewind %s: %w", img.Name, err)
			}
			url, err := p.uploader.Upload(ctx, img.Name, img.file)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

// Discard releases every staged file. Called on submit success and when the
// editor session is abandoned.
func (p *Pipeline) Discard() {
	for _, img := range p.staged {
		img.release()
	}
	p.staged = nil
}

func (s *StagedImage) release() {
	if s.file != nil {
		s.file.Close()
		s.file = nil
	}
}
