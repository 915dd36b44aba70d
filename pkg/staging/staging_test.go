package staging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"
)

type fakeUploader struct {
	mu     sync.Mutex
	delays map[string]time.Duration
	fail   map[string]bool
	calls  []string
}

func (f *fakeUploader) Upload(_ context.Context, name string, r io.Reader) (string, error) {
	if d := f.delays[name]; d > 0 {
		time.Sleep(d)
	}
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
	if f.fail[name] {
		return "", errors.New("upload failed: " + name)
	}
	return "https://host/" + name, nil
}

func writeTemp(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("bytes of "+name), 0o644); err != nil {
		t.Fatalf("write temp: %v", err)
	}
	return path
}

func TestStageCapacityIsAtomic(t *testing.T) {
	p := New(&fakeUploader{})
	defer p.Discard()

	var four []string
	for i := 0; i < 4; i++ {
		four = append(four, writeTemp(t, fmt.Sprintf("img%d.png", i)))
	}
	if err := p.Stage(four...); err != nil {
		t.Fatalf("stage 4: %v", err)
	}

	three := []string{
		writeTemp(t, "x.png"),
		writeTemp(t, "y.png"),
		writeTemp(t, "z.png"),
	}
	if err := p.Stage(three...); !errors.Is(err, ErrCapacity) {
		t.Fatalf("err = %v, want ErrCapacity", err)
	}
	if p.Len() != 4 {
		t.Fatalf("staged = %d, want 4 (no partial application)", p.Len())
	}

	if err := p.Stage(three[0]); err != nil {
		t.Fatalf("stage fifth: %v", err)
	}
	if err := p.Stage(three[1]); !errors.Is(err, ErrCapacity) {
		t.Fatalf("sixth image accepted: %v", err)
	}
}

func TestStageMissingFileRejectsBatch(t *testing.T) {
	p := New(&fakeUploader{})
	defer p.Discard()

	good := writeTemp(t, "a.png")
	if err := p.Stage(good, filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatalf("expected error staging missing file")
	}
	if p.Len() != 0 {
		t.Fatalf("staged = %d, want 0", p.Len())
	}
}

func TestUnstage(t *testing.T) {
	p := New(&fakeUploader{})
	defer p.Discard()

	if err := p.Stage(writeTemp(t, "a.png"), writeTemp(t, "b.png"), writeTemp(t, "c.png")); err != nil {
		t.Fatalf("stage: %v", err)
	}
	if err := p.Unstage(1); err != nil {
		t.Fatalf("unstage: %v", err)
	}
	if got := p.Names(); !reflect.DeepEqual(got, []string{"a.png", "c.png"}) {
		t.Fatalf("names = %v", got)
	}
	if err := p.Unstage(5); err == nil {
		t.Fatalf("expected error for out of range index")
	}
}

func TestResolveAllPreservesStagingOrder(t *testing.T) {
	// b completes first; the result must still follow staging order.
	u := &fakeUploader{delays: map[string]time.Duration{
		"a.png": 30 * time.Millisecond,
		"c.png": 15 * time.Millisecond,
	}}
	p := New(u)
	defer p.Discard()

	if err := p.Stage(writeTemp(t, "a.png"), writeTemp(t, "b.png"), writeTemp(t, "c.png")); err != nil {
		t.Fatalf("stage: %v", err)
	}
	urls, err := p.ResolveAll(context.Background())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := []string{"https://host/a.png", "https://host/b.png", "https://host/c.png"}
	if !reflect.DeepEqual(urls, want) {
		t.Fatalf("urls = %v, want %v", urls, want)
	}
}

func TestResolveAllFailureKeepsEverythingStaged(t *testing.T) {
	u := &fakeUploader{fail: map[string]bool{"b.png": true}}
	p := New(u)
	defer p.Discard()

	if err := p.Stage(writeTemp(t, "a.png"), writeTemp(t, "b.png"), writeTemp(t, "c.png")); err != nil {
		t.Fatalf("stage: %v", err)
	}
	if _, err := p.ResolveAll(context.Background()); err == nil {
		t.Fatalf("expected resolve failure")
	}
	if p.Len() != 3 {
		t.Fatalf("staged = %d after failure, want 3", p.Len())
	}

	// retry without re-staging succeeds once the host recovers
	u.fail = nil
	urls, err := p.ResolveAll(context.Background())
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if len(urls) != 3 {
		t.Fatalf("urls = %v", urls)
	}
}

func TestResolveAllEmpty(t *testing.T) {
	p := New(&fakeUploader{})
	urls, err := p.ResolveAll(context.Background())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(urls) != 0 {
		t.Fatalf("urls = %v, want none", urls)
	}
}
