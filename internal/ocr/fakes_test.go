package ocr

import (
	"bytes"
	"context"
	"errors"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// fakeEngine completes asynchronously with whatever recognize returns.
type fakeEngine struct {
	recognize func(req RecognitionRequest) ([]string, error)
	startErr  error
	delay     func(req RecognitionRequest) time.Duration
	twice     bool
	finished  chan struct{} // closed after the last completion when set

	calls atomic.Int32
	mu    sync.Mutex
	reqs  []RecognitionRequest
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Recognize(_ context.Context, req RecognitionRequest, done Completion) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.calls.Add(1)
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	f.mu.Unlock()

	go func() {
		if f.delay != nil {
			time.Sleep(f.delay(req))
		}
		var lines []string
		var err error
		if f.recognize != nil {
			lines, err = f.recognize(req)
		}
		done(lines, err)
		if f.twice {
			done([]string{"late"}, nil)
		}
		if f.finished != nil {
			close(f.finished)
		}
	}()
	return nil
}

// pageImage encodes a 1-based page number in the image width.
func pageImage(n int) image.Image {
	return image.NewGray(image.Rect(0, 0, n, 1))
}

func pageOf(req RecognitionRequest) int {
	return req.Image.Bounds().Dx()
}

type fakePage struct {
	embedded  string
	img       image.Image
	renderErr error
	scale     float64
}

func (p *fakePage) EmbeddedText() string { return p.embedded }

func (p *fakePage) Render(_ context.Context, scale float64) (image.Image, error) {
	p.scale = scale
	if p.renderErr != nil {
		return nil, p.renderErr
	}
	return p.img, nil
}

type fakeDocument struct {
	pages   []*fakePage
	pageErr map[int]error
	closed  bool
}

func (d *fakeDocument) PageCount() int { return len(d.pages) }

func (d *fakeDocument) Page(i int) (Page, error) {
	if err := d.pageErr[i]; err != nil {
		return nil, err
	}
	return d.pages[i], nil
}

func (d *fakeDocument) Close() error {
	d.closed = true
	return nil
}

type fakeOpener struct {
	doc     *fakeDocument
	openErr error
}

func (o *fakeOpener) Open(context.Context, string) (Document, error) {
	if o.openErr != nil {
		return nil, o.openErr
	}
	return o.doc, nil
}

type fakeDecoder struct {
	img image.Image
	err error
}

func (d fakeDecoder) Decode(context.Context, string) (image.Image, error) {
	return d.img, d.err
}

// scannedDoc builds n pages without embedded text, each rendering pageImage(i+1).
func scannedDoc(n int) *fakeDocument {
	doc := &fakeDocument{}
	for i := 0; i < n; i++ {
		doc.pages = append(doc.pages, &fakePage{img: pageImage(i + 1)})
	}
	return doc
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), &buf
}

// fakeRunner records commands and delegates to run.
type fakeRunner struct {
	run  func(name string, args []string) ([]byte, []byte, error)
	cmds [][]string
}

func (r *fakeRunner) Run(_ context.Context, name string, _ *slog.Logger, args ...string) ([]byte, []byte, error) {
	r.cmds = append(r.cmds, append([]string{name}, args...))
	if r.run == nil {
		return nil, nil, errors.New("no command expected")
	}
	return r.run(name, args)
}
