package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/joseph-ayodele/ocrtext/constants"
	"github.com/joseph-ayodele/ocrtext/internal/common"
	"github.com/joseph-ayodele/ocrtext/internal/ocr"
)

type fakeExtractor struct {
	imageText  string
	transcript ocr.Transcript
	err        error

	imageCalls, docCalls int
	gotLangs             []string
	gotMax               int
	gotRunID             string
}

func (f *fakeExtractor) ExtractImage(ctx context.Context, _ string, languages []string) (string, error) {
	f.imageCalls++
	f.gotLangs = languages
	f.gotRunID = common.RunIDFromContext(ctx)
	return f.imageText, f.err
}

func (f *fakeExtractor) ExtractDocument(ctx context.Context, _ string, languages []string, maxPages int) (ocr.Transcript, error) {
	f.docCalls++
	f.gotLangs = languages
	f.gotMax = maxPages
	f.gotRunID = common.RunIDFromContext(ctx)
	return f.transcript, f.err
}

func touch(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func mustRequest(t *testing.T, path string) Request {
	t.Helper()
	req, err := NewRequest(path, []string{"zh-Hans", "en-US"}, 20)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	return req
}

func TestRun_RoutesDocument(t *testing.T) {
	fx := &fakeExtractor{transcript: ocr.Transcript{Pages: []ocr.RecognizedPage{
		{Index: 1, Source: constants.PageSourceEmbedded, Text: "Hello"},
	}, TotalPages: 1, Limit: 1}}
	p := NewPipeline(fx, nil)

	res, err := p.Run(context.Background(), mustRequest(t, touch(t, "a.PDF")))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if fx.docCalls != 1 || fx.imageCalls != 0 {
		t.Fatalf("doc calls %d, image calls %d", fx.docCalls, fx.imageCalls)
	}
	if res.Kind != constants.DOCUMENT || res.Text != "--- Page 1 ---\nHello" {
		t.Fatalf("result = %+v", res)
	}
	if fx.gotMax != 20 {
		t.Fatalf("max pages = %d", fx.gotMax)
	}
	if res.RunID == "" || fx.gotRunID != res.RunID {
		t.Fatalf("run id %q not propagated (extractor saw %q)", res.RunID, fx.gotRunID)
	}
}

func TestRun_RoutesImage(t *testing.T) {
	fx := &fakeExtractor{imageText: "Total 12.00"}
	res, err := NewPipeline(fx, nil).Run(context.Background(), mustRequest(t, touch(t, "r.heic")))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if fx.imageCalls != 1 || fx.docCalls != 0 {
		t.Fatalf("doc calls %d, image calls %d", fx.docCalls, fx.imageCalls)
	}
	if res.Kind != constants.IMAGE || res.Text != "Total 12.00" {
		t.Fatalf("result = %+v", res)
	}
	if diff := cmp.Diff([]string{"zh-Hans", "en-US"}, fx.gotLangs); diff != "" {
		t.Fatalf("languages mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_ClassificationErrorsSkipExtraction(t *testing.T) {
	tests := []struct {
		name string
		path string
		want error
	}{
		{"unsupported", touch(t, "notes.docx"), common.ErrUnsupportedFormat},
		{"missing", filepath.Join(t.TempDir(), "gone.png"), common.ErrFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := &fakeExtractor{}
			_, err := NewPipeline(fx, nil).Run(context.Background(), mustRequest(t, tt.path))
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if fx.imageCalls+fx.docCalls != 0 {
				t.Fatalf("extractor invoked after classification failure")
			}
		})
	}
}

func TestRun_ExtractorErrorPropagates(t *testing.T) {
	decodeErr := common.NewAppError(common.CodeDecode, "Failed to load image: x", common.ErrDecode)
	fx := &fakeExtractor{err: decodeErr}
	_, err := NewPipeline(fx, nil).Run(context.Background(), mustRequest(t, touch(t, "x.png")))
	if !errors.Is(err, common.ErrDecode) {
		t.Fatalf("err = %v, want ErrDecode", err)
	}
}

func TestNewRequest(t *testing.T) {
	langs := []string{" ja ", "", "en-US"}
	req, err := NewRequest("/tmp/a.png", langs, 5)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if diff := cmp.Diff([]string{"ja", "en-US"}, req.Languages); diff != "" {
		t.Fatalf("languages mismatch (-want +got):\n%s", diff)
	}
	langs[2] = "fr"
	if req.Languages[1] != "en-US" {
		t.Fatalf("request aliases caller slice")
	}

	bad := []struct {
		name  string
		path  string
		langs []string
		max   int
	}{
		{"no path", "", []string{"en"}, 1},
		{"no languages", "/a.png", []string{" ", ""}, 1},
		{"zero pages", "/a.png", []string{"en"}, 0},
		{"negative pages", "/a.png", []string{"en"}, -3},
	}
	for _, b := range bad {
		_, err := NewRequest(b.path, b.langs, b.max)
		if !errors.Is(err, common.ErrInvalidArgument) {
			t.Errorf("%s: err = %v, want ErrInvalidArgument", b.name, err)
		}
	}
}
