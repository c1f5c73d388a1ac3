package guesslang_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ZaguanLabs/guesslang"
	"github.com/ZaguanLabs/guesslang/cache"
	"github.com/ZaguanLabs/guesslang/processor"
)

func newMailDetector(opts ...guesslang.DetectorOption) *guesslang.Detector {
	opts = append(opts,
		guesslang.WithProcessor(processor.NewHTMLProcessor()),
		guesslang.WithProcessor(processor.NewPlainProcessor()),
	)
	return guesslang.NewDetector(opts...)
}

func TestIntegration_HTMLMail(t *testing.T) {
	d := newMailDetector()

	body := `<html>
<head><title>Re: Termin</title><style>p { color: red }</style></head>
<body>
  <p>Der schnelle braune Fuchs springt über den faulen Hund und die Katze schläft.</p>
  <div class="gmail_quote">
    <p>The weather is lovely this morning and we are going for a walk in the park.</p>
  </div>
  <pre>func main() {}</pre>
</body>
</html>`

	res, err := d.Process(body, "html")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if res.Code != "de" {
		t.Errorf("Expected de from the unquoted paragraph, got %q (scores %v)", res.Code, res.Scores)
	}
}

func TestIntegration_PlainMail(t *testing.T) {
	d := newMailDetector()

	body := strings.Join([]string{
		"Быстрая коричневая лиса прыгает через ленивую собаку.",
		"",
		"> The weather is lovely this morning and we are going for a walk.",
		"> Hello, how are you today?",
		"",
		"-- ",
		"Sent from my phone, please excuse the brevity of this message.",
	}, "\n")

	res, err := d.Process(body, "plain")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if res.Code != "ru" {
		t.Errorf("Expected ru, got %q (scores %v)", res.Code, res.Scores)
	}
}

func TestIntegration_UnknownContentType(t *testing.T) {
	_, err := newMailDetector().Process("hello", "rtf")

	var pe *guesslang.ProcessorError
	if !errors.As(err, &pe) {
		t.Fatalf("Expected *ProcessorError, got %v", err)
	}
	if pe.ContentType != "rtf" {
		t.Errorf("Expected content type rtf, got %q", pe.ContentType)
	}
}

func TestIntegration_CacheExportImport(t *testing.T) {
	mem := cache.NewInMemoryCache(0)
	d := newMailDetector(guesslang.WithResultCache(mem))

	texts := []string{"안녕하세요", "Hello, how are you today?", "שלום עולם"}
	codes, err := d.DetectAll(context.Background(), texts)
	if err != nil {
		t.Fatalf("DetectAll failed: %v", err)
	}
	if strings.Join(codes, ",") != "ko,en,he" {
		t.Fatalf("Unexpected codes: %v", codes)
	}

	var buf bytes.Buffer
	if err := cache.NewExporter(mem).Export(&buf, map[string]string{"revision": guesslang.Version}); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	warm := cache.NewInMemoryCache(0)
	result, err := cache.NewImporter(warm).Import(&buf)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Imported != len(texts) {
		t.Errorf("Expected %d imported entries, got %d", len(texts), result.Imported)
	}

	res := newMailDetector(guesslang.WithResultCache(warm)).Explain("Hello, how are you today?")
	if !res.Cached || res.Code != "en" {
		t.Errorf("Expected a cached en result, got %+v", res)
	}
}

func TestIntegration_PackageLevel(t *testing.T) {
	if got := guesslang.Detect("Καλημέρα σας"); got != "el" {
		t.Errorf("Expected el, got %q", got)
	}
	if got := guesslang.IdentifyInfo("Hello, how are you today?"); got.Name != "English" {
		t.Errorf("Expected English, got %+v", got)
	}
}
