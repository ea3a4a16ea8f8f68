package chunker

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		p, err := New()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.chunkSize != domain.DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", domain.DefaultChunkSize, p.chunkSize)
		}
		if p.overlap != domain.DefaultChunkOverlap {
			t.Errorf("expected overlap %d, got %d", domain.DefaultChunkOverlap, p.overlap)
		}
	})

	t.Run("custom chunk size", func(t *testing.T) {
		p, err := New(WithChunkSize(800))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.chunkSize != 800 {
			t.Errorf("expected chunkSize 800, got %d", p.chunkSize)
		}
	})

	t.Run("custom overlap", func(t *testing.T) {
		p, err := New(WithOverlap(100))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.overlap != 100 {
			t.Errorf("expected overlap 100, got %d", p.overlap)
		}
	})

	t.Run("overlap equal to chunk size rejected", func(t *testing.T) {
		_, err := New(WithChunkSize(100), WithOverlap(100))
		if err == nil {
			t.Fatal("expected error when overlap equals chunk size")
		}
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("overlap exceeding chunk size rejected", func(t *testing.T) {
		_, err := New(WithChunkSize(100), WithOverlap(150))
		if err == nil {
			t.Fatal("expected error when overlap exceeds chunk size")
		}
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("overlap of one rejected for chunk size one", func(t *testing.T) {
		if _, err := New(WithChunkSize(1), WithOverlap(1)); err == nil {
			t.Fatal("expected error for any overlap >= size")
		}
	})

	t.Run("zero chunk size rejected", func(t *testing.T) {
		if _, err := New(WithChunkSize(0)); err == nil {
			t.Fatal("expected error for zero chunk size")
		}
	})

	t.Run("negative overlap rejected", func(t *testing.T) {
		if _, err := New(WithOverlap(-1)); err == nil {
			t.Fatal("expected error for negative overlap")
		}
	})
}

func TestProcessor_Name(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "chunker" {
		t.Errorf("expected name 'chunker', got '%s'", p.Name())
	}
}

func TestProcessor_Process_EmptyContent(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := &domain.Document{Content: ""}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected 0 chunks for empty content, got %d", len(chunks))
	}
}

func TestProcessor_Process_SmallContent(t *testing.T) {
	p, err := New(WithChunkSize(100), WithOverlap(20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := &domain.Document{Content: "This is a small piece of content."}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk for small content, got %d", len(chunks))
	}

	if chunks[0].Text != doc.Content {
		t.Errorf("expected chunk text to match document content")
	}
	if chunks[0].Index != 0 {
		t.Errorf("expected index 0, got %d", chunks[0].Index)
	}
}

func TestProcessor_Process_ExactOverlap(t *testing.T) {
	p, err := New(WithChunkSize(10), WithOverlap(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// No boundaries at all, so every cut lands on the hard limit
	doc := &domain.Document{Content: "0123456789ABCDEFGHIJ"}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Step is 7: chunks are [0:10), [7:17), [14:20)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if chunks[0].Text != "0123456789" {
		t.Errorf("unexpected first chunk: %q", chunks[0].Text)
	}
	if chunks[1].Text != "789ABCDEFG" {
		t.Errorf("unexpected second chunk: %q", chunks[1].Text)
	}
	if chunks[2].Text != "EFGHIJ" {
		t.Errorf("unexpected third chunk: %q", chunks[2].Text)
	}

	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1].Text)
		curr := []rune(chunks[i].Text)
		suffix := string(prev[len(prev)-3:])
		prefix := string(curr[:3])
		if suffix != prefix {
			t.Errorf("chunks %d/%d share %q and %q, want exact overlap", i-1, i, suffix, prefix)
		}
	}
}

func TestProcessor_Process_Reconstruction(t *testing.T) {
	p, err := New(WithChunkSize(40), WithOverlap(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content := "The quick brown fox jumps over the lazy dog. " +
		"Pack my box with five dozen liquor jugs.\n" +
		"Sphinx of black quartz, judge my vow. " +
		"How vexingly quick daft zebras jump!"
	doc := &domain.Document{Content: content}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// Dropping the shared prefix of each later chunk restores the document
	rebuilt := chunks[0].Text
	for _, chunk := range chunks[1:] {
		runes := []rune(chunk.Text)
		rebuilt += string(runes[10:])
	}
	if rebuilt != content {
		t.Errorf("reconstruction mismatch:\nwant %q\ngot  %q", content, rebuilt)
	}

	// No chunk exceeds the configured size
	for i, chunk := range chunks {
		if n := len([]rune(chunk.Text)); n > 40 {
			t.Errorf("chunk %d has %d runes, want <= 40", i, n)
		}
	}

	// Indices are sequential
	for i, chunk := range chunks {
		if chunk.Index != i {
			t.Errorf("expected index %d, got %d", i, chunk.Index)
		}
	}
}

func TestProcessor_Process_PrefersParagraphBreak(t *testing.T) {
	p, err := New(WithChunkSize(30), WithOverlap(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := &domain.Document{
		Content: "First paragraph here.\n\nSecond part with more text following after",
	}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// The first cut snaps to the paragraph break instead of byte 30
	if !strings.HasSuffix(chunks[0].Text, "\n\n") {
		t.Errorf("expected first chunk to end at the paragraph break, got %q", chunks[0].Text)
	}
}

func TestProcessor_Process_PrefersSentenceEnd(t *testing.T) {
	p, err := New(WithChunkSize(30), WithOverlap(4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := &domain.Document{
		Content: "A short sentence. Another one follows it with extra words",
	}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	if !strings.HasSuffix(chunks[0].Text, "sentence. ") {
		t.Errorf("expected first chunk to end after the sentence, got %q", chunks[0].Text)
	}
}

func TestProcessor_Process_Unicode(t *testing.T) {
	p, err := New(WithChunkSize(4), WithOverlap(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Four-byte runes; windows must count runes, not bytes
	doc := &domain.Document{Content: "日本語のテキスト"}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, chunk := range chunks {
		if n := len([]rune(chunk.Text)); n > 4 {
			t.Errorf("chunk %d has %d runes, want <= 4", i, n)
		}
		if !strings.Contains("日本語のテキスト", chunk.Text) {
			t.Errorf("chunk %d split inside a rune: %q", i, chunk.Text)
		}
	}
}

func TestProcessor_Process_IgnoresInputChunks(t *testing.T) {
	p, err := New(WithChunkSize(100), WithOverlap(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	existing := []domain.Chunk{{Text: "should be ignored", Index: 99}}
	doc := &domain.Document{Content: "New content to chunk"}

	chunks, err := p.Process(context.Background(), doc, existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chunks) != 1 || chunks[0].Text != "New content to chunk" {
		t.Errorf("expected fresh chunks from document content, got %+v", chunks)
	}
}

func TestProcessor_Process_MetadataInherited(t *testing.T) {
	p, err := New(WithChunkSize(100), WithOverlap(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := &domain.Document{
		Content:  "Test content",
		Metadata: map[string]string{"source": "notes.txt"},
	}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, chunk := range chunks {
		if chunk.Metadata == nil {
			t.Fatal("expected chunk metadata to be initialized")
		}
		if chunk.Metadata["source"] != "notes.txt" {
			t.Errorf("expected inherited metadata, got %v", chunk.Metadata)
		}
	}

	// Mutating one chunk's metadata must not leak into the document
	chunks[0].Metadata["source"] = "changed"
	if doc.Metadata["source"] != "notes.txt" {
		t.Error("chunk metadata aliases document metadata")
	}
}
