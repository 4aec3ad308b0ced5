package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"excelinterviewer/mock-interviewer/internal/config"
	"excelinterviewer/mock-interviewer/internal/services"
)

// ingest_documents loads the Excel reference guides under REFERENCE_DOCS_DIR
// into Qdrant so the rubric grader can cite them.
func main() {
	log.Println("🚀 Starting reference guide ingestion...")

	cfg := config.Load()
	if !cfg.RAGEnabled() {
		log.Fatalf("❌ QDRANT_URL and GEMINI_API_KEY must both be set")
	}

	ctx := context.Background()

	geminiService, err := services.NewGeminiService(ctx, cfg.LLM)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	qdrantService, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}
	if err := qdrantService.InitCollection(ctx); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	paths, err := findDocuments(cfg.Ingest.ReferenceDocsDir)
	if err != nil {
		log.Fatalf("❌ Failed to list %s: %v", cfg.Ingest.ReferenceDocsDir, err)
	}
	if len(paths) == 0 {
		log.Printf("⚠️  No reference documents found in %s", cfg.Ingest.ReferenceDocsDir)
		return
	}

	ing := &ingester{
		embedder: geminiService,
		qdrant:   qdrantService,
		parser:   services.NewPDFParserService(),
		chunker:  services.NewTextChunker(),
		cfg:      cfg.Ingest,
	}

	successCount, failCount := 0, 0
	for _, path := range paths {
		log.Printf("\n📄 Processing: %s", path)
		stored, err := ing.ingest(ctx, path)
		if err != nil {
			log.Printf("   ❌ %v", err)
			failCount++
			continue
		}
		log.Printf("   ✅ Stored %d chunks", stored)
		successCount++
	}

	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d documents", successCount)
	log.Printf("   ❌ Failed: %d documents", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		os.Exit(1)
	}
}

type ingester struct {
	embedder services.Embedder
	qdrant   services.QdrantService
	parser   services.PDFParserService
	chunker  services.TextChunker
	cfg      config.IngestConfig
}

// ingest replaces every stored chunk of path with a fresh embedding set.
func (i *ingester) ingest(ctx context.Context, path string) (int, error) {
	text, err := i.readText(path)
	if err != nil {
		return 0, err
	}

	chunks := i.chunker.ChunkText(text, i.cfg.ChunkSize, i.cfg.ChunkOverlap)
	log.Printf("   ✂️  %d chunks", len(chunks))

	source := filepath.Base(path)
	if err := i.qdrant.DeleteSource(ctx, source); err != nil {
		return 0, fmt.Errorf("failed to clear old chunks: %w", err)
	}

	var stored atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(i.cfg.Concurrency, 1))
	for idx, chunk := range chunks {
		g.Go(func() error {
			embedding, err := i.embedder.GenerateEmbedding(gctx, chunk)
			if err != nil {
				return fmt.Errorf("failed to embed chunk %d: %w", idx, err)
			}
			err = i.qdrant.UpsertChunk(gctx, services.ReferenceChunk{
				Source:  source,
				Index:   idx,
				DocType: services.ReferenceDocType,
				Text:    chunk,
			}, embedding)
			if err != nil {
				return fmt.Errorf("failed to store chunk %d: %w", idx, err)
			}
			if n := stored.Add(1); n%5 == 0 || int(n) == len(chunks) {
				log.Printf("   📊 Progress: %d/%d chunks stored", n, len(chunks))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return int(stored.Load()), err
	}
	return int(stored.Load()), nil
}

func (i *ingester) readText(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		content, err := i.parser.ExtractText(path)
		if err != nil {
			return "", err
		}
		log.Printf("   📖 Extracted %d pages, %d characters", content.PageCount, len(content.Text))
		return content.Text, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return services.CleanText(string(data)), nil
}

// findDocuments returns the PDF, Markdown and text files under dir.
func findDocuments(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".pdf", ".md", ".txt":
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}
