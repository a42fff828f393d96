package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"retail-assistant-be/internal/config"
	"retail-assistant-be/internal/entity"
	"retail-assistant-be/internal/repository/unitofwork"
	"retail-assistant-be/pkg/database"
	"retail-assistant-be/pkg/embedding"
	"retail-assistant-be/pkg/utils"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// chunkFile is the expected shape of the -file input: a JSON array of
// ready-to-ingest chunks.
type chunkFile []struct {
	Source   string                 `json:"source"`
	Section  string                 `json:"section"`
	Text     string                 `json:"text"`
	Metadata map[string]interface{} `json:"metadata"`
}

func main() {
	filePath := flag.String("file", "", "JSON file with an array of chunks to ingest")
	textPath := flag.String("text", "", "Plain text file to split and ingest")
	source := flag.String("source", "", "Source label for -text ingestion")
	chunkSize := flag.Int("chunk-size", 1500, "Chunk size in characters for -text ingestion")
	overlap := flag.Int("overlap", 200, "Overlap in characters for -text ingestion")
	flag.Parse()

	if *filePath == "" && *textPath == "" {
		color.Red("Either -file or -text is required")
		flag.Usage()
		os.Exit(1)
	}

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)

	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	}

	chunks, err := loadChunks(*filePath, *textPath, *source, *chunkSize, *overlap)
	if err != nil {
		color.Red("Failed to load input: %v", err)
		os.Exit(1)
	}

	color.Cyan("Ingesting %d chunks...", len(chunks))

	ctx := context.Background()
	uow := uowFactory.NewUnitOfWork(ctx)

	ok, failed := 0, 0
	for i, chunk := range chunks {
		if err := uow.KnowledgeChunkRepository().Create(ctx, chunk); err != nil {
			color.Red("  [%d/%d] store chunk: %v", i+1, len(chunks), err)
			failed++
			continue
		}

		res, err := embeddingProvider.Generate(chunk.Text, "RETRIEVAL_DOCUMENT")
		if err != nil {
			color.Red("  [%d/%d] embed chunk %s: %v", i+1, len(chunks), chunk.Id, err)
			failed++
			continue
		}

		if err := uow.KnowledgeEmbeddingRepository().Upsert(ctx, chunk.Id, res.Embedding.Values); err != nil {
			color.Red("  [%d/%d] store embedding %s: %v", i+1, len(chunks), chunk.Id, err)
			failed++
			continue
		}

		color.Green("  [%d/%d] %s (%s)", i+1, len(chunks), chunk.Id, chunk.Source)
		ok++
	}

	color.Cyan("Done: %d ingested, %d failed", ok, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func loadChunks(filePath, textPath, source string, chunkSize, overlap int) ([]*entity.KnowledgeChunk, error) {
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, err
		}

		var parsed chunkFile
		if err := json.Unmarshal(data, &parsed); err != nil {
			return nil, err
		}

		chunks := make([]*entity.KnowledgeChunk, len(parsed))
		for i, c := range parsed {
			chunks[i] = &entity.KnowledgeChunk{
				Id:       uuid.New(),
				Source:   c.Source,
				Section:  c.Section,
				Text:     c.Text,
				Metadata: c.Metadata,
			}
		}
		return chunks, nil
	}

	data, err := os.ReadFile(textPath)
	if err != nil {
		return nil, err
	}
	if source == "" {
		source = textPath
	}

	pieces := utils.SplitText(string(data), chunkSize, overlap)
	chunks := make([]*entity.KnowledgeChunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = &entity.KnowledgeChunk{
			Id:     uuid.New(),
			Source: source,
			Text:   piece,
		}
	}
	return chunks, nil
}
