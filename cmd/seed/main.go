// Command seed embeds knowledge-base JSON files and loads them into the
// documents table, one logical collection per file. Re-running replaces the
// collection contents.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"retail-ai-assistant/internal/config"
	"retail-ai-assistant/internal/domain/model"
	aiAdapters "retail-ai-assistant/internal/infra/adapters/ai"
	pg "retail-ai-assistant/internal/infra/db/postgres"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	file := flag.String("file", "", "path to a JSON array of flat records")
	collection := flag.String("collection", "", "target collection name")
	flag.Parse()

	if *file == "" || *collection == "" {
		log.Fatal("usage: seed -file data.json -collection docs [-config config.yaml]")
	}

	cfg, err := config.LoadConfig(*cfgPath, false)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.AI.GeminiKey == "" {
		log.Fatal("ai.gemini_key is required for embedding")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	records, err := readRecords(*file)
	if err != nil {
		log.Fatalf("read %s: %v", *file, err)
	}

	gemini, err := aiAdapters.NewGeminiAdapter(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiURL, cfg.AI.Model, cfg.AI.EmbedModel, cfg.AI.MaxOutputTokens)
	if err != nil {
		log.Fatalf("gemini adapter: %v", err)
	}

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	docs := make([]model.Document, 0, len(records))
	for i, rec := range records {
		vec, err := gemini.Embed(ctx, flattenRecord(rec))
		if err != nil {
			log.Fatalf("embed record %d: %v", i, err)
		}
		docs = append(docs, model.Document{
			Collection: *collection,
			Payload:    rec,
			Embedding:  vec,
		})
	}

	repo := pg.NewDocumentRepo(pool)
	if err := repo.ReplaceCollection(ctx, *collection, docs); err != nil {
		log.Fatalf("load collection %s: %v", *collection, err)
	}
	fmt.Printf("loaded %d documents into collection %q\n", len(docs), *collection)
}

func readRecords(path string) ([]model.Passage, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []model.Passage
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// flattenRecord turns a flat record into the text that gets embedded,
// "key: value" pairs in stable key order.
func flattenRecord(rec model.Passage) string {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, rec[k]))
	}
	return strings.Join(parts, ", ")
}
