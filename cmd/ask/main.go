package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"das-backend/internal/bootstrap"
	"das-backend/internal/documents"
	"das-backend/internal/shared/config"
)

// ask ingests local files into a fresh corpus and answers one question:
//
//	go run ./cmd/ask -q "What changed in Q3?" report.pdf notes.docx
func main() {
	cfg := config.Load()

	question := flag.String("q", "", "Question to ask about the files")
	provider := flag.String("provider", cfg.LLMProvider, "LLM provider (gemini, openai, none)")
	model := flag.String("model", cfg.LLMModel, "LLM model")
	asJSON := flag.Bool("json", false, "Print the full result as JSON")
	flag.Parse()

	if strings.TrimSpace(*question) == "" {
		exitErr("question is required (-q)")
	}
	if flag.NArg() == 0 {
		exitErr("at least one file path is required")
	}

	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(*provider))
	cfg.LLMModel = *model
	cfg.StagingStoreType = "local"
	cfg.StagingDir = filepath.Join(os.TempDir(), "das-ask")

	app, err := bootstrap.Build(cfg)
	if err != nil {
		exitErr(fmt.Sprintf("bootstrap: %v", err))
	}

	uploads := make([]documents.Upload, 0, flag.NArg())
	for _, path := range flag.Args() {
		uploads = append(uploads, documents.Upload{
			FileName: filepath.Base(path),
			Open:     openFile(path),
		})
	}

	ctx := context.Background()
	batch, err := app.DocumentsService.IngestBatch(ctx, uploads)
	if err != nil {
		exitErr(fmt.Sprintf("ingest: %v", err))
	}
	for _, fr := range batch.Files {
		if fr.Status == documents.StatusError {
			_, _ = fmt.Fprintf(os.Stderr, "skipped %s: %v\n", fr.FileName, fr.Err)
		}
	}

	answer, err := app.ChatService.Answer(ctx, *question)
	if err != nil {
		exitErr(fmt.Sprintf("answer: %v", err))
	}

	if *asJSON {
		out, err := json.MarshalIndent(map[string]any{
			"response": answer.Response,
			"sources":  answer.Sources,
			"degraded": answer.Degraded,
		}, "", "  ")
		if err != nil {
			exitErr(fmt.Sprintf("format json: %v", err))
		}
		fmt.Println(string(out))
		return
	}

	fmt.Println(answer.Response)
	if len(answer.Sources) > 0 {
		fmt.Printf("\nsources: %s\n", strings.Join(answer.Sources, ", "))
	}
}

func openFile(path string) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return os.Open(path)
	}
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
