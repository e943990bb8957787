// Command scan runs the extraction pipeline once over a receipt text file and
// prints the resulting record as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"receiptscan/internal/config"
	"receiptscan/internal/domain"
	"receiptscan/internal/llm/openai"
	"receiptscan/internal/scanner"
)

func main() {
	var (
		file  = flag.String("file", "", "path to a receipt text file (required)")
		model = flag.String("model", "", "model to use (default from config)")
	)
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*file, *model); err != nil {
		log.Fatal(err)
	}
}

func run(file, model string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	text, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	sc := scanner.New(scanner.EmbeddedTemplates{}, openai.NewClient(&cfg.OpenAI), domain.ModelName(cfg.OpenAI.DefaultModel))

	var opts []scanner.Option
	if model != "" {
		opts = append(opts, scanner.WithModel(domain.ModelName(model)))
	}

	result, err := sc.ScanMap(context.Background(), string(text), opts...)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
