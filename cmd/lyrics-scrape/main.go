package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sukalov/romagic/internal/logger"
	"github.com/sukalov/romagic/internal/lyrics/format"
	"github.com/sukalov/romagic/internal/lyrics/sources/genius"
)

func main() {
	var (
		outputFile string
		timeout    time.Duration
	)

	flag.StringVar(&outputFile, "output", "extracted_lyrics.txt", "Output file name")
	flag.DurationVar(&timeout, "timeout", 60*time.Second, "Page fetch timeout")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <URL>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "Example: %s https://genius.com/Kenshi-yonezu-lemon-lyrics\n", os.Args[0])
		os.Exit(1)
	}

	url := args[0]

	fmt.Println("=== Genius Lyrics Extractor CLI ===")
	fmt.Printf("URL: %s\n", url)
	fmt.Printf("Output file: %s\n", outputFile)
	fmt.Println()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	page, err := genius.NewPageClient(timeout).FetchPage(ctx, url)
	if err != nil {
		logger.Error(fmt.Sprintf("Error fetching page\nURL: %s\nError: %v", url, err))
		log.Fatalf("Error fetching page: %v", err)
	}

	text, ok := genius.ExtractLyrics(page)
	if !ok {
		logger.Error(fmt.Sprintf("No lyrics on page\nURL: %s", url))
		log.Fatalf("Failed to extract lyrics: no lyrics container on page")
	}
	text = format.Sections(text)

	if err := os.WriteFile(outputFile, []byte(text+"\n"), 0644); err != nil {
		logger.Error(fmt.Sprintf("Error saving lyrics file\nFile: %s\nError: %v", outputFile, err))
		log.Fatalf("Error saving file: %v", err)
	}
	logger.Success(fmt.Sprintf("Lyrics extraction completed successfully\nURL: %s\nOutput: %s\nLength: %d chars", url, outputFile, len(text)))

	fmt.Printf("Lyrics saved to: %s\n", outputFile)
	fmt.Println("=== EXTRACTION COMPLETED SUCCESSFULLY ===")
}
