// Command seed fills the configured book store, either from a JSON file
// holding an array of books or with generated sample data.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"github.com/emzola/bookcatalog/config"
	"github.com/emzola/bookcatalog/data/dto"
	"github.com/emzola/bookcatalog/internal/jsonlog"
	"github.com/emzola/bookcatalog/repository/storage"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	var (
		configPath string
		file       string
		count      int
	)
	flag.StringVar(&configPath, "config", "config.yaml", "Path to the YAML configuration file")
	flag.StringVar(&file, "file", "", "JSON file with an array of books; sample books are generated when empty")
	flag.IntVar(&count, "count", 20, "Number of sample books to generate")
	flag.Parse()

	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	cfg, err := config.Decode(configPath)
	if err != nil {
		logger.PrintFatal(err, nil)
	}

	var books []dto.BookRequestBody
	if file != "" {
		books, err = readBooks(file)
		if err != nil {
			logger.PrintFatal(err, map[string]string{"file": file})
		}
	} else {
		books = sampleBooks(count)
	}

	repo, closeStore, err := storage.Open(cfg)
	if err != nil {
		logger.PrintFatal(err, map[string]string{"driver": cfg.Database.Driver})
	}
	defer closeStore()

	ctx := context.Background()
	inserted := 0
	for i, b := range books {
		if _, err := repo.CreateBook(ctx, b.Fields()); err != nil {
			logger.PrintError(err, map[string]string{"index": strconv.Itoa(i)})
			continue
		}
		inserted++
	}
	total, err := repo.CountBooks(ctx)
	if err != nil {
		logger.PrintError(err, nil)
		return
	}
	logger.PrintInfo("seed complete", map[string]string{
		"inserted": strconv.Itoa(inserted),
		"skipped":  strconv.Itoa(len(books) - inserted),
		"total":    strconv.Itoa(total),
	})
}

func readBooks(path string) ([]dto.BookRequestBody, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var books []dto.BookRequestBody
	if err := json.NewDecoder(f).Decode(&books); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return books, nil
}

func sampleBooks(n int) []dto.BookRequestBody {
	words := []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"War", "Peace", "Nature", "History", "Future", "Light", "Darkness", "Time",
	}
	authors := []string{
		"Ursula K. Le Guin", "Frank Herbert", "Octavia E. Butler", "Stanislaw Lem",
		"J.R.R. Tolkien", "Chinua Achebe", "Toni Morrison", "Italo Calvino",
	}
	books := make([]dto.BookRequestBody, n)
	for i := range books {
		title := fmt.Sprintf("The %s of %s", words[rand.Intn(len(words))], words[rand.Intn(len(words))])
		author := authors[rand.Intn(len(authors))]
		year := 1900 + rand.Intn(125)
		books[i] = dto.BookRequestBody{Title: &title, Author: &author, PublicationYear: &year}
	}
	return books
}
