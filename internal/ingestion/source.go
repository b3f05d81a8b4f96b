package ingestion

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/mr1hm/go-quake-dashboard/internal/models"
)

// Source produces the rows of the event table. skipped counts malformed
// rows that were dropped.
type Source interface {
	Name() string
	Events(ctx context.Context) (events []models.Event, skipped int, err error)
}

// HTTPSource fetches a CSV file over HTTP.
type HTTPSource struct {
	url    string
	client *http.Client
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (s *HTTPSource) Name() string {
	return s.url
}

func (s *HTTPSource) Events(ctx context.Context) ([]models.Event, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("error while doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}

	return ParseCSV(resp.Body)
}

// FileSource reads a CSV file from disk.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return s.path
}

func (s *FileSource) Events(ctx context.Context) ([]models.Event, int, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, 0, fmt.Errorf("error opening file: %w", err)
	}
	defer f.Close()

	return ParseCSV(f)
}
