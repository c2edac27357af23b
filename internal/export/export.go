// Package export collects every reachable result page for a filter set and
// renders the profiles as a CSV download.
package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/leadgen/internal/types"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// CSVContentType is the media type of export artifacts.
const CSVContentType = "text/csv; charset=utf-8"

// ErrAllPagesFailed is wrapped by ExportError.
var ErrAllPagesFailed = errors.New("all export pages failed")

// ExportError reports an export in which no page could be fetched.
type ExportError struct {
	Platform types.Platform
	Causes   []error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export failed for %s: %d of %d pages failed: %v",
		e.Platform, len(e.Causes), types.ExportPages, errors.Join(e.Causes...))
}

// Unwrap exposes ErrAllPagesFailed and each page's cause to errors.Is / errors.As.
func (e *ExportError) Unwrap() []error {
	return append([]error{ErrAllPagesFailed}, e.Causes...)
}

// PageFetcher fetches one page and reports failures.
type PageFetcher interface {
	FetchPage(ctx context.Context, f types.FilterSet) (*types.ResultPage, error)
}

// Artifact is a generated download.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
	Rows        int // profile rows, header excluded
}

// Exporter runs bulk exports.
type Exporter struct {
	fetcher PageFetcher
	logger  logrus.FieldLogger
}

// NewExporter creates an exporter on top of fetcher.
func NewExporter(fetcher PageFetcher, logger logrus.FieldLogger) *Exporter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Exporter{fetcher: fetcher, logger: logger}
}

// Collect fetches pages 1..ExportPages concurrently and returns their items in
// page order. A failed page contributes nothing and does not stop its siblings.
// If every page fails the result is an *ExportError.
func (e *Exporter) Collect(ctx context.Context, f types.FilterSet) ([]types.Profile, error) {
	if err := f.WithPage(1).Validate(); err != nil {
		return nil, fmt.Errorf("invalid filters: %w", err)
	}

	pages := make([]*types.ResultPage, types.ExportPages)
	errs := make([]error, types.ExportPages)

	// Plain Group: one failing page must not cancel the others.
	var g errgroup.Group
	for i := range types.ExportPages {
		g.Go(func() error {
			page, err := e.fetcher.FetchPage(ctx, f.WithPage(i+1))
			if err != nil {
				errs[i] = err
				return nil
			}
			pages[i] = page
			return nil
		})
	}
	_ = g.Wait()

	var causes []error
	profiles := make([]types.Profile, 0, types.MaxResults)
	for i := range types.ExportPages {
		if errs[i] != nil {
			causes = append(causes, fmt.Errorf("page %d: %w", i+1, errs[i]))
			continue
		}
		if pages[i] != nil {
			profiles = append(profiles, pages[i].Items...)
		}
	}

	if len(causes) == types.ExportPages {
		return nil, &ExportError{Platform: f.Platform, Causes: causes}
	}
	if len(causes) > 0 {
		e.logger.WithFields(logrus.Fields{
			"platform": f.Platform,
			"failed":   len(causes),
		}).WithError(errors.Join(causes...)).Warn("export continuing with partial results")
	}
	return profiles, nil
}

// Export collects all pages and renders them as a CSV artifact.
func (e *Exporter) Export(ctx context.Context, f types.FilterSet) (*Artifact, error) {
	profiles, err := e.Collect(ctx, f)
	if err != nil {
		return nil, err
	}

	e.logger.WithFields(logrus.Fields{
		"platform": f.Platform,
		"rows":     len(profiles),
	}).Info("export complete")

	return &Artifact{
		Filename:    f.Platform.ExportFilename(),
		ContentType: CSVContentType,
		Data:        WriteCSV(profiles),
		Rows:        len(profiles),
	}, nil
}
