package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gen2brain/go-fitz"

	"pdfsmarttools/internal/domain"
)

// PDFBackend is the shipped processing backend for digital PDFs. It covers
// the text-recognition feature and page-count probing; the remaining features
// are served by the platform's native backend behind the same interface.
type PDFBackend struct {
	logger domain.Logger
}

// NewPDFBackend creates a new PDF backend
func NewPDFBackend(logger domain.Logger) *PDFBackend {
	return &PDFBackend{logger: logger}
}

// Execute implements domain.Backend.
func (b *PDFBackend) Execute(ctx context.Context, feature domain.FeatureKey, input domain.BackendInput, sink domain.ProgressSink) (*domain.RunOutput, error) {
	switch feature {
	case domain.FeatureOCR:
		return b.recognizeText(ctx, input, sink)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFeature, feature)
	}
}

// ProbePageCount opens a document just long enough to count its pages. Used
// by the UI layer before a page operation plan is built.
func (b *PDFBackend) ProbePageCount(path string) (int, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()
	return doc.NumPage(), nil
}

func (b *PDFBackend) recognizeText(ctx context.Context, input domain.BackendInput, sink domain.ProgressSink) (*domain.RunOutput, error) {
	if len(input.InputPaths) == 0 {
		return nil, domain.ErrNoInput
	}

	doc, err := fitz.New(input.InputPaths[0])
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	numPages := doc.NumPage()
	const pageTimeout = 90 * time.Second

	type pageResult struct {
		text string
		err  error
	}

	var pages []string
	for pageNum := 0; pageNum < numPages; pageNum++ {
		select {
		case <-ctx.Done():
			b.cleanup(input.OutputPath)
			return nil, ctx.Err()
		default:
		}

		b.logger.Debug("recognizing page", "page", pageNum+1, "total", numPages)
		resultCh := make(chan pageResult, 1)
		go func(idx int) {
			t, e := doc.Text(idx)
			resultCh <- pageResult{text: t, err: e}
		}(pageNum)

		var text string
		select {
		case res := <-resultCh:
			if res.err != nil {
				b.logger.Warn("page extraction failed; using empty page",
					"page", pageNum+1, "total", numPages, "error", res.err)
			}
			text = res.text
		case <-time.After(pageTimeout):
			b.logger.Warn("page extraction timeout; using empty page",
				"page", pageNum+1, "total", numPages, "timeout_sec", int(pageTimeout.Seconds()))
			go func() { <-resultCh }() // drain so the goroutine can exit
		case <-ctx.Done():
			go func() { <-resultCh }()
			b.cleanup(input.OutputPath)
			return nil, ctx.Err()
		}

		pages = append(pages, text)
		sink(domain.BackendTick{
			CurrentItem: pageNum + 1,
			TotalItems:  numPages,
			Status:      fmt.Sprintf("page %d of %d", pageNum+1, numPages),
		})
	}

	recognized := strings.Join(pages, "\n\n")
	output := &domain.RunOutput{
		PageCount: numPages,
		Text:      recognized,
	}

	if input.OutputPath != "" {
		if err := os.WriteFile(input.OutputPath, []byte(recognized), 0o644); err != nil {
			b.cleanup(input.OutputPath)
			return nil, fmt.Errorf("failed to write recognized text: %w", err)
		}
		output.OutputPaths = []string{input.OutputPath}
		output.BytesWritten = int64(len(recognized))
	}

	return output, nil
}

// cleanup removes a partial output artifact. Non-success runs must leave
// nothing behind, since quota is only spent on delivered work.
func (b *PDFBackend) cleanup(outputPath string) {
	if outputPath == "" {
		return
	}
	if err := os.Remove(outputPath); err != nil && !os.IsNotExist(err) {
		b.logger.Warn("failed to remove partial output", "path", outputPath, "error", err)
	}
}
