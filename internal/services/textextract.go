package services

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/otiai10/gosseract/v2"
)

// TextExtractionService produces raw text from an assessment PDF using an
// ordered chain of strategies, each strictly more expensive than the last:
// embedded text layer, then page rasterization + OCR, then the pdftotext CLI.
// A structurally valid PDF never errors here; the result may still be near
// empty and the caller decides pass/fail.
type TextExtractionService interface {
	AcquireText(filePath string) (string, error)
	PageCount(filePath string) (int, error)
}

// ExtractionStrategy is one named acquisition attempt. Reordering or adding
// strategies is a data change in newTextExtractionChain, not control flow.
type ExtractionStrategy struct {
	Name string
	Run  func(filePath string) (string, error)
}

const (
	// Below this many trimmed characters the document is treated as a
	// scanned/image PDF and the next strategy runs.
	minUsableTextLength = 100

	// Page limit when the PDF page count cannot be determined.
	fallbackOCRPageLimit = 10

	ocrDensityDPI = 300
	ocrMaxRaster  = 2000
	ocrLanguage   = "eng"
)

type textExtractionService struct {
	strategies  []ExtractionStrategy
	maxOCRPages int
}

// NewTextExtractionService builds the extraction chain. maxOCRPages caps the
// OCR stage; zero means every page.
func NewTextExtractionService(maxOCRPages int) TextExtractionService {
	s := &textExtractionService{maxOCRPages: maxOCRPages}
	s.strategies = []ExtractionStrategy{
		{Name: "text-layer", Run: s.extractTextLayer},
		{Name: "ocr", Run: s.extractWithOCR},
		{Name: "pdftotext", Run: extractWithPdftotext},
	}
	return s
}

// AcquireText runs the strategy chain until one yields enough text. Strategy
// failures are logged and skipped; the best text seen so far is returned even
// when every stage falls short.
func (s *textExtractionService) AcquireText(filePath string) (string, error) {
	if _, err := os.Stat(filePath); err != nil {
		return "", fmt.Errorf("file does not exist: %s", filePath)
	}

	var best string
	for _, strategy := range s.strategies {
		text, err := strategy.Run(filePath)
		if err != nil {
			log.Printf("⚠️  Extraction strategy %s failed: %v\n", strategy.Name, err)
			continue
		}
		if len(strings.TrimSpace(text)) > len(strings.TrimSpace(best)) {
			best = text
		}
		if len(strings.TrimSpace(best)) >= minUsableTextLength {
			log.Printf("📄 Strategy %s extracted %d characters\n", strategy.Name, len(best))
			return best, nil
		}
		log.Printf("📄 Strategy %s extracted minimal text (%d characters), escalating\n",
			strategy.Name, len(strings.TrimSpace(text)))
	}

	return best, nil
}

// PageCount reads the page count from the PDF structure.
func (s *textExtractionService) PageCount(filePath string) (int, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	return r.NumPage(), nil
}

// extractTextLayer reads the embedded text layer page by page. A page that
// fails to decode is skipped, not fatal.
func (s *textExtractionService) extractTextLayer(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}

// extractWithOCR rasterizes pages sequentially and runs Tesseract on each one.
// Pages are processed one at a time and each raster is deleted before the next
// is produced, to bound peak memory. A failed page is logged and skipped so a
// single bad page cannot abort the document.
func (s *textExtractionService) extractWithOCR(filePath string) (string, error) {
	maxPages := s.ocrPageLimit(filePath)
	log.Printf("🔍 Starting OCR extraction, up to %d pages\n", maxPages)

	tmpDir, err := os.MkdirTemp("", "assessment-ocr-")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir for OCR: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(ocrLanguage); err != nil {
		return "", fmt.Errorf("failed to configure OCR language: %w", err)
	}

	var fullText strings.Builder
	for pageNum := 1; pageNum <= maxPages; pageNum++ {
		text, err := s.ocrPage(client, filePath, tmpDir, pageNum)
		if err != nil {
			log.Printf("⚠️  OCR failed for page %d: %v\n", pageNum, err)
			continue
		}
		fullText.WriteString(text)
		fullText.WriteString("\n")
		log.Printf("🔍 Page %d OCR extracted %d characters\n", pageNum, len(text))
	}

	return fullText.String(), nil
}

func (s *textExtractionService) ocrPageLimit(filePath string) int {
	total, err := s.PageCount(filePath)
	if err != nil {
		log.Printf("⚠️  Could not determine page count: %v\n", err)
		if s.maxOCRPages > 0 {
			return s.maxOCRPages
		}
		return fallbackOCRPageLimit
	}

	if s.maxOCRPages > 0 && s.maxOCRPages < total {
		return s.maxOCRPages
	}
	return total
}

func (s *textExtractionService) ocrPage(client *gosseract.Client, filePath, tmpDir string, pageNum int) (string, error) {
	rasterPath, err := rasterizePage(filePath, tmpDir, pageNum)
	if err != nil {
		return "", fmt.Errorf("failed to rasterize page: %w", err)
	}
	defer func() {
		if err := os.Remove(rasterPath); err != nil {
			log.Printf("⚠️  Could not clean up temp raster %s: %v\n", rasterPath, err)
		}
	}()

	if err := client.SetImage(rasterPath); err != nil {
		return "", fmt.Errorf("failed to load raster: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR recognition failed: %w", err)
	}

	return text, nil
}

// rasterizePage renders a single page to PNG via poppler's pdftoppm at high
// density, bounded so OCR input stays within 2000x2000.
func rasterizePage(filePath, tmpDir string, pageNum int) (string, error) {
	prefix := filepath.Join(tmpDir, fmt.Sprintf("page-%d", pageNum))

	cmd := exec.Command("pdftoppm",
		"-png",
		"-r", strconv.Itoa(ocrDensityDPI),
		"-scale-to", strconv.Itoa(ocrMaxRaster),
		"-f", strconv.Itoa(pageNum),
		"-l", strconv.Itoa(pageNum),
		"-singlefile",
		filePath, prefix,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("pdftoppm failed: %w (%s)", err, strings.TrimSpace(string(out)))
	}

	return prefix + ".png", nil
}

// extractWithPdftotext shells out to poppler's pdftotext as the last resort.
func extractWithPdftotext(filePath string) (string, error) {
	cmd := exec.Command("pdftotext", filePath, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext not available or failed: %w", err)
	}

	log.Printf("📄 pdftotext extracted %d characters\n", len(out))
	return string(out), nil
}
