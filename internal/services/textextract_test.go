package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempPDFPath(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0644))
	return path
}

func fixedStrategy(name, text string, calls *[]string) ExtractionStrategy {
	return ExtractionStrategy{
		Name: name,
		Run: func(string) (string, error) {
			*calls = append(*calls, name)
			return text, nil
		},
	}
}

func failingStrategy(name string, calls *[]string) ExtractionStrategy {
	return ExtractionStrategy{
		Name: name,
		Run: func(string) (string, error) {
			*calls = append(*calls, name)
			return "", fmt.Errorf("%s unavailable", name)
		},
	}
}

func TestAcquireTextStopsAtFirstUsableResult(t *testing.T) {
	var calls []string
	usable := strings.Repeat("a", minUsableTextLength)

	svc := &textExtractionService{strategies: []ExtractionStrategy{
		fixedStrategy("first", usable, &calls),
		fixedStrategy("second", "should never run", &calls),
	}}

	text, err := svc.AcquireText(tempPDFPath(t))
	require.NoError(t, err)
	assert.Equal(t, usable, text)
	assert.Equal(t, []string{"first"}, calls)
}

func TestAcquireTextEscalatesPastShortResults(t *testing.T) {
	var calls []string
	usable := strings.Repeat("b", minUsableTextLength+50)

	svc := &textExtractionService{strategies: []ExtractionStrategy{
		fixedStrategy("first", "just a stub", &calls),
		fixedStrategy("second", usable, &calls),
	}}

	text, err := svc.AcquireText(tempPDFPath(t))
	require.NoError(t, err)
	assert.Equal(t, usable, text)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestAcquireTextSkipsFailedStrategies(t *testing.T) {
	var calls []string
	usable := strings.Repeat("c", minUsableTextLength)

	svc := &textExtractionService{strategies: []ExtractionStrategy{
		failingStrategy("first", &calls),
		fixedStrategy("second", usable, &calls),
	}}

	text, err := svc.AcquireText(tempPDFPath(t))
	require.NoError(t, err)
	assert.Equal(t, usable, text)
	assert.Equal(t, []string{"first", "second"}, calls)
}

// When every strategy falls short of the usable threshold the longest result
// wins and no error is returned; the parser decides what to do with it.
func TestAcquireTextReturnsBestEffortWhenAllFallShort(t *testing.T) {
	var calls []string

	svc := &textExtractionService{strategies: []ExtractionStrategy{
		fixedStrategy("first", "short but the longest available", &calls),
		fixedStrategy("second", "tiny", &calls),
		failingStrategy("third", &calls),
	}}

	text, err := svc.AcquireText(tempPDFPath(t))
	require.NoError(t, err)
	assert.Equal(t, "short but the longest available", text)
	assert.Equal(t, []string{"first", "second", "third"}, calls)
}

func TestAcquireTextMissingFile(t *testing.T) {
	svc := &textExtractionService{strategies: []ExtractionStrategy{
		{Name: "never", Run: func(string) (string, error) {
			t.Fatal("strategy ran for a missing file")
			return "", nil
		}},
	}}

	_, err := svc.AcquireText(filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestOCRPageLimitPrefersConfiguredCap(t *testing.T) {
	// Page count is unreadable for a stub file, so the configured cap applies,
	// falling back to the default limit when unset.
	capped := &textExtractionService{maxOCRPages: 3}
	assert.Equal(t, 3, capped.ocrPageLimit(tempPDFPath(t)))

	uncapped := &textExtractionService{}
	assert.Equal(t, fallbackOCRPageLimit, uncapped.ocrPageLimit(tempPDFPath(t)))
}
