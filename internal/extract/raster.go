package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"teklio/internal/domain"
)

// DefaultRasterDPI is 2.0x of the 72dpi PDF point grid.
const DefaultRasterDPI = 144

const rasterTimeout = 60 * time.Second

var (
	rendererOnce sync.Once
	rendererErr  error
)

// EnsureRenderer verifies that the pdftoppm binary is available. The check
// runs once per process and is safe to call from concurrent requests; call
// it at startup to surface a missing renderer early.
func EnsureRenderer() error {
	rendererOnce.Do(func() {
		_, rendererErr = exec.LookPath("pdftoppm")
	})
	return rendererErr
}

// RenderFirstPage rasterizes page 1 of the PDF to a PNG at the given DPI.
// Failures are reported as domain.ErrImageConversion so callers can tell a
// broken scan apart from a generic extraction error.
func RenderFirstPage(ctx context.Context, data []byte, dpi int) ([]byte, error) {
	if err := EnsureRenderer(); err != nil {
		return nil, fmt.Errorf("%w: pdftoppm not found in PATH: %v", domain.ErrImageConversion, err)
	}
	if dpi <= 0 {
		dpi = DefaultRasterDPI
	}

	tmpDir := filepath.Join(os.TempDir(), "teklio-raster-"+uuid.New().String())
	if err := os.MkdirAll(tmpDir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: mkdir tmp: %v", domain.ErrImageConversion, err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	pdfPath := filepath.Join(tmpDir, "input.pdf")
	if err := os.WriteFile(pdfPath, data, 0o600); err != nil {
		return nil, fmt.Errorf("%w: write pdf: %v", domain.ErrImageConversion, err)
	}

	ctx, cancel := context.WithTimeout(ctx, rasterTimeout)
	defer cancel()

	prefix := filepath.Join(tmpDir, "page")
	cmd := exec.CommandContext(ctx, "pdftoppm",
		"-png",
		"-r", strconv.Itoa(dpi),
		"-q",
		"-singlefile",
		"-f", "1",
		"-l", "1",
		pdfPath, prefix)
	out, err := cmd.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("%w: pdftoppm timed out", domain.ErrImageConversion)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: pdftoppm: %v: %s", domain.ErrImageConversion, err, strings.TrimSpace(string(out)))
	}

	img, err := os.ReadFile(prefix + ".png")
	if err != nil {
		return nil, fmt.Errorf("%w: read rendered page: %v", domain.ErrImageConversion, err)
	}
	return img, nil
}
