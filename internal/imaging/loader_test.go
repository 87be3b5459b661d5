package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"sync"
	"testing"

	"golang.org/x/image/bmp"
)

// createTestImage creates a solid test image file and returns its path.
// The caller is responsible for removing the file.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	return writeTestPNG(t, createInMemoryImage(width, height, c))
}

// writeTestPNG encodes img to a temporary PNG file and returns its path.
func writeTestPNG(t *testing.T, img image.Image) string {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test-image-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to encode image: %v", err)
	}

	return tmpFile.Name()
}

// writeTestBMP encodes img to a temporary BMP file and returns its path.
func writeTestBMP(t *testing.T, img image.Image) string {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test-image-*.bmp")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := bmp.Encode(tmpFile, img); err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to encode image: %v", err)
	}

	return tmpFile.Name()
}

func TestNewImageCache(t *testing.T) {
	cache := NewImageCache()
	if cache == nil {
		t.Fatal("NewImageCache returned nil")
	}
	if cache.images == nil {
		t.Fatal("NewImageCache did not initialize images map")
	}
}

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 100, 100, color.RGBA{255, 0, 0, 255})
	defer os.Remove(imgPath)

	img1, format, err := cache.LoadWithFormat(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if format != "png" {
		t.Errorf("format: got %q, want png", format)
	}

	bounds := img1.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 100 {
		t.Errorf("unexpected dimensions: got %dx%d, want 100x100", bounds.Dx(), bounds.Dy())
	}

	// Second load should return cached image
	img2, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if img1 != img2 {
		t.Error("second Load did not return cached image")
	}
}

func TestImageCache_LoadBMP(t *testing.T) {
	cache := NewImageCache()
	imgPath := writeTestBMP(t, createInMemoryImage(30, 20, color.White))
	defer os.Remove(imgPath)

	img, format, err := cache.LoadWithFormat(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if format != "bmp" {
		t.Errorf("format: got %q, want bmp", format)
	}
	if img.Bounds().Dx() != 30 || img.Bounds().Dy() != 20 {
		t.Errorf("dimensions: got %dx%d, want 30x20", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestImageCache_Load_NonExistent(t *testing.T) {
	cache := NewImageCache()
	_, err := cache.Load("/nonexistent/path/to/image.png")
	if err == nil {
		t.Error("Load should fail for non-existent file")
	}
}

func TestImageCache_Load_InvalidImage(t *testing.T) {
	cache := NewImageCache()

	tmpFile, err := os.CreateTemp("", "invalid-image-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.WriteString("not an image")
	tmpFile.Close()
	defer os.Remove(tmpFile.Name())

	_, err = cache.Load(tmpFile.Name())
	if err == nil {
		t.Error("Load should fail for invalid image data")
	}
}

func TestImageCache_ClearAndEvict(t *testing.T) {
	cache := NewImageCache()
	path1 := createTestImage(t, 10, 10, color.Black)
	path2 := createTestImage(t, 10, 10, color.White)
	defer os.Remove(path1)
	defer os.Remove(path2)

	for _, p := range []string{path1, path2} {
		if _, err := cache.Load(p); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
	}
	if cache.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", cache.Len())
	}

	cache.Evict(path1)
	cache.Evict("/nonexistent/path")
	if cache.Len() != 1 {
		t.Errorf("Len after Evict: got %d, want 1", cache.Len())
	}

	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("Len after Clear: got %d, want 0", cache.Len())
	}
}

func TestImageCache_ConcurrentAccess(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{128, 128, 128, 255})
	defer os.Remove(imgPath)

	var wg sync.WaitGroup
	errs := make(chan error, 50)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := LoadRaster(cache, imgPath, RasterOptions{}); err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Load error: %v", err)
	}
}

func TestLoadImageInfo(t *testing.T) {
	img := createInMemoryImage(20, 10, color.Black).(*image.RGBA)
	for x := 2; x < 7; x++ {
		img.Set(x, 4, color.White)
	}
	imgPath := writeTestPNG(t, img)
	defer os.Remove(imgPath)

	cache := NewImageCache()
	info, err := LoadImageInfo(cache, imgPath, RasterOptions{})
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}

	if info.Width != 20 || info.Height != 10 {
		t.Errorf("dimensions: got %dx%d, want 20x10", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("format: got %q, want png", info.Format)
	}
	if info.FileSizeBytes <= 0 {
		t.Errorf("FileSizeBytes: got %d, want > 0", info.FileSizeBytes)
	}
	if info.ForegroundThreshold != 0xC0 {
		t.Errorf("ForegroundThreshold: got %#x, want 0xc0", info.ForegroundThreshold)
	}
	if info.ForegroundPixels != 5 {
		t.Errorf("ForegroundPixels: got %d, want 5", info.ForegroundPixels)
	}
}

func TestLoadImageInfo_Inverted(t *testing.T) {
	imgPath := createTestImage(t, 8, 8, color.White)
	defer os.Remove(imgPath)

	info, err := LoadImageInfo(NewImageCache(), imgPath, RasterOptions{Invert: true})
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}
	if info.ForegroundPixels != 0 {
		t.Errorf("inverted white image: got %d foreground pixels, want 0", info.ForegroundPixels)
	}
}

func TestLoadRaster_NonExistent(t *testing.T) {
	if _, err := LoadRaster(NewImageCache(), "/nonexistent/image.bmp", RasterOptions{}); err == nil {
		t.Error("LoadRaster should fail for non-existent file")
	}
}
