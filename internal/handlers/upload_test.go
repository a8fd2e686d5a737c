package handlers

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"cattery/internal/storage"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x += 10 {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestGenerateThumbnailResizesWideImages(t *testing.T) {
	src := encodePNG(t, 800, 600)

	data, err := generateThumbnail(bytes.NewReader(src), thumbMaxWidth)
	if err != nil {
		t.Fatalf("generateThumbnail: %v", err)
	}
	if data == nil {
		t.Fatal("expected a thumbnail for an 800px image")
	}

	thumb, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	bounds := thumb.Bounds()
	if bounds.Dx() != thumbMaxWidth {
		t.Errorf("width: got %d, want %d", bounds.Dx(), thumbMaxWidth)
	}
	if bounds.Dy() != 300 {
		t.Errorf("height: got %d, want 300 (aspect preserved)", bounds.Dy())
	}
}

func TestGenerateThumbnailSkipsSmallImages(t *testing.T) {
	src := encodePNG(t, 200, 200)

	data, err := generateThumbnail(bytes.NewReader(src), thumbMaxWidth)
	if err != nil {
		t.Fatalf("generateThumbnail: %v", err)
	}
	if data != nil {
		t.Error("small images must not get a thumbnail")
	}
}

func TestGenerateThumbnailRejectsGarbage(t *testing.T) {
	if _, err := generateThumbnail(bytes.NewReader([]byte("not an image")), thumbMaxWidth); err == nil {
		t.Error("expected an error for non-image data")
	}
}

func TestUploadRejectsDisallowedType(t *testing.T) {
	// Sniffing rejects the file before any storage call, so a client
	// pointed at an unreachable endpoint is safe here.
	storageClient, err := storage.New("http://localhost:1", "us-east-1", "key", "secret", "bucket", "")
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	h := NewMedia(storageClient, nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "notes.txt")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	part.Write([]byte("plain text, not a cat photo"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	if resp := decodeResponse(t, rec); resp.Success {
		t.Error("expected success=false")
	}
}
