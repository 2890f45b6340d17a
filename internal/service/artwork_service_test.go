package service

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/portrait-next/internal/repository"

	"gorm.io/gorm"
)

func newArtworkService(db *gorm.DB, root string) *ArtworkService {
	return NewArtworkService(
		repository.NewArtworkRepository(db),
		repository.NewOrderRepository(db),
		root,
		1<<20,
		[]string{"image/png", "image/jpeg"},
	)
}

// makeFileHeaders 通过真实的 multipart 往返构造文件头
func makeFileHeaders(t *testing.T, names ...string) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, name := range names {
		header := make(map[string][]string)
		header["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="images"; filename="%s"`, name)}
		header["Content-Type"] = []string{"image/png"}
		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("create part failed: %v", err)
		}
		if _, err := part.Write([]byte("fake png bytes for " + name)); err != nil {
			t.Fatalf("write part failed: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer failed: %v", err)
	}

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form failed: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["images"]
}

func TestUploadKeepsOrderAndSkipsDuplicates(t *testing.T) {
	db := newTestDB(t)
	order := seedOrder(t, db, nil)
	root := t.TempDir()
	svc := newArtworkService(db, root)

	first, err := svc.Upload(order.ID, makeFileHeaders(t, "class1.png", "class2.png"))
	if err != nil {
		t.Fatalf("first upload failed: %v", err)
	}
	if len(first.Saved) != 2 {
		t.Fatalf("expected 2 saved, got %d", len(first.Saved))
	}

	second, err := svc.Upload(order.ID, makeFileHeaders(t, "class2.png", "class3.png"))
	if err != nil {
		t.Fatalf("second upload failed: %v", err)
	}
	if len(second.Skipped) != 1 || second.Skipped[0] != "class2.png" {
		t.Fatalf("expected class2.png skipped, got %v", second.Skipped)
	}

	want := []string{
		fmt.Sprintf("%d/class1.png", order.ID),
		fmt.Sprintf("%d/class2.png", order.ID),
		fmt.Sprintf("%d/class3.png", order.ID),
	}
	if !reflect.DeepEqual(second.Paths, want) {
		t.Fatalf("expected ordered paths %v, got %v", want, second.Paths)
	}

	artwork, err := repository.NewArtworkRepository(db).GetByOrderID(order.ID)
	if err != nil {
		t.Fatalf("load artwork failed: %v", err)
	}
	joined := fmt.Sprintf("%d/class1.png,%d/class2.png,%d/class3.png", order.ID, order.ID, order.ID)
	if artwork.DesignFilePath == nil || *artwork.DesignFilePath != joined {
		t.Fatalf("expected stored list %q, got %v", joined, artwork.DesignFilePath)
	}

	for _, name := range []string{"class1.png", "class2.png", "class3.png"} {
		if _, err := os.Stat(filepath.Join(root, fmt.Sprint(order.ID), name)); err != nil {
			t.Fatalf("expected %s on disk: %v", name, err)
		}
	}
}

func TestUploadValidation(t *testing.T) {
	db := newTestDB(t)
	order := seedOrder(t, db, nil)
	svc := newArtworkService(db, t.TempDir())

	if _, err := svc.Upload(order.ID, nil); !errors.Is(err, ErrArtworkNoFiles) {
		t.Fatalf("expected ErrArtworkNoFiles, got %v", err)
	}
	if _, err := svc.Upload(9999, makeFileHeaders(t, "class1.png")); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}

	files := makeFileHeaders(t, "class1.png")
	files[0].Header.Set("Content-Type", "application/x-msdownload")
	if _, err := svc.Upload(order.ID, files); !errors.Is(err, ErrArtworkTypeNotAllowed) {
		t.Fatalf("expected ErrArtworkTypeNotAllowed, got %v", err)
	}
}

func TestDeleteArtworkEntryEmptiesToNull(t *testing.T) {
	db := newTestDB(t)
	order := seedOrder(t, db, nil)
	root := t.TempDir()
	svc := newArtworkService(db, root)

	if _, err := svc.Upload(order.ID, makeFileHeaders(t, "class1.png", "class2.png")); err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if err := svc.Delete(order.ID, "missing.png"); !errors.Is(err, ErrArtworkFileMissing) {
		t.Fatalf("expected ErrArtworkFileMissing, got %v", err)
	}

	if err := svc.Delete(order.ID, "class1.png"); err != nil {
		t.Fatalf("delete class1 failed: %v", err)
	}
	_, paths, err := svc.List(order.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(paths) != 1 || paths[0] != fmt.Sprintf("%d/class2.png", order.ID) {
		t.Fatalf("expected only class2 left, got %v", paths)
	}
	if _, err := os.Stat(filepath.Join(root, fmt.Sprint(order.ID), "class1.png")); !os.IsNotExist(err) {
		t.Fatalf("expected class1 removed from disk, err=%v", err)
	}

	if err := svc.Delete(order.ID, "class2.png"); err != nil {
		t.Fatalf("delete class2 failed: %v", err)
	}
	artwork, err := repository.NewArtworkRepository(db).GetByOrderID(order.ID)
	if err != nil {
		t.Fatalf("load artwork failed: %v", err)
	}
	if artwork.DesignFilePath != nil {
		t.Fatalf("expected NULL path list, got %q", *artwork.DesignFilePath)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"class photo.png":       "class_photo.png",
		"../../etc/passwd":      "passwd",
		`..\..\win\evil.png`:    "evil.png",
		"år 1 självporträtt.jpg": "r_1_sjlvportrtt.jpg",
		"...":                   "",
	}
	for input, want := range cases {
		if got := sanitizeFilename(input); got != want {
			t.Fatalf("sanitizeFilename(%q) = %q, want %q", input, got, want)
		}
	}
}
