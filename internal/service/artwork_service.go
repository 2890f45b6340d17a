package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/portrait-next/internal/logger"
	"github.com/portrait-next/internal/models"
	"github.com/portrait-next/internal/repository"
)

// ArtworkService 画作文件服务
// 每单一条画作记录，路径列保存 "{订单ID}/{文件名}" 的有序逗号列表
type ArtworkService struct {
	artworkRepo  repository.ArtworkRepository
	orderRepo    repository.OrderRepository
	root         string
	maxSize      int64
	allowedTypes []string
}

// NewArtworkService 创建画作服务
func NewArtworkService(
	artworkRepo repository.ArtworkRepository,
	orderRepo repository.OrderRepository,
	root string,
	maxSize int64,
	allowedTypes []string,
) *ArtworkService {
	return &ArtworkService{
		artworkRepo:  artworkRepo,
		orderRepo:    orderRepo,
		root:         root,
		maxSize:      maxSize,
		allowedTypes: allowedTypes,
	}
}

// Root 画作文件根目录
func (s *ArtworkService) Root() string {
	return s.root
}

// UploadResult 上传结果
type UploadResult struct {
	Saved   []string `json:"saved"`
	Skipped []string `json:"skipped"`
	Paths   []string `json:"paths"`
}

// Upload 上传画作文件
// 重名文件跳过并记录日志；只有磁盘写入成功的条目才追加进路径列表
func (s *ArtworkService) Upload(orderID uint, files []*multipart.FileHeader) (*UploadResult, error) {
	if len(files) == 0 {
		return nil, ErrArtworkNoFiles
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	artwork, err := s.artworkRepo.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if artwork == nil {
		return nil, ErrArtworkNotFound
	}

	paths := splitPathList(artwork.DesignFilePath)
	result := &UploadResult{Saved: []string{}, Skipped: []string{}}

	for _, file := range files {
		if err := s.validateFile(file); err != nil {
			return nil, err
		}

		name := sanitizeFilename(file.Filename)
		if name == "" {
			result.Skipped = append(result.Skipped, file.Filename)
			continue
		}
		entry := fmt.Sprintf("%d/%s", orderID, name)

		if containsPath(paths, entry) {
			logger.Infow("artwork_duplicate_skipped",
				"order_id", orderID,
				"filename", name,
			)
			result.Skipped = append(result.Skipped, name)
			continue
		}

		if err := s.saveFile(orderID, name, file); err != nil {
			logger.Warnw("artwork_save_failed",
				"order_id", orderID,
				"filename", name,
				"error", err,
			)
			result.Skipped = append(result.Skipped, name)
			continue
		}

		paths = append(paths, entry)
		result.Saved = append(result.Saved, entry)
	}

	if len(result.Saved) > 0 {
		joined := strings.Join(paths, ",")
		if err := s.artworkRepo.UpdatePathList(orderID, &joined); err != nil {
			return nil, err
		}
	}
	result.Paths = paths
	return result, nil
}

// Delete 删除单个画作文件条目
// 条目不在列表中时返回未找到；磁盘删除在列表更新后尽力执行
func (s *ArtworkService) Delete(orderID uint, filename string) error {
	artwork, err := s.artworkRepo.GetByOrderID(orderID)
	if err != nil {
		return err
	}
	if artwork == nil {
		return ErrArtworkNotFound
	}

	entry := fmt.Sprintf("%d/%s", orderID, sanitizeFilename(filename))
	paths := splitPathList(artwork.DesignFilePath)
	if !containsPath(paths, entry) {
		return ErrArtworkFileMissing
	}

	remaining := make([]string, 0, len(paths)-1)
	removed := false
	for _, p := range paths {
		if !removed && p == entry {
			removed = true
			continue
		}
		remaining = append(remaining, p)
	}

	var value *string
	if len(remaining) > 0 {
		joined := strings.Join(remaining, ",")
		value = &joined
	}
	if err := s.artworkRepo.UpdatePathList(orderID, value); err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.root, filepath.FromSlash(entry))); err != nil && !os.IsNotExist(err) {
		logger.Warnw("artwork_file_delete_failed",
			"order_id", orderID,
			"entry", entry,
			"error", err,
		)
	}
	return nil
}

// List 获取订单的画作文件条目
func (s *ArtworkService) List(orderID uint) (*models.Artwork, []string, error) {
	artwork, err := s.artworkRepo.GetByOrderID(orderID)
	if err != nil {
		return nil, nil, err
	}
	if artwork == nil {
		return nil, nil, ErrArtworkNotFound
	}
	return artwork, splitPathList(artwork.DesignFilePath), nil
}

func (s *ArtworkService) validateFile(file *multipart.FileHeader) error {
	if s.maxSize > 0 && file.Size > s.maxSize {
		return ErrArtworkFileTooLarge
	}
	if len(s.allowedTypes) == 0 {
		return nil
	}
	contentType := file.Header.Get("Content-Type")
	for _, t := range s.allowedTypes {
		if strings.EqualFold(t, contentType) {
			return nil
		}
	}
	return ErrArtworkTypeNotAllowed
}

func (s *ArtworkService) saveFile(orderID uint, name string, file *multipart.FileHeader) error {
	dir := filepath.Join(s.root, strconv.FormatUint(uint64(orderID), 10))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

func splitPathList(raw *string) []string {
	if raw == nil {
		return []string{}
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return []string{}
	}
	parts := strings.Split(trimmed, ",")
	paths := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

func containsPath(paths []string, entry string) bool {
	for _, p := range paths {
		if p == entry {
			return true
		}
	}
	return false
}

// sanitizeFilename 清理上传文件名，仅保留安全字符
func sanitizeFilename(filename string) string {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) && r < 128, unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	cleaned := strings.Trim(b.String(), "._")
	if cleaned == "." || cleaned == ".." {
		return ""
	}
	return cleaned
}
