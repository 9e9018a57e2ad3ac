// Package storage 图片文件的本地磁盘存储
package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/logger"
)

const maxBaseNameLength = 50

// 扩展名合法之后还要检查文件内容，防止改后缀上传
var allowedMIME = []string{"image/jpeg", "image/png"}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

var (
	ErrNoFile       = apperrors.ErrInvalidParams.WithMessage("没有上传文件")
	ErrTooManyFiles = apperrors.ErrInvalidParams.WithMessage("上传文件数量超过限制")
)

// LocalStore 把上传的图片保存到本地目录，通过base_url对外访问
type LocalStore struct {
	dir          string
	baseURL      string
	maxFileSize  int64
	maxBatchSize int64
	maxFiles     int
	allowed      map[string]struct{}
	now          func() time.Time
}

// NewLocalStore 创建本地存储，目录不存在时自动创建
func NewLocalStore(cfg config.UploadConfig) (*LocalStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %w", err)
	}

	allowed := make(map[string]struct{}, len(cfg.AllowedExtensions))
	for _, ext := range cfg.AllowedExtensions {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}

	return &LocalStore{
		dir:          cfg.Dir,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		maxFileSize:  cfg.MaxFileSize,
		maxBatchSize: cfg.MaxBatchSize,
		maxFiles:     cfg.MaxFiles,
		allowed:      allowed,
		now:          time.Now,
	}, nil
}

// Save 保存单个文件，返回可访问的URL
func (s *LocalStore) Save(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", ErrNoFile
	}
	if err := s.check(fh); err != nil {
		return "", err
	}

	name, err := s.write(ctx, fh)
	if err != nil {
		return "", err
	}
	return s.URL(name), nil
}

// SaveBatch 保存多个文件
// 所有文件先通过数量、大小、类型检查才开始写盘；写到一半失败时删除已写入的文件
func (s *LocalStore) SaveBatch(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return nil, ErrNoFile
	}
	if len(files) > s.maxFiles {
		return nil, ErrTooManyFiles
	}

	var total int64
	for _, fh := range files {
		if err := s.check(fh); err != nil {
			return nil, err
		}
		total += fh.Size
	}
	if total > s.maxBatchSize {
		return nil, apperrors.ErrFileTooLarge.WithMessage("上传文件总大小超过限制")
	}

	written := make([]string, 0, len(files))
	for _, fh := range files {
		name, err := s.write(ctx, fh)
		if err != nil {
			s.remove(ctx, written)
			return nil, err
		}
		written = append(written, name)
	}

	urls := make([]string, len(written))
	for i, name := range written {
		urls[i] = s.URL(name)
	}
	return urls, nil
}

// Open 返回已存储文件的磁盘路径
// 只接受单层文件名，任何目录成分都按文件不存在处理
func (s *LocalStore) Open(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) ||
		strings.HasPrefix(filename, ".") || strings.ContainsAny(filename, `/\`) {
		return "", apperrors.ErrFileNotFound
	}

	path := filepath.Join(s.dir, filename)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", apperrors.ErrFileNotFound
	}
	return path, nil
}

// URL 文件名对应的访问地址
func (s *LocalStore) URL(name string) string {
	return s.baseURL + "/" + name
}

// check 大小、扩展名、内容类型
func (s *LocalStore) check(fh *multipart.FileHeader) error {
	if fh.Size > s.maxFileSize {
		return apperrors.ErrFileTooLarge.WithMessage(fmt.Sprintf("文件%s超过大小限制", fh.Filename))
	}

	if _, ok := s.allowed[extension(fh.Filename)]; !ok {
		return apperrors.ErrUnsupportedFile.WithMessage("只支持jpg、jpeg、png格式的图片")
	}

	f, err := fh.Open()
	if err != nil {
		return apperrors.New(apperrors.ErrCodeStorageError, "读取上传文件失败").Wrap(err)
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return apperrors.New(apperrors.ErrCodeStorageError, "读取上传文件失败").Wrap(err)
	}
	if !mimetype.EqualsAny(mt.String(), allowedMIME...) {
		return apperrors.ErrUnsupportedFile.WithMessage("文件内容不是jpg或png图片")
	}
	return nil
}

func (s *LocalStore) write(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	name := s.storedName(fh.Filename)

	src, err := fh.Open()
	if err != nil {
		return "", apperrors.New(apperrors.ErrCodeStorageError, "读取上传文件失败").Wrap(err)
	}
	defer src.Close()

	dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", apperrors.New(apperrors.ErrCodeStorageError, "保存文件失败").Wrap(err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		s.remove(ctx, []string{name})
		return "", apperrors.New(apperrors.ErrCodeStorageError, "保存文件失败").Wrap(err)
	}
	if err := dst.Close(); err != nil {
		s.remove(ctx, []string{name})
		return "", apperrors.New(apperrors.ErrCodeStorageError, "保存文件失败").Wrap(err)
	}

	logger.FromContext(ctx).Info("文件已保存",
		zap.String("original", fh.Filename),
		zap.String("stored", name),
		zap.Int64("size", fh.Size),
	)
	return name, nil
}

func (s *LocalStore) remove(ctx context.Context, names []string) {
	for _, name := range names {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			logger.FromContext(ctx).Warn("清理上传文件失败", zap.String("file", name), zap.Error(err))
		}
	}
}

// storedName 生成存储文件名：<清洗后的原名>_<毫秒时间戳>_<uuid前8位>.<扩展名>
func (s *LocalStore) storedName(original string) string {
	return fmt.Sprintf("%s_%d_%s.%s",
		sanitizeBase(original), s.now().UnixMilli(), uuid.NewString()[:8], extension(original))
}

func extension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

func sanitizeBase(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = strings.Trim(unsafeChars.ReplaceAllString(base, "_"), "_")
	if len(base) > maxBaseNameLength {
		base = base[:maxBaseNameLength]
	}
	if base == "" {
		return "file"
	}
	return base
}
