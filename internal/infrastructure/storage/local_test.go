package storage

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

var (
	pngHeader  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
	jpegHeader = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
)

type upload struct {
	name    string
	content []byte
}

// fileHeaders 通过真实的multipart请求得到FileHeader
func fileHeaders(t *testing.T, field string, files ...upload) []*multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, f := range files {
		part, err := w.CreateFormFile(field, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File[field]
}

func newStore(t *testing.T) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(config.UploadConfig{
		Dir:               filepath.Join(t.TempDir(), "uploads"),
		BaseURL:           "http://localhost:8080/api/v1/upload-file/",
		MaxFileSize:       1 << 10,
		MaxBatchSize:      2 << 10,
		MaxFiles:          3,
		AllowedExtensions: []string{"jpg", "jpeg", "png"},
	})
	require.NoError(t, err)
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return s
}

func storedFiles(t *testing.T, s *LocalStore) []string {
	t.Helper()
	entries, err := os.ReadDir(s.dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestLocalStore_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("保存并生成文件名", func(t *testing.T) {
		s := newStore(t)
		fh := fileHeaders(t, "file", upload{"我的 封面(1).PNG", pngHeader})[0]

		url, err := s.Save(ctx, fh)
		require.NoError(t, err)
		assert.Regexp(t,
			regexp.MustCompile(`^http://localhost:8080/api/v1/upload-file/1_1700000000000_[0-9a-f-]{8}\.png$`),
			url)

		name := strings.TrimPrefix(url, "http://localhost:8080/api/v1/upload-file/")
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		require.NoError(t, err)
		assert.Equal(t, pngHeader, data)
	})

	t.Run("扩展名不在白名单", func(t *testing.T) {
		s := newStore(t)
		fh := fileHeaders(t, "file", upload{"doc.gif", pngHeader})[0]

		_, err := s.Save(ctx, fh)
		assert.Equal(t, apperrors.ErrCodeUnsupportedFile, apperrors.GetAppError(err).Code)
	})

	t.Run("内容与扩展名不符", func(t *testing.T) {
		s := newStore(t)
		fh := fileHeaders(t, "file", upload{"fake.jpg", []byte("#!/bin/sh\necho hi\n")})[0]

		_, err := s.Save(ctx, fh)
		assert.Equal(t, apperrors.ErrCodeUnsupportedFile, apperrors.GetAppError(err).Code)
		assert.Empty(t, storedFiles(t, s))
	})

	t.Run("单个文件超过大小限制", func(t *testing.T) {
		s := newStore(t)
		big := append(append([]byte{}, pngHeader...), make([]byte, 2<<10)...)
		fh := fileHeaders(t, "file", upload{"big.png", big})[0]

		_, err := s.Save(ctx, fh)
		assert.Equal(t, apperrors.ErrCodeFileTooLarge, apperrors.GetAppError(err).Code)
	})

	t.Run("没有文件", func(t *testing.T) {
		_, err := newStore(t).Save(ctx, nil)
		assert.ErrorIs(t, err, ErrNoFile)
	})
}

func TestLocalStore_SaveBatch(t *testing.T) {
	ctx := context.Background()
	padded := func(header []byte, n int) []byte {
		return append(append([]byte{}, header...), make([]byte, n)...)
	}

	t.Run("批量保存", func(t *testing.T) {
		s := newStore(t)
		files := fileHeaders(t, "files", upload{"a.png", pngHeader}, upload{"b.jpeg", jpegHeader})

		urls, err := s.SaveBatch(ctx, files)
		require.NoError(t, err)
		require.Len(t, urls, 2)
		assert.True(t, strings.HasSuffix(urls[0], ".png"))
		assert.True(t, strings.HasSuffix(urls[1], ".jpeg"))
		assert.Len(t, storedFiles(t, s), 2)
	})

	t.Run("文件数量超过限制", func(t *testing.T) {
		s := newStore(t)
		files := fileHeaders(t, "files",
			upload{"a.png", pngHeader}, upload{"b.png", pngHeader},
			upload{"c.png", pngHeader}, upload{"d.png", pngHeader})

		_, err := s.SaveBatch(ctx, files)
		assert.ErrorIs(t, err, ErrTooManyFiles)
	})

	t.Run("总大小超过限制时不写入任何文件", func(t *testing.T) {
		s := newStore(t)
		files := fileHeaders(t, "files",
			upload{"a.png", padded(pngHeader, 900)},
			upload{"b.png", padded(pngHeader, 900)},
			upload{"c.png", padded(pngHeader, 900)})

		_, err := s.SaveBatch(ctx, files)
		assert.Equal(t, apperrors.ErrCodeFileTooLarge, apperrors.GetAppError(err).Code)
		assert.Empty(t, storedFiles(t, s))
	})

	t.Run("其中一个类型不合法", func(t *testing.T) {
		s := newStore(t)
		files := fileHeaders(t, "files", upload{"a.png", pngHeader}, upload{"b.txt", []byte("hello")})

		_, err := s.SaveBatch(ctx, files)
		assert.Equal(t, apperrors.ErrCodeUnsupportedFile, apperrors.GetAppError(err).Code)
		assert.Empty(t, storedFiles(t, s))
	})
}

func TestLocalStore_Open(t *testing.T) {
	s := newStore(t)
	url, err := s.Save(context.Background(), fileHeaders(t, "file", upload{"cover.png", pngHeader})[0])
	require.NoError(t, err)
	name := filepath.Base(url)

	path, err := s.Open(name)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.dir, name), path)

	for _, bad := range []string{"", "../config.yaml", "..", ".hidden", "a/b.png", `a\b.png`, "missing.png"} {
		_, err := s.Open(bad)
		assert.ErrorIs(t, err, apperrors.ErrFileNotFound, bad)
	}
}

func TestSanitizeBase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"cover.png", "cover"},
		{"my cover.png", "my_cover"},
		{"../../etc/passwd.png", "passwd"},
		{"封面.png", "file"},
		{"__a--b__.jpg", "a--b"},
		{strings.Repeat("x", 80) + ".png", strings.Repeat("x", 50)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeBase(tt.in))
		})
	}
}
