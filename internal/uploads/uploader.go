// Package uploads stores attachment files on disk under a per-user
// namespace and resolves public URLs for them.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"quoteforge/internal/models"
)

// MaxFileBytes is the per-file size ceiling.
const MaxFileBytes = 10 << 20 // 10 MiB

// Incoming is one file of an upload batch.
type Incoming struct {
	Name   string
	Type   string
	Size   int64
	Reader io.Reader
}

// Skipped records a file that did not make it into storage. Skips are
// user-visible notices, never a failure of the batch.
type Skipped struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Service writes attachments below baseDir and serves them under publicBase.
type Service struct {
	baseDir    string
	publicBase string
	logger     *log.Logger

	// guards unique-path selection within one process
	mu sync.Mutex
}

// NewService builds an uploader rooted at baseDir.
func NewService(baseDir, publicBase string, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		baseDir:    baseDir,
		publicBase: strings.TrimRight(publicBase, "/"),
		logger:     logger,
	}
}

// Upload stores a batch of files for the user. All uploads are issued
// concurrently and awaited together; a file exceeding the size ceiling or
// failing to store becomes a skip record while the rest of the batch
// proceeds. Returned files preserve the input order.
func (s *Service) Upload(ctx context.Context, userID int64, files []Incoming) ([]models.UploadedFile, []Skipped) {
	uploaded := make([]*models.UploadedFile, len(files))
	skipped := make([]*Skipped, len(files))

	var wg sync.WaitGroup
	for i, f := range files {
		if f.Size > MaxFileBytes {
			skipped[i] = &Skipped{Name: f.Name, Reason: fmt.Sprintf("%s is larger than 10MB", f.Name)}
			continue
		}
		wg.Add(1)
		go func(i int, f Incoming) {
			defer wg.Done()
			stored, err := s.store(userID, f)
			if err != nil {
				s.logger.Error("upload failed", "file", f.Name, "err", err)
				skipped[i] = &Skipped{Name: f.Name, Reason: fmt.Sprintf("Failed to upload %s", f.Name)}
				return
			}
			uploaded[i] = stored
		}(i, f)
	}
	wg.Wait()

	outFiles := make([]models.UploadedFile, 0, len(files))
	outSkipped := make([]Skipped, 0)
	for i := range files {
		if uploaded[i] != nil {
			outFiles = append(outFiles, *uploaded[i])
		}
		if skipped[i] != nil {
			outSkipped = append(outSkipped, *skipped[i])
		}
	}
	return outFiles, outSkipped
}

func (s *Service) store(userID int64, f Incoming) (*models.UploadedFile, error) {
	name := filepath.Base(f.Name)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil, errors.New("invalid file name")
	}

	storedName := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), name)
	destDir := filepath.Join(s.baseDir, strconv.FormatInt(userID, 10))
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}

	out, storedName, err := s.createUnique(destDir, storedName)
	if err != nil {
		return nil, err
	}

	// Sniff the content type from the first bytes when the caller did not
	// provide one.
	head := make([]byte, 512)
	n, readErr := io.ReadFull(f.Reader, head)
	if readErr != nil && readErr != io.ErrUnexpectedEOF && readErr != io.EOF {
		out.Close()
		os.Remove(out.Name())
		return nil, fmt.Errorf("read file: %w", readErr)
	}
	contentType := f.Type
	if contentType == "" {
		contentType = http.DetectContentType(head[:n])
	}

	size := int64(n)
	if _, err := out.Write(head[:n]); err != nil {
		out.Close()
		os.Remove(out.Name())
		return nil, fmt.Errorf("write file: %w", err)
	}
	if readErr == nil {
		copied, err := io.Copy(out, f.Reader)
		if err != nil {
			out.Close()
			os.Remove(out.Name())
			return nil, fmt.Errorf("write file: %w", err)
		}
		size += copied
	}
	if err := out.Close(); err != nil {
		os.Remove(out.Name())
		return nil, fmt.Errorf("close file: %w", err)
	}

	id := path.Join(strconv.FormatInt(userID, 10), storedName)
	return &models.UploadedFile{
		ID:   id,
		Name: name,
		URL:  s.publicBase + "/" + id,
		Type: contentType,
		Size: size,
	}, nil
}

// createUnique opens a new file under dir, suffixing the name when a
// same-millisecond upload already claimed it.
func (s *Service) createUnique(dir, name string) (*os.File, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	candidate := name
	for idx := 0; idx <= 1000; idx++ {
		if idx > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", base, idx, ext)
		}
		out, err := os.OpenFile(filepath.Join(dir, candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return out, candidate, nil
		}
		if !os.IsExist(err) {
			return nil, "", fmt.Errorf("create file: %w", err)
		}
	}
	return nil, "", errors.New("could not allocate unique file name")
}

// Remove deletes a stored attachment by id. The id must resolve inside the
// owner's namespace; anything else is rejected.
func (s *Service) Remove(ctx context.Context, userID int64, id string) error {
	clean := path.Clean(id)
	prefix := strconv.FormatInt(userID, 10) + "/"
	if strings.Contains(clean, "..") || !strings.HasPrefix(clean, prefix) {
		return errors.New("file does not belong to user")
	}
	target := filepath.Join(s.baseDir, filepath.FromSlash(clean))
	if err := os.Remove(target); err != nil {
		return fmt.Errorf("remove file: %w", err)
	}
	// prune the user directory when it became empty
	_ = os.Remove(filepath.Dir(target))
	return nil
}

// StartJanitor prunes attachments older than retention on the given
// interval. Discarded uploads otherwise accumulate forever; retention <= 0
// disables pruning.
func (s *Service) StartJanitor(ctx context.Context, retention, interval time.Duration) {
	if retention <= 0 || interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.pruneOlderThan(retention); err != nil {
					s.logger.Warn("prune uploads failed", "err", err)
				}
			}
		}
	}()
}

func (s *Service) pruneOlderThan(retention time.Duration) error {
	cutoff := time.Now().Add(-retention)
	return filepath.Walk(s.baseDir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || !info.ModTime().Before(cutoff) {
			return nil
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("remove expired upload failed", "path", p, "err", err)
			return nil
		}
		_ = os.Remove(filepath.Dir(p))
		return nil
	})
}
