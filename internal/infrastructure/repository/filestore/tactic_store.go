package filestore

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/tactics-board/internal/domain/tactic"
	"github.com/sourcegraph/conc/iter"
	"github.com/valyala/bytebufferpool"
)

var ErrTacticFileNotFound = crerr.New("tactic file not found")

const (
	filePrefix = "tactic_"
	fileSuffix = ".json"
)

// TacticStore keeps one JSON document per tactic in a directory.
type TacticStore struct {
	dir string
	mu  sync.RWMutex
}

func NewTacticStore(dir string) (*TacticStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, crerr.New("tactics directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, crerr.Wrapf(err, "create tactics directory %s", dir)
	}
	return &TacticStore{dir: dir}, nil
}

func (s *TacticStore) Dir() string { return s.dir }

// PathFor returns the file a tactic id is stored in.
func (s *TacticStore) PathFor(id int64) string {
	return filepath.Join(s.dir, filePrefix+strconv.FormatInt(id, 10)+fileSuffix)
}

func (s *TacticStore) GetByID(ctx context.Context, id int64) (tactic.Data, bool, error) {
	if err := ctx.Err(); err != nil {
		return tactic.Data{}, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	item, err := ReadFile(s.PathFor(id))
	if crerr.Is(err, ErrTacticFileNotFound) {
		return tactic.Data{}, false, nil
	}
	if err != nil {
		return tactic.Data{}, false, err
	}
	return item, true, nil
}

func (s *TacticStore) List(ctx context.Context) ([]tactic.Data, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, crerr.Wrapf(err, "list tactics directory %s", s.dir)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isTacticFile(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(s.dir, entry.Name()))
	}

	out, err := iter.MapErr(paths, func(path *string) (tactic.Data, error) {
		return ReadFile(*path)
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (s *TacticStore) Upsert(ctx context.Context, item tactic.Data) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return WriteFile(s.PathFor(item.ID), item)
}

func (s *TacticStore) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.PathFor(id)); err != nil && !crerr.Is(err, fs.ErrNotExist) {
		return crerr.Wrapf(err, "delete tactic %d", id)
	}
	return nil
}

// ReadFile decodes one tactic document. A missing file yields an error
// matching ErrTacticFileNotFound.
func ReadFile(path string) (tactic.Data, error) {
	raw, err := os.ReadFile(path)
	if crerr.Is(err, fs.ErrNotExist) {
		return tactic.Data{}, crerr.Wrapf(ErrTacticFileNotFound, "%s", path)
	}
	if err != nil {
		return tactic.Data{}, crerr.Wrapf(err, "read tactic file %s", path)
	}

	var item tactic.Data
	if err := sonic.Unmarshal(raw, &item); err != nil {
		return tactic.Data{}, crerr.Wrapf(err, "decode tactic file %s", path)
	}
	return item, nil
}

// WriteFile encodes item to path through a temporary file in the same
// directory, so readers never see a partial document.
func WriteFile(path string, item tactic.Data) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	enc := sonic.ConfigStd.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(item); err != nil {
		return crerr.Wrapf(err, "encode tactic %d", item.ID)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return crerr.Wrapf(err, "create temp file for %s", path)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.B); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return crerr.Wrapf(err, "write %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return crerr.Wrapf(err, "close %s", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return crerr.Wrapf(err, "replace %s", path)
	}
	return nil
}

func isTacticFile(name string) bool {
	if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
		return false
	}
	_, err := strconv.ParseInt(strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix), 10, 64)
	return err == nil
}
