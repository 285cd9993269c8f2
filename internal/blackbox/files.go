package blackbox

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// SeqFile is one on-disk trace file of a session.
type SeqFile struct {
	Path string
	Seq  uint64
	Size int64
}

// ListFiles enumerates the existing <prefix>.<sequence> files of a session,
// ordered by sequence. Files whose suffix is not a plain non-negative integer
// are ignored.
func ListFiles(prefix string) ([]SeqFile, error) {
	dir := filepath.Dir(prefix)
	base := filepath.Base(prefix) + "."
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []SeqFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), base) {
			continue
		}
		seq, err := strconv.ParseUint(e.Name()[len(base):], 10, 64)
		if err != nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, SeqFile{Path: filepath.Join(dir, e.Name()), Seq: seq, Size: info.Size()})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Seq < files[j].Seq })
	return files, nil
}
