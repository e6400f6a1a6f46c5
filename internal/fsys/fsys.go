// Package fsys is the filesystem collaborator: directory listing, file
// reads and stats against the local disk.
package fsys

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

type FileType int

const (
	Unknown FileType = iota
	File
	Directory
	SymbolicLink
)

func (t FileType) String() string {
	switch t {
	case File:
		return "file"
	case Directory:
		return "directory"
	case SymbolicLink:
		return "symlink"
	}
	return "unknown"
}

type FileStat struct {
	Type    FileType
	Size    int64
	ModTime time.Time
}

type DirEntry struct {
	Name string
	Type FileType
}

// Disk reads the local filesystem. The zero value is ready to use.
type Disk struct{}

func (Disk) Stat(path string) (FileStat, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileStat{}, classify(err)
	}
	return statOf(info), nil
}

func (Disk) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, classify(err)
	}
	return data, nil
}

// ReadDir lists path, skipping hidden entries (names starting with "."),
// and reports each child's type by following symlinks.
func (d Disk) ReadDir(path string) ([]DirEntry, error) {
	children, err := os.ReadDir(path)
	if err != nil {
		return nil, classify(err)
	}

	var result []DirEntry
	for _, child := range children {
		name := normalizeName(child.Name())
		if IsHidden(name) {
			continue
		}
		st, err := d.Stat(filepath.Join(path, child.Name()))
		if err != nil {
			return nil, err
		}
		result = append(result, DirEntry{Name: name, Type: st.Type})
	}
	return result, nil
}

// IsHidden reports whether a directory entry name is hidden.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func statOf(info os.FileInfo) FileStat {
	st := FileStat{Size: info.Size(), ModTime: info.ModTime()}
	mode := info.Mode()
	switch {
	case mode.IsRegular():
		st.Type = File
	case mode.IsDir():
		st.Type = Directory
	case mode&os.ModeSymlink != 0:
		st.Type = SymbolicLink
	}
	return st
}

// darwin hands back NFD names; everything else in the tree compares NFC.
func normalizeName(name string) string {
	if runtime.GOOS != "darwin" {
		return name
	}
	return norm.NFC.String(name)
}
