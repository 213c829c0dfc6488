package audio

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	filePrefix = "tts_"
	fileSuffix = ".wav"

	MIMEType = "audio/wav"
)

var (
	ErrInvalidHeader = errors.New("invalid wav file (missing RIFF header)")
)

var riffHeader = []byte("RIFF")

// File describes a persisted audio file as observed on disk.
type File struct {
	Path string
	Name string

	MIMEType string

	Size     int64
	Duration *float64

	CreatedAt time.Time
}

// Store persists generated audio below a base directory.
type Store struct {
	path string

	stat   func(name string) (os.FileInfo, error)
	remove func(name string) error
}

func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("invalid path")
	}

	abs, err := filepath.Abs(path)

	if err != nil {
		return nil, err
	}

	return &Store{
		path: abs,

		stat:   os.Stat,
		remove: os.Remove,
	}, nil
}

func (s *Store) Path() string {
	return s.path
}

// Write stores data as a new uniquely named WAV file in dir, or in the
// base directory if dir is empty. Files without a RIFF header are removed
// again and reported as ErrInvalidHeader.
func (s *Store) Write(dir string, data []byte) (*File, error) {
	if dir == "" {
		dir = s.path
	}

	dir, err := filepath.Abs(dir)

	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	name, err := newName()

	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, name)

	if err := writeFile(path, data); err != nil {
		os.Remove(path)
		return nil, err
	}

	if err := validateHeader(path); err != nil {
		os.Remove(path)
		return nil, err
	}

	info, err := s.stat(path)

	if err != nil {
		os.Remove(path)
		return nil, err
	}

	file := &File{
		Path: path,
		Name: name,

		MIMEType: MIMEType,

		Size: info.Size(),

		CreatedAt: info.ModTime(),
	}

	if d, err := Duration(path); err == nil {
		file.Duration = &d
	} else {
		slog.Debug("unable to determine audio duration", "path", path, "error", err)
	}

	return file, nil
}

func newName() (string, error) {
	id, err := uuid.NewRandom()

	if err != nil {
		return "", err
	}

	return filePrefix + hex.EncodeToString(id[:]) + fileSuffix, nil
}

func isGenerated(name string) bool {
	return strings.HasPrefix(name, filePrefix) && strings.HasSuffix(name, fileSuffix)
}

func writeFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)

	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func validateHeader(path string) error {
	f, err := os.Open(path)

	if err != nil {
		return err
	}

	defer f.Close()

	header := make([]byte, len(riffHeader))

	if _, err := io.ReadFull(f, header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: %s", ErrInvalidHeader, path)
		}

		return err
	}

	if !bytes.Equal(header, riffHeader) {
		return fmt.Errorf("%w: %s", ErrInvalidHeader, path)
	}

	return nil
}
