package log

import (
	"io"
	"os"
)

// writerOutput writes formatted entries to an io.Writer.
type writerOutput struct {
	w io.Writer
}

// NewWriterOutput returns an Output writing to w. Close is a no-op; the
// caller owns w.
func NewWriterOutput(w io.Writer) Output { return &writerOutput{w: w} }

// NewConsoleOutput returns an Output writing to stderr, keeping diagnostics
// out of the instrumented application's stdout.
func NewConsoleOutput() Output { return &writerOutput{w: os.Stderr} }

func (o *writerOutput) Write(_ *Entry, formatted []byte) error {
	_, err := o.w.Write(formatted)
	return err
}

func (o *writerOutput) Close() error { return nil }

// fileOutput appends formatted entries to a file it owns.
type fileOutput struct {
	f *os.File
}

// NewFileOutput returns an Output appending to the file at path, creating it
// if needed.
func NewFileOutput(path string) (Output, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &fileOutput{f: f}, nil
}

func (o *fileOutput) Write(_ *Entry, formatted []byte) error {
	_, err := o.f.Write(formatted)
	return err
}

func (o *fileOutput) Close() error { return o.f.Close() }
