/*
 * zio.go, part of goCG.
 *
 * Copyright 2026 The goCG authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package zio opens and creates files that may be compressed, choosing
// the compression from the file extension: ".gz" for gzip, ".zst" for zstd.
package zio

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Format is a compression format.
type Format int

const (
	Plain Format = iota
	Gzip
	Zstd
)

// FormatOf returns the compression format for the file name, and the
// name without the compression extension.
func FormatOf(name string) (Format, string) {
	l := strings.ToLower(name)
	switch {
	case strings.HasSuffix(l, ".gz"):
		return Gzip, name[:len(name)-3]
	case strings.HasSuffix(l, ".zst"):
		return Zstd, name[:len(name)-4]
	}
	return Plain, name
}

// *zstd.Decoder doesn't implement io.ReadCloser.
type zstdql struct {
	closeql func()
	*zstd.Decoder
}

func (s zstdql) Close() error {
	s.closeql()
	return nil
}

type file struct {
	io.Reader
	io.Writer
	z io.Closer
	f *os.File
}

func (F *file) Close() error {
	var err error
	if F.z != nil {
		err = F.z.Close()
	}
	if e := F.f.Close(); err == nil {
		err = e
	}
	return err
}

// NewReader wraps r with a decompressor for the format f.
func NewReader(r io.Reader, f Format) (io.ReadCloser, error) {
	switch f {
	case Gzip:
		return gzip.NewReader(r)
	case Zstd:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zstdql{d.Close, d}, nil
	}
	return io.NopCloser(r), nil
}

// NewWriter wraps w with a compressor for the format f.
// The returned writer must be closed to flush the compressed stream.
func NewWriter(w io.Writer, f Format) (io.WriteCloser, error) {
	switch f {
	case Gzip:
		return gzip.NewWriterLevel(w, gzip.BestCompression)
	case Zstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	}
	return nopWriteCloser{w}, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// Open opens the file name for reading, decompressing it if needed.
func Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	format, _ := FormatOf(name)
	if format == Plain {
		return f, nil
	}
	r, err := NewReader(f, format)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &file{Reader: r, z: r, f: f}, nil
}

// Create creates the file name for writing, compressing it if needed.
// Closing the returned writer closes the file.
func Create(name string) (io.WriteCloser, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	format, _ := FormatOf(name)
	if format == Plain {
		return f, nil
	}
	w, err := NewWriter(f, format)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &file{Writer: w, z: w, f: f}, nil
}
