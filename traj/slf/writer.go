/*
 * writer.go, part of psigo.
 *
 * Copyright 2026 The psigo Authors
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

package slf

import (
	"compress/flate"
	"compress/gzip"
	"compress/lzw"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	psi "github.com/dstansby/psigo"
)

const (
	lzwLitwidth int = 8
	defaultPrec int = 6
)

// Writer writes streamlines to an SLF file.
type Writer struct {
	f         *os.File
	h         io.WriteCloser
	filename  string
	writeable bool
	prec      int
	mult      float64
	count     int
}

// Close flushes and closes the file.
func (S *Writer) Close() error {
	if S == nil || !S.writeable {
		return nil
	}
	S.writeable = false
	err := S.h.Close()
	if err2 := S.f.Close(); err == nil {
		err = err2
	}
	if err != nil {
		return Error{err.Error(), S.filename, []string{"Close"}, true}
	}
	return nil
}

// Count returns the number of streamlines written so far.
func (S *Writer) Count() int {
	return S.count
}

func coordsEncode(f [3]float64, mult float64) string {
	return fmt.Sprintf("%d %d %d\n", int64(math.RoundToEven(f[0]*mult)), int64(math.RoundToEven(f[1]*mult)), int64(math.RoundToEven(f[2]*mult)))
}

// WNext writes one streamline.
func (S *Writer) WNext(line *psi.Streamline) error {
	if !S.writeable {
		return Error{UnIniWrite, S.filename, []string{"WNext"}, true}
	}
	if line == nil || line.Len() == 0 {
		return Error{NilStreamline, S.filename, []string{"WNext"}, true}
	}
	var b strings.Builder
	for i := 0; i < line.Len(); i++ {
		b.WriteString(coordsEncode(line.Point(i), S.mult))
	}
	fmt.Fprintf(&b, "* %d %s %s\n", line.Seed, line.Backward, line.Forward)
	if _, err := io.WriteString(S.h, b.String()); err != nil {
		return Error{err.Error(), S.filename, []string{"WNext"}, true}
	}
	S.count++
	return nil
}

// Render writes all the lines. It makes a Writer a psi.Renderer.
func (S *Writer) Render(lines []*psi.Streamline) error {
	for _, l := range lines {
		if err := S.WNext(l); err != nil {
			return errDecorate(err, "Render")
		}
	}
	return nil
}

// NewWriter creates the file name and writes the header to it. The precision
// is taken from the "prec" key of the header, if present.
func NewWriter(name string, header map[string]string, compressionLevel ...int) (*Writer, error) {
	level := 9
	if len(compressionLevel) > 0 {
		level = compressionLevel[0]
	}
	S := new(Writer)
	S.filename = name
	var err error
	S.f, err = os.Create(name)
	if err != nil {
		return nil, Error{err.Error(), name, []string{"os.Create", "NewWriter"}, true}
	}
	var AnyNewWriter func(io.Writer) (io.WriteCloser, error)
	switch compression(name) {
	case 'l':
		AnyNewWriter = func(a io.Writer) (io.WriteCloser, error) { return lzw.NewWriter(a, lzw.MSB, lzwLitwidth), nil }
	case 'z':
		AnyNewWriter = func(a io.Writer) (io.WriteCloser, error) { return gzip.NewWriterLevel(a, level) }
	case 'r':
		AnyNewWriter = func(a io.Writer) (io.WriteCloser, error) { return flate.NewWriter(a, level) }
	default:
		AnyNewWriter = func(a io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(a, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
		}
	}
	S.h, err = AnyNewWriter(S.f)
	if err != nil {
		S.f.Close()
		return nil, Error{"Can't start compression " + err.Error(), name, []string{"NewWriter"}, true}
	}
	S.prec = defaultPrec
	hd := make(map[string]string, len(header)+1)
	for k, v := range header {
		hd[k] = v
	}
	if p, ok := hd["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err == nil && prec > 0 {
			S.prec = prec
		} else {
			logger.Warn("invalid precision, using the default", zap.String("file", name), zap.String("prec", p))
		}
	}
	hd["prec"] = strconv.Itoa(S.prec)
	S.mult = math.Pow(10, float64(S.prec))
	keys := make([]string, 0, len(hd))
	for k := range hd {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		if strings.ContainsAny(k, "=\n") || strings.Contains(hd[k], "\n") || strings.HasPrefix(k, "*") {
			S.h.Close()
			S.f.Close()
			return nil, Error{fmt.Sprintf("%s: key %q", MalformedHead, k), name, []string{"NewWriter"}, true}
		}
		fmt.Fprintf(&b, "%s=%s\n", k, hd[k])
	}
	fmt.Fprintf(&b, "** %s\n", defaultVersion)
	if _, err := io.WriteString(S.h, b.String()); err != nil {
		return nil, Error{err.Error(), name, []string{"NewWriter"}, true}
	}
	S.writeable = true
	return S, nil
}

// compression returns the letter selecting the compression of the file name.
func compression(name string) byte {
	if name == "" {
		return 's'
	}
	return strings.ToLower(name)[len(name)-1]
}

// WriteFile writes lines to the file name, with the given header.
func WriteFile(name string, header map[string]string, lines []*psi.Streamline) error {
	W, err := NewWriter(name, header)
	if err != nil {
		return errDecorate(err, "WriteFile")
	}
	if err := W.Render(lines); err != nil {
		W.Close()
		return errDecorate(err, "WriteFile")
	}
	return W.Close()
}

func errDecorate(err error, caller string) error {
	e, ok := err.(Error)
	if !ok {
		return err
	}
	e.deco = e.Decorate(caller)
	return e
}
