/*
 * reader.go, part of psigo.
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
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/lzw"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	psi "github.com/dstansby/psigo"
	v3 "github.com/dstansby/psigo/v3"
)

// Reader reads streamlines from an SLF file.
type Reader struct {
	f        *os.File
	dec      io.ReadCloser
	h        *bufio.Reader
	filename string
	prec     int
	mult     float64
	readable bool
}

// stdql gives the zstd decoder a Close method returning an error.
type stdql struct {
	closeql func()
	*zstd.Decoder
}

func (s stdql) Close() error {
	s.closeql()
	return nil
}

// New opens an SLF file for reading, and returns a pointer
// to the handle and a map with the header.
func New(name string) (*Reader, map[string]string, error) {
	S := new(Reader)
	S.filename = name
	var err error
	S.f, err = os.Open(name)
	if err != nil {
		return nil, nil, Error{err.Error(), name, []string{"os.Open", "New"}, true}
	}
	var AnyNewReader func(io.Reader) (io.ReadCloser, error)
	switch compression(name) {
	case 'l':
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) { return lzw.NewReader(a, lzw.MSB, lzwLitwidth), nil }
	case 'z':
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) { return gzip.NewReader(a) }
	case 'r':
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) { return flate.NewReader(a), nil }
	default:
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) {
			r, err := zstd.NewReader(a)
			if err != nil {
				return nil, err
			}
			return stdql{r.Close, r}, nil
		}
	}
	S.dec, err = AnyNewReader(bufio.NewReader(S.f))
	if err != nil {
		S.f.Close()
		return nil, nil, Error{"Can't read header " + err.Error(), name, []string{"New"}, true}
	}
	S.h = bufio.NewReader(S.dec)
	m := make(map[string]string)
	for {
		str, err := S.h.ReadString('\n')
		if err != nil {
			S.close()
			return nil, nil, Error{"Can't read header " + err.Error(), name, []string{"New"}, true}
		}
		str = strings.TrimSuffix(str, "\n")
		if strings.HasPrefix(str, "**") {
			if f := strings.Fields(str); len(f) < 2 || f[1] != defaultVersion {
				S.close()
				return nil, nil, Error{fmt.Sprintf("%s: unsupported version line %q", MalformedHead, str), name, []string{"New"}, true}
			}
			break
		}
		kv := strings.SplitN(str, "=", 2)
		if len(kv) != 2 {
			S.close()
			return nil, nil, Error{fmt.Sprintf("%s: %q", MalformedHead, str), name, []string{"New"}, true}
		}
		m[kv[0]] = kv[1]
	}
	S.prec = defaultPrec
	if p, ok := m["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err == nil && prec > 0 {
			S.prec = prec
		} else {
			logger.Warn("invalid precision, assuming the default", zap.String("file", name), zap.String("prec", p))
		}
	}
	S.mult = math.Pow(10, float64(S.prec))
	S.readable = true
	return S, m, nil
}

// Readable returns true if the handle is readable (if it is possible to call Next on it)
func (S *Reader) Readable() bool {
	return S.readable
}

func coordsDecode(str string, temp *[3]float64, mult float64) error {
	s := strings.Fields(str)
	if len(s) != 3 {
		return fmt.Errorf("ill formated point line, %d fields: %q", len(s), str)
	}
	for i, v := range s {
		f, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("can't parse coordinate %d (%s): %w", i, v, err)
		}
		temp[i] = float64(f) / mult
	}
	return nil
}

func parseTerminator(str string, npoints int) (int, psi.Status, psi.Status, error) {
	f := strings.Fields(str)
	if len(f) != 4 || f[0] != "*" {
		return 0, 0, 0, fmt.Errorf("ill formated streamline terminator %q", str)
	}
	seed, err := strconv.Atoi(f[1])
	if err != nil || seed < 0 || seed >= npoints {
		return 0, 0, 0, fmt.Errorf("invalid seed row in %q", str)
	}
	bw, err := psi.ParseStatus(f[2])
	if err != nil {
		return 0, 0, 0, err
	}
	fw, err := psi.ParseStatus(f[3])
	if err != nil {
		return 0, 0, 0, err
	}
	return seed, bw, fw, nil
}

// Next reads the next streamline. At the end of the file it returns an error
// for which IsEOF is true, and closes the reader.
func (S *Reader) Next() (*psi.Streamline, error) {
	if !S.readable {
		return nil, Error{UnIniRead, S.filename, []string{"Next"}, true}
	}
	var pts [][3]float64
	var temp [3]float64
	for {
		str, err := S.h.ReadString('\n')
		if err == io.EOF && str == "" {
			if len(pts) == 0 {
				S.Close()
				return nil, newlastFrameError(S.filename, "Next")
			}
			return nil, Error{UnexpectedEOF, S.filename, []string{"Next"}, true}
		}
		if err != nil && err != io.EOF {
			return nil, Error{err.Error(), S.filename, []string{"Next"}, true}
		}
		str = strings.TrimSuffix(str, "\n")
		if strings.HasPrefix(str, "*") {
			if len(pts) == 0 {
				return nil, Error{WrongFormat + ": empty streamline", S.filename, []string{"Next"}, true}
			}
			seed, bw, fw, err := parseTerminator(str, len(pts))
			if err != nil {
				return nil, Error{WrongFormat + ": " + err.Error(), S.filename, []string{"Next"}, true}
			}
			return &psi.Streamline{Points: v3.FromVecs(pts), Seed: seed, Backward: bw, Forward: fw}, nil
		}
		if err := coordsDecode(str, &temp, S.mult); err != nil {
			return nil, Error{WrongFormat + ": " + err.Error(), S.filename, []string{"Next"}, true}
		}
		pts = append(pts, temp)
	}
}

// ReadAll reads all the remaining streamlines and closes the reader.
func (S *Reader) ReadAll() ([]*psi.Streamline, error) {
	var lines []*psi.Streamline
	for {
		l, err := S.Next()
		if err != nil {
			if IsEOF(err) {
				return lines, nil
			}
			S.Close()
			return lines, errDecorate(err, "ReadAll")
		}
		lines = append(lines, l)
	}
}

func (S *Reader) close() {
	S.dec.Close()
	S.f.Close()
}

// Close closes the object, and marks it as unreadable
func (S *Reader) Close() {
	if !S.readable {
		return
	}
	S.close()
	S.readable = false
}

// ReadFile reads all the streamlines in the file name, and its header.
func ReadFile(name string) ([]*psi.Streamline, map[string]string, error) {
	R, m, err := New(name)
	if err != nil {
		return nil, nil, errDecorate(err, "ReadFile")
	}
	lines, err := R.ReadAll()
	if err != nil {
		return nil, m, errDecorate(err, "ReadFile")
	}
	return lines, m, nil
}
