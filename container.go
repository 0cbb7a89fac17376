/*
 * Copyright 2023 National Library of Norway.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *       http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package webarc

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/nlnwa/webarc/internal/countingreader"
)

var errContainerClosed = errors.New("webarc: container is closed")

// Container is an opened ARC or WARC file.
//
// Records are read in order with Next. A record is only valid until the next call to Next or Close.
type Container interface {
	Format() Format
	// Version is the version of the archive format, e.g. 1.0
	Version() string
	// Name is the resource name given when the container was opened.
	Name() string
	// Next returns the next record. At end of container io.EOF is returned.
	// Any other error is a *ContainerReadError and no more records can be read.
	Next() (RawRecord, error)
	// Close releases the current record. It does not close the underlying stream.
	Close() error
}

// RawRecord is one record as found in the container.
type RawRecord interface {
	Kind() RecordKind
	// URL is the URL of the captured resource
	URL() string
	// Type is the WARC-Type of WARC records. It is empty for ARC records.
	Type() string
	// ContentLength is the declared length of the record's content.
	ContentLength() int64
	// Fields returns the record's header fields.
	Fields() *Fields
	// StatusCode returns the http status code found by the container reader. Only ARC records have one.
	StatusCode() (int, bool)
	// Offset is the position of the record in the container stream.
	Offset() int64
	// Body returns the unread part of the record's content.
	Body() io.Reader
	// Close discards the rest of the body. It is safe to call Close more than once.
	Close() error
}

// OpenContainer opens r as a container of the given format. Records might be gzip compressed one by one, or the
// whole stream might be one gzip member.
//
// Errors are of type *ContainerOpenError.
func OpenContainer(r io.Reader, format Format, name string, opts ...Option) (Container, error) {
	return openContainer(r, format, name, newOptions(opts...))
}

func openContainer(r io.Reader, format Format, name string, o *options) (Container, error) {
	var (
		c   Container
		err error
	)
	switch format {
	case WARC:
		c, err = openWarcContainer(newFramer(r, o), name, o)
	case ARC:
		c, err = openArcContainer(newFramer(r, o), name, o)
	default:
		err = ErrUnsupportedFormat
	}
	if err != nil {
		return nil, &ContainerOpenError{Format: format, Name: name, Err: err}
	}
	return c, nil
}

type record struct {
	kind          RecordKind
	url           string
	recordType    string
	contentLength int64
	fields        *Fields
	statusCode    int
	hasStatusCode bool
	offset        int64
	body          *bufio.Reader
	closer        func() error
}

func (r *record) Kind() RecordKind        { return r.kind }
func (r *record) URL() string             { return r.url }
func (r *record) Type() string            { return r.recordType }
func (r *record) ContentLength() int64    { return r.contentLength }
func (r *record) Fields() *Fields         { return r.fields }
func (r *record) Offset() int64           { return r.offset }
func (r *record) Body() io.Reader         { return r.body }
func (r *record) StatusCode() (int, bool) { return r.statusCode, r.hasStatusCode }

func (r *record) String() string {
	return fmt.Sprintf("%s record: offset: %d, type: %s, url: %s", r.kind, r.offset, r.recordType, r.url)
}

func (r *record) Close() error {
	if r.closer != nil {
		err := r.closer()
		r.closer = nil
		return err
	}
	return nil
}

// framer finds record boundaries in a stream where each record might be a gzip member of its own.
type framer struct {
	opts         *options
	counter      *countingreader.Reader
	base         *bufio.Reader
	member       *gzip.Reader
	src          *bufio.Reader // decompressed member or base
	memberOffset int64
}

func newFramer(r io.Reader, opts *options) *framer {
	c := countingreader.New(r)
	b := bufio.NewReaderSize(c, opts.bufferSize)
	return &framer{
		opts:    opts,
		counter: c,
		base:    b,
		src:     b,
	}
}

// offset returns the position in the underlying stream of the next unread byte.
func (f *framer) offset() int64 {
	return f.counter.N() - int64(f.base.Buffered())
}

// next positions src at the first byte of the next record and returns its offset.
// Empty lines between records are skipped. io.EOF is returned at end of stream.
func (f *framer) next() (int64, error) {
	for {
		if f.member != nil {
			err := skipEmptyLines(f.src)
			if err == nil {
				return f.memberOffset, nil
			}
			if err != io.EOF {
				return f.memberOffset, err
			}
			_ = f.member.Close()
			f.member = nil
			f.src = f.base
		}

		if err := skipEmptyLines(f.base); err != nil {
			return f.offset(), err
		}
		offset := f.offset()
		magic, err := f.base.Peek(2)
		if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
			f.opts.logger.WithField("offset", offset).Debug("detected gzip record")
			g, err := gzip.NewReader(f.base)
			if err != nil {
				return offset, err
			}
			g.Multistream(false)
			f.member = g
			f.memberOffset = offset
			f.src = bufio.NewReaderSize(g, f.opts.bufferSize)
			continue
		}
		return offset, nil
	}
}

// discard skips one byte of src. It is used when searching for the start of a record.
func (f *framer) discard() error {
	_, err := f.src.Discard(1)
	return err
}

// body returns a reader limited to length bytes of src and a function discarding what is left of it.
func (f *framer) body(length int64, log func(format string, args ...interface{})) (*bufio.Reader, func() error) {
	limited := countingreader.NewLimited(f.src, length)
	closer := func() error {
		_, err := io.Copy(io.Discard, limited)
		if err == nil && limited.Truncated() {
			log("record truncated: %d of %d bytes", limited.N(), length)
		}
		return err
	}
	return bufio.NewReaderSize(limited, f.opts.bufferSize), closer
}

func (f *framer) close() {
	if f.member != nil {
		_ = f.member.Close()
		f.member = nil
	}
	f.src = nil
}

func skipEmptyLines(r *bufio.Reader) error {
	for {
		b, err := r.Peek(1)
		if err != nil {
			return err
		}
		if b[0] != '\r' && b[0] != '\n' {
			return nil
		}
		if _, err := r.Discard(1); err != nil {
			return err
		}
	}
}
