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
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	// WARC header field names used by the reader
	WarcType      = "WARC-Type"
	WarcTargetURI = "WARC-Target-URI"
	WarcRecordID  = "WARC-Record-ID"
	ContentLength = "Content-Length"
)

var warcMagic = []byte("WARC/")

type warcContainer struct {
	opts    *options
	framer  *framer
	parser  *fieldsParser
	name    string
	version string
	pending *record
	current *record
	err     error
	closed  bool
}

func openWarcContainer(f *framer, name string, opts *options) (Container, error) {
	c := &warcContainer{
		opts:   opts,
		framer: f,
		parser: &fieldsParser{opts},
		name:   name,
	}

	// The container version is the version of the first record
	rec, version, err := c.readRecord()
	if err == io.EOF {
		return nil, errors.New("no WARC record found")
	}
	if err != nil {
		return nil, err
	}
	c.version = version
	c.pending = rec
	return c, nil
}

func (c *warcContainer) Format() Format  { return WARC }
func (c *warcContainer) Version() string { return c.version }
func (c *warcContainer) Name() string    { return c.name }

func (c *warcContainer) Next() (RawRecord, error) {
	if c.closed {
		return nil, errContainerClosed
	}
	if c.err != nil {
		return nil, c.err
	}
	if c.pending != nil {
		c.current, c.pending = c.pending, nil
		return c.current, nil
	}
	if c.current != nil {
		offset := c.current.offset
		err := c.current.Close()
		c.current = nil
		if err != nil {
			c.err = &ContainerReadError{Offset: offset, Err: err}
			return nil, c.err
		}
	}

	rec, _, err := c.readRecord()
	if err != nil {
		if err != io.EOF {
			err = &ContainerReadError{Offset: c.framer.offset(), Err: err}
		}
		c.err = err
		return nil, err
	}
	c.current = rec
	return rec, nil
}

// readRecord reads the next record header and positions the framer at the start of the record's content.
func (c *warcContainer) readRecord() (*record, string, error) {
	offset, err := c.findRecordStart()
	if err != nil {
		return nil, "", err
	}
	logger := c.opts.logger.WithField("offset", offset)
	validation := &Validation{}
	pos := &position{}

	l, err := c.framer.src.ReadBytes('\n')
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, "", err
	}
	pos.incrLineNumber()
	if !bytes.HasSuffix(l, []byte(crlf)) {
		if err := c.parser.handleSyntaxError(validation, newSyntaxError("missing carriage return on version line", pos)); err != nil {
			return nil, "", err
		}
	}
	version := string(bytes.Trim(l, sphtcrlf)[len(warcMagic):])

	wf, err := c.parser.Parse(c.framer.src, validation, pos)
	if err != nil {
		return nil, "", err
	}
	for _, e := range *validation {
		logger.Warn(e)
	}

	length, err := wf.GetInt64(ContentLength)
	if err != nil {
		return nil, "", fmt.Errorf("invalid %s: %w", ContentLength, err)
	}
	if length < 0 {
		return nil, "", fmt.Errorf("invalid %s: %d", ContentLength, length)
	}

	rec := &record{
		kind:          WARCRecord,
		url:           strings.Trim(wf.Get(WarcTargetURI), "<>"),
		recordType:    wf.Get(WarcType),
		contentLength: length,
		fields:        wf,
		offset:        offset,
	}
	rec.body, rec.closer = c.framer.body(length, logger.WithFields(log.Fields{"url": rec.url, "type": rec.recordType}).Warnf)
	return rec, version, nil
}

// findRecordStart skips bytes until the next record's version line.
func (c *warcContainer) findRecordStart() (int64, error) {
	var skipped int64
	var start int64 = -1
	for {
		offset, err := c.framer.next()
		if err != nil {
			if err == io.EOF && skipped > 0 {
				c.opts.logger.WithField("offset", start).Warnf("skipped %d bytes at end of container", skipped)
			}
			return offset, err
		}
		if start < 0 {
			start = offset
		}

		magic, err := c.framer.src.Peek(len(warcMagic))
		if err == nil && bytes.Equal(magic, warcMagic) {
			if skipped > 0 && c.opts.errSyntax >= ErrWarn {
				c.opts.logger.WithField("offset", start).Warnf("expected start of record, skipped %d bytes", skipped)
			}
			return offset, nil
		}
		if err != nil && err != io.EOF {
			return offset, err
		}
		if c.opts.errSyntax >= ErrFail {
			return offset, newSyntaxError("expected start of record", &position{})
		}
		if err := c.framer.discard(); err != nil {
			return offset, err
		}
		skipped++
	}
}

// Close releases the container. The current record is dropped without reading the rest of its content.
func (c *warcContainer) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.pending = nil
	c.current = nil
	c.framer.close()
	return nil
}
