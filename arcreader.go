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
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	// ARC header field keys
	ArcSubjectURI     = "subject-uri"
	ArcIPAddress      = "ip-address"
	ArcCreationDate   = "creation-date"
	ArcContentType    = "content-type"
	ArcLength         = "length"
	ArcResultCode     = "result-code"
	ArcChecksum       = "checksum"
	ArcLocation       = "location"
	ArcOffset         = "offset"
	ArcFilename       = "filename"
	ArcAbsoluteOffset = "absolute-offset"
)

const arcFiledescPrefix = "filedesc:"

var (
	arcV1Fields = []string{ArcSubjectURI, ArcIPAddress, ArcCreationDate, ArcContentType, ArcLength}
	arcV2Fields = []string{ArcSubjectURI, ArcIPAddress, ArcCreationDate, ArcContentType, ArcResultCode, ArcChecksum,
		ArcLocation, ArcOffset, ArcFilename, ArcLength}

	// column names used in the field specification line of the version block
	arcColumnNames = map[string]string{
		"url":            ArcSubjectURI,
		"ip-address":     ArcIPAddress,
		"archive-date":   ArcCreationDate,
		"content-type":   ArcContentType,
		"archive-length": ArcLength,
		"result-code":    ArcResultCode,
		"checksum":       ArcChecksum,
		"location":       ArcLocation,
		"offset":         ArcOffset,
		"filename":       ArcFilename,
	}
)

type arcContainer struct {
	opts    *options
	framer  *framer
	name    string
	version string
	columns []string
	current *record
	err     error
	closed  bool
}

// openArcContainer reads the version block. It is not returned as a record.
func openArcContainer(f *framer, name string, opts *options) (Container, error) {
	c := &arcContainer{
		opts:   opts,
		framer: f,
		name:   name,
	}

	offset, err := f.next()
	if err == io.EOF {
		return nil, errors.New("no ARC version block found")
	}
	if err != nil {
		return nil, err
	}
	line, err := readLine(f.src)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(line, arcFiledescPrefix) {
		return nil, fmt.Errorf("expected ARC version block, found '%s'", line)
	}
	tokens := strings.Fields(line)
	length, err := strconv.ParseInt(tokens[len(tokens)-1], 10, 64)
	if err != nil || length < 0 {
		return nil, fmt.Errorf("invalid length in ARC version block '%s'", line)
	}

	logger := opts.logger.WithField("offset", offset)
	body, closer := f.body(length, logger.Warnf)
	versionLine, err := readLine(body)
	if err != nil {
		return nil, fmt.Errorf("missing version in ARC version block: %w", err)
	}
	v := strings.Fields(versionLine)
	if len(v) < 2 {
		return nil, fmt.Errorf("invalid version line in ARC version block '%s'", versionLine)
	}
	c.version = v[0] + "." + v[1]

	switch v[0] {
	case "1":
		c.columns = arcV1Fields
	case "2":
		c.columns = arcV2Fields
	default:
		return nil, fmt.Errorf("unsupported ARC version %s", c.version)
	}
	if spec, err := readLine(body); err == nil {
		c.columns = c.parseFieldSpec(spec, logger)
	}

	if err := closer(); err != nil {
		return nil, err
	}
	return c, nil
}

// parseFieldSpec maps the column names of the version block to field keys.
// The default columns for the version are kept if the specification does not match them.
func (c *arcContainer) parseFieldSpec(spec string, logger log.FieldLogger) []string {
	names := strings.Fields(spec)
	if len(names) != len(c.columns) {
		logger.Warnf("ARC field specification '%s' does not match version %s", spec, c.version)
		return c.columns
	}
	columns := make([]string, len(names))
	for i, n := range names {
		if k, ok := arcColumnNames[strings.ToLower(n)]; ok {
			columns[i] = k
		} else {
			columns[i] = strings.ToLower(n)
		}
	}
	if columns[0] != ArcSubjectURI || columns[len(columns)-1] != ArcLength {
		logger.Warnf("ARC field specification '%s' must start with URL and end with length", spec)
		return c.columns
	}
	return columns
}

func (c *arcContainer) Format() Format  { return ARC }
func (c *arcContainer) Version() string { return c.version }
func (c *arcContainer) Name() string    { return c.name }

func (c *arcContainer) Next() (RawRecord, error) {
	if c.closed {
		return nil, errContainerClosed
	}
	if c.err != nil {
		return nil, c.err
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

	offset, err := c.framer.next()
	if err == nil {
		c.current, err = c.readRecord(offset)
	}
	if err != nil {
		if err != io.EOF {
			err = &ContainerReadError{Offset: offset, Err: err}
		}
		c.err = err
		return nil, err
	}
	return c.current, nil
}

func (c *arcContainer) readRecord(offset int64) (*record, error) {
	line, err := readLine(c.framer.src)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	tokens := strings.Fields(line)
	if len(tokens) < len(c.columns) {
		return nil, fmt.Errorf("malformed ARC record header '%s'", line)
	}

	// Unescaped spaces in the URL give extra tokens at the start of the line
	extra := len(tokens) - len(c.columns)
	url := strings.Join(tokens[:extra+1], "%20")
	tokens = append([]string{url}, tokens[extra+1:]...)

	wf := &Fields{}
	for i, k := range c.columns {
		wf.Set(k, tokens[i])
	}
	wf.Set(ArcAbsoluteOffset, strconv.FormatInt(offset, 10))

	length, err := wf.GetInt64(ArcLength)
	if err != nil || length < 0 {
		return nil, fmt.Errorf("invalid length in ARC record header '%s'", line)
	}

	rec := &record{
		kind:          ARCRecord,
		url:           url,
		contentLength: length,
		fields:        wf,
		hasStatusCode: true,
		offset:        offset,
	}
	logger := c.opts.logger.WithFields(log.Fields{"offset": offset, "url": url})
	rec.body, rec.closer = c.framer.body(length, logger.Warnf)

	lower := strings.ToLower(url)
	if length > 0 && (strings.HasPrefix(lower, "http:") || strings.HasPrefix(lower, "https:")) {
		tx, err := ParseHttpHeader(rec.body)
		if err != nil {
			logger.WithError(err).Warn("invalid http header in ARC record")
		}
		rec.statusCode = tx.StatusCode
	} else if code, err := strconv.Atoi(wf.Get(ArcResultCode)); err == nil {
		rec.statusCode = code
	}
	return rec, nil
}

// Close releases the container. The current record is dropped without reading the rest of its content.
func (c *arcContainer) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.current = nil
	c.framer.close()
	return nil
}

// readLine reads a line terminated by LF or CRLF. A last line without terminator is returned without error.
func readLine(r *bufio.Reader) (string, error) {
	l, err := r.ReadString('\n')
	if err != nil && !(err == io.EOF && l != "") {
		return "", err
	}
	return strings.TrimRight(l, crlf), nil
}
