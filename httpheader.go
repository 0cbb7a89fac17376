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
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

const (
	sphtcrlf = " \t\r\n" // Space, Tab, Carriage return, Newline
	crlf     = "\r\n"    // Carriage return, Newline
	sp       = ' '       // Space
	ht       = '\t'      // Tab

	httpToken = "HTTP"
)

// HeaderEncoding is the fixed encoding used for decoding http status lines and headers found in archive records.
var HeaderEncoding = charmap.ISO8859_1

// HttpTransaction is the status line and headers of an http message embedded in an archive record.
type HttpTransaction struct {
	StatusLine string
	StatusCode int
	// Header holds the headers in the order found. Repeated headers are all kept.
	Header Fields
}

// ParseHttpHeader reads an http status line and header block from r.
//
// Reading stops after the empty line terminating the header block, leaving r at the first payload byte.
// If r does not start with the HTTP token nothing is read, so the whole content is left as payload.
// ParseHttpHeader is lenient: the returned HttpTransaction is never nil and holds whatever could be parsed.
// The returned error is a *Validation listing the problems found (see ErrMalformedStatusLine,
// ErrMalformedHeaderBlock and ErrEncoding) or an error from r. A status code that can't be parsed is 0.
func ParseHttpHeader(r *bufio.Reader) (*HttpTransaction, error) {
	tx := &HttpTransaction{}
	validation := &Validation{}
	pos := &position{}

	if !startsWithHttp(r) {
		validation.AddError(newWrappedSyntaxError("missing http status line", pos.incrLineNumber(), ErrMalformedStatusLine))
		return tx, validation
	}

	line, eof, err := readHeaderLine(r, pos.incrLineNumber(), validation)
	if err != nil {
		validation.AddError(err)
		return tx, validation
	}
	tx.StatusLine = line
	tx.StatusCode, err = parseStatusCode(line)
	if err != nil {
		validation.AddError(newWrappedSyntaxError(fmt.Sprintf("invalid status line '%s'", line), pos, err))
	}
	if eof {
		if line != "" {
			validation.AddError(newWrappedSyntaxError("missing end of headers", pos, ErrMalformedHeaderBlock))
		}
		return tx, validation.asError()
	}

	for {
		line, eof, err = readHeaderLine(r, pos.incrLineNumber(), validation)
		if err != nil {
			validation.AddError(err)
			return tx, validation
		}
		if strings.Trim(line, sphtcrlf) == "" {
			if eof {
				validation.AddError(newWrappedSyntaxError("missing end of headers", pos, ErrMalformedHeaderBlock))
			}
			break
		}

		// Continuation line
		if (line[0] == sp || line[0] == ht) && len(tx.Header) > 0 {
			last := tx.Header[len(tx.Header)-1]
			last.Value = last.Value + " " + strings.Trim(line, sphtcrlf)
		} else if name, value, ok := strings.Cut(line, ":"); ok && strings.Trim(name, sphtcrlf) != "" {
			tx.Header.Add(strings.Trim(name, sphtcrlf), strings.Trim(value, sphtcrlf))
		} else {
			validation.AddError(newWrappedSyntaxError(fmt.Sprintf("skipping header line without name '%s'", line), pos, ErrMalformedHeaderBlock))
		}

		if eof {
			validation.AddError(newWrappedSyntaxError("missing end of headers", pos, ErrMalformedHeaderBlock))
			break
		}
	}
	return tx, validation.asError()
}

// startsWithHttp peeks at r to see if the next bytes are the HTTP token.
func startsWithHttp(r *bufio.Reader) bool {
	b, _ := r.Peek(len(httpToken))
	return string(b) == httpToken
}

// readHeaderLine reads one line terminated by LF or CRLF and decodes it with HeaderEncoding.
// eof is true if the stream ended before a line terminator was found.
func readHeaderLine(r *bufio.Reader, pos *position, validation *Validation) (line string, eof bool, err error) {
	l, err := r.ReadBytes('\n')
	if err == io.EOF {
		eof = true
		err = nil
	}
	if err != nil {
		return "", false, err
	}
	l = bytes.TrimRight(l, crlf)

	decoded, e := HeaderEncoding.NewDecoder().Bytes(l)
	if e != nil {
		validation.AddError(newWrappedSyntaxError(e.Error(), pos, ErrEncoding))
		return string(l), eof, nil
	}
	return string(decoded), eof, nil
}

// parseStatusCode returns the second token of a status line like 'HTTP/1.1 200 OK'.
func parseStatusCode(line string) (int, error) {
	if !strings.HasPrefix(line, httpToken) {
		return 0, ErrMalformedStatusLine
	}
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return 0, fmt.Errorf("%w: missing status code", ErrMalformedStatusLine)
	}
	code, err := strconv.Atoi(tokens[1])
	if err != nil || code < 0 {
		return 0, fmt.Errorf("%w: status code '%s' is not a number", ErrMalformedStatusLine, tokens[1])
	}
	return code, nil
}
