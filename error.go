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
	"errors"
	"fmt"
)

var (
	// ErrMalformedStatusLine is reported when the first line of an embedded http message does not start with HTTP
	// or does not carry a numeric status code.
	ErrMalformedStatusLine = errors.New("malformed http status line")

	// ErrMalformedHeaderBlock is reported when an embedded http header block is not terminated by an empty line.
	ErrMalformedHeaderBlock = errors.New("malformed http header block")

	// ErrEncoding is reported when header bytes could not be decoded.
	ErrEncoding = errors.New("could not decode header bytes")

	// ErrUnsupportedFormat is returned when a content type or file name does not map to ARC or WARC.
	ErrUnsupportedFormat = errors.New("unsupported archive format")

	// ErrReservedKey is reported when a header field would overwrite the resource name.
	ErrReservedKey = errors.New("reserved metadata key")
)

// SyntaxError is used for syntactical errors like wrong line endings
type SyntaxError struct {
	msg     string
	line    int
	wrapped error
}

func newSyntaxError(msg string, pos *position) *SyntaxError {
	return &SyntaxError{msg: msg, line: pos.lineNumber}
}

func newWrappedSyntaxError(msg string, pos *position, wrapped error) *SyntaxError {
	return &SyntaxError{msg: msg, line: pos.lineNumber, wrapped: wrapped}
}

func (e *SyntaxError) Error() string {
	if e.line > 0 {
		return fmt.Sprintf("webarc: %s at line %d", e.msg, e.line)
	} else {
		return fmt.Sprintf("webarc: %s", e.msg)
	}
}

func (e *SyntaxError) Unwrap() error {
	return e.wrapped
}

// ContainerOpenError is returned when a stream is not an openable archive of the declared format.
type ContainerOpenError struct {
	Format Format
	Name   string
	Err    error
}

func (e *ContainerOpenError) Error() string {
	return fmt.Sprintf("webarc: could not open %s container '%s': %v", e.Format, e.Name, e.Err)
}

func (e *ContainerOpenError) Unwrap() error {
	return e.Err
}

// ContainerReadError is returned when the container framing is corrupt. No more records can be read after it.
type ContainerReadError struct {
	Offset int64
	Err    error
}

func (e *ContainerReadError) Error() string {
	return fmt.Sprintf("webarc: error reading record at offset %d: %v", e.Offset, e.Err)
}

func (e *ContainerReadError) Unwrap() error {
	return e.Err
}
