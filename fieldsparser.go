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
	"errors"
	"io"
	"mime"
)

var errUnexpectedEndOfHeader = errors.New("unexpected end of record header")

type fieldsParser struct {
	opts *options
}

// handleSyntaxError applies the syntax error policy. A non nil return value is fatal.
func (p *fieldsParser) handleSyntaxError(validation *Validation, err error) error {
	switch p.opts.errSyntax {
	case ErrWarn:
		validation.AddError(err)
	case ErrFail:
		return err
	}
	return nil
}

func (p *fieldsParser) parseLine(line []byte, wf *Fields, pos *position) error {
	// Support for ‘encoded-word’ mechanism of [RFC2047]
	d := mime.WordDecoder{}
	l, err := d.DecodeHeader(string(line))
	if err != nil {
		return newWrappedSyntaxError("error decoding line", pos, err)
	}
	line = []byte(l)

	name, value, ok := bytes.Cut(line, []byte{':'})
	if !ok {
		return newSyntaxError("could not parse header line. Missing ':' in "+string(name), pos)
	}

	// Repeated fields are resolved by last write wins
	wf.Set(string(bytes.Trim(name, sphtcrlf)), string(bytes.Trim(value, sphtcrlf)))
	return nil
}

// Parse reads header fields until an empty line. Lines might be terminated by LF or CRLF.
// Lines starting with space or tab continue the previous field.
func (p *fieldsParser) Parse(r *bufio.Reader, validation *Validation, pos *position) (*Fields, error) {
	wf := &Fields{}
	for {
		l, err := r.ReadBytes('\n')
		pos.incrLineNumber()
		if err != nil {
			if err == io.EOF {
				return wf, newWrappedSyntaxError("missing end of header fields", pos, errUnexpectedEndOfHeader)
			}
			return wf, err
		}
		if !bytes.HasSuffix(l, []byte(crlf)) {
			if err := p.handleSyntaxError(validation, newSyntaxError("missing carriage return", pos)); err != nil {
				return nil, err
			}
		}

		line := bytes.TrimRight(l, crlf)
		if len(line) == 0 {
			return wf, nil
		}

		// Check for continuation
		if (line[0] == sp || line[0] == ht) && len(*wf) > 0 {
			last := (*wf)[len(*wf)-1]
			last.Value = last.Value + " " + string(bytes.Trim(line, sphtcrlf))
			continue
		}

		if err := p.parseLine(line, wf, pos); err != nil {
			if err := p.handleSyntaxError(validation, err); err != nil {
				return nil, err
			}
		}
	}
}
