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
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

// Format is the container format of an archive.
type Format uint8

const (
	ARC  Format = 1
	WARC Format = 2
)

const (
	// Media types used to declare the container format
	MediaTypeWarc = "application/warc"
	MediaTypeArc  = "application/x-internet-archive"
)

func (f Format) String() string {
	switch f {
	case ARC:
		return "ARC"
	case WARC:
		return "WARC"
	default:
		return "unknown"
	}
}

// MediaType returns the media type declaring this format.
func (f Format) MediaType() string {
	switch f {
	case ARC:
		return MediaTypeArc
	case WARC:
		return MediaTypeWarc
	default:
		return ""
	}
}

// RecordKind returns the kind of records found in containers of this format.
func (f Format) RecordKind() RecordKind {
	if f == ARC {
		return ARCRecord
	}
	return WARCRecord
}

// FormatFromContentType selects the container format from a declared content type.
// Parameters are ignored.
func FormatFromContentType(contentType string) (Format, error) {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	}
	switch mt {
	case MediaTypeWarc:
		return WARC, nil
	case MediaTypeArc:
		return ARC, nil
	default:
		return 0, fmt.Errorf("%w: content type '%s'", ErrUnsupportedFormat, contentType)
	}
}

// FormatFromFileName selects the container format from a file name ending with .warc, .arc, .warc.gz or .arc.gz.
func FormatFromFileName(name string) (Format, error) {
	n := strings.TrimSuffix(strings.ToLower(filepath.Base(name)), ".gz")
	switch filepath.Ext(n) {
	case ".warc":
		return WARC, nil
	case ".arc":
		return ARC, nil
	default:
		return 0, fmt.Errorf("%w: file name '%s'", ErrUnsupportedFormat, name)
	}
}

// RecordKind tells which vocabulary a record's header fields use.
type RecordKind uint8

const (
	ARCRecord  RecordKind = 1
	WARCRecord RecordKind = 2
)

func (k RecordKind) String() string {
	switch k {
	case ARCRecord:
		return "arc"
	case WARCRecord:
		return "warc"
	default:
		return "unknown"
	}
}
