/*
 * Copyright 2021 National Library of Norway.
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
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/nlnwa/webarc"
	"github.com/nlnwa/webarc/internal"
	"github.com/nlnwa/webarc/internal/timestamp"
	"github.com/nlnwa/whatwg-url/url"
	"github.com/prometheus/tsdb/fileutil"
	log "github.com/sirupsen/logrus"
)

// FileSink is a webarc.ContentExtractor writing each payload to its own file.
//
// Files are written with the open file suffix and renamed when complete. If sidecars are enabled,
// the record's metadata is written as JSON to a file with the same name and the suffix '.json'.
type FileSink struct {
	dir    string
	opts   sinkOptions
	serial atomic.Int64
	files  atomic.Int64
}

// NewFileSink creates a FileSink writing to dir. The directory is created if it does not exist.
func NewFileSink(dir string, opts ...SinkOption) (*FileSink, error) {
	o := defaultSinkOptions()
	for _, opt := range opts {
		opt.apply(&o)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create directory for extracted files: %w", err)
	}
	return &FileSink{dir: dir, opts: o}, nil
}

// Dir returns the directory files are written to.
func (s *FileSink) Dir() string {
	return s.dir
}

// Count returns the number of files written.
func (s *FileSink) Count() int64 {
	return s.files.Load()
}

func (s *FileSink) ShouldHandle(md *webarc.Metadata) bool {
	return s.opts.selector.Match(md)
}

func (s *FileSink) Handle(ctx context.Context, payload io.Reader, md *webarc.Metadata) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name := s.fileName(md)
	finalPath := filepath.Join(s.dir, name)
	if err := os.MkdirAll(filepath.Dir(finalPath), 0o755); err != nil {
		return err
	}

	openPath := finalPath + s.opts.openFileSuffix
	f, err := os.OpenFile(openPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("could not create file for %s: %w", md.Get(webarc.ResourceName), err)
	}
	n, err := io.Copy(f, payload)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(openPath)
		return fmt.Errorf("could not write %s: %w", openPath, err)
	}
	if openPath != finalPath {
		if err := fileutil.Rename(openPath, finalPath); err != nil {
			return err
		}
	}

	if s.opts.sidecar {
		b, err := json.MarshalIndent(md, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(finalPath+sidecarSuffix, append(b, '\n'), 0o644); err != nil {
			return fmt.Errorf("could not write metadata for %s: %w", finalPath, err)
		}
	}

	s.files.Add(1)
	s.opts.logger.WithFields(log.Fields{
		"file": finalPath,
		"url":  md.Get(webarc.ResourceName),
		"size": n,
	}).Debug("Extracted record")
	return nil
}

func (s *FileSink) fileName(md *webarc.Metadata) string {
	resource := md.Get(webarc.ResourceName)
	var host, p string
	if u, err := url.Parse(resource); err == nil {
		host = u.Hostname()
		p = u.Pathname()
	} else {
		p = resource
	}

	params := map[string]any{
		"serial": s.serial.Add(1),
		"name":   baseName(p),
		"host":   sanitize(host, "nohost"),
		"id":     recordId(md),
		"ts":     captureTime(md),
		"node":   internal.HostName(),
	}
	return internal.Sprintt(s.opts.pattern, params)
}

func baseName(p string) string {
	return sanitize(path.Base(p), "index")
}

// sanitize replaces characters which are not safe in file names.
func sanitize(s, fallback string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r < 0x20, r == 0x7f:
			return -1
		case r == '/', r == '\\', r == ':', r == '*', r == '?', r == '"', r == '<', r == '>', r == '|':
			return '_'
		}
		return r
	}, s)
	if s == "" || s == "." || s == ".." || s == "_" {
		return fallback
	}
	return s
}

func recordId(md *webarc.Metadata) string {
	id := md.Get("WARC-Record-ID")
	id = strings.TrimSuffix(strings.TrimPrefix(id, "<urn:uuid:"), ">")
	if u, err := uuid.Parse(id); err == nil {
		return u.String()
	}
	return uuid.New().String()
}

func captureTime(md *webarc.Metadata) string {
	for _, key := range []string{"WARC-Date", webarc.ArcCreationDate} {
		if ts, err := timestamp.Any14(md.Get(key)); err == nil {
			return ts
		}
	}
	return timestamp.UTC14(time.Now())
}
