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
	"context"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
)

// Walker reads every record of a container and hands the payload of the interesting ones to a ContentExtractor.
//
// A Walker holds no state between calls to Walk and can be used by several goroutines.
type Walker struct {
	opts *options
}

// NewWalker creates a new Walker.
func NewWalker(opts ...Option) *Walker {
	return &Walker{opts: newOptions(opts...)}
}

// WalkStats counts what happened to the records of one container.
type WalkStats struct {
	Records int
	Skipped int
	Handled int
}

// Walk reads the container in r and calls ex for every record carrying a payload.
//
// The returned metadata describes the container itself: resourceName, Content-Type and the format version, e.g.
// WARC-Version. An error opening the container is a *ContainerOpenError and broken framing later in the stream is a
// *ContainerReadError. Problems with a single record are logged and do not stop the walk. If ctx is canceled the walk
// stops between records and ctx.Err() is returned.
func (w *Walker) Walk(ctx context.Context, r io.Reader, format Format, resourceName string, ex ContentExtractor) (*Metadata, error) {
	md, _, err := w.WalkWithStats(ctx, r, format, resourceName, ex)
	return md, err
}

// WalkWithStats is like Walk, but also returns record counts.
func (w *Walker) WalkWithStats(ctx context.Context, r io.Reader, format Format, resourceName string, ex ContentExtractor) (*Metadata, WalkStats, error) {
	var stats WalkStats
	c, err := openContainer(r, format, resourceName, w.opts)
	if err != nil {
		return nil, stats, err
	}
	defer c.Close()

	md := NewMetadata()
	md.Set(ResourceName, resourceName)
	md.Set(MetadataContentType, format.MediaType())
	md.Set(VersionKey(format), c.Version())

	logger := w.opts.logger.WithField("resource", resourceName)
	defer func() {
		logger.Debugf("walked %s %s container: %d records, %d skipped, %d handled",
			format, c.Version(), stats.Records, stats.Skipped, stats.Handled)
	}()

	for {
		if err := ctx.Err(); err != nil {
			return md, stats, err
		}
		rec, err := c.Next()
		if err == io.EOF {
			return md, stats, nil
		}
		if err != nil {
			return md, stats, err
		}
		stats.Records++

		handled, err := w.walkRecord(ctx, rec, resourceName, ex, logger)
		if err != nil {
			return md, stats, err
		}
		if handled {
			stats.Handled++
		} else {
			stats.Skipped++
		}
	}
}

// walkRecord processes one record. The record is closed on every return path.
func (w *Walker) walkRecord(ctx context.Context, rec RawRecord, resourceName string, ex ContentExtractor, logger log.FieldLogger) (handled bool, err error) {
	defer func() {
		if cerr := rec.Close(); cerr != nil && err == nil {
			err = &ContainerReadError{Offset: rec.Offset(), Err: cerr}
		}
	}()

	logger = logger.WithFields(log.Fields{"offset": rec.Offset(), "url": rec.URL(), "type": rec.Type()})

	md := NewMetadata()
	name := rec.URL()
	if name == "" {
		name = resourceName
	}
	md.Set(ResourceName, name)
	if err := Normalize(rec, md); err != nil {
		logger.WithError(err).Warn("could not normalize record header")
	}

	verdict := Classify(rec.Kind(), rec.Type(), rec.ContentLength())
	payload := rec.Body()
	switch verdict {
	case Skip:
		logger.Debug("skipping record")
		return false, nil
	case HttpTransactionBody:
		br, ok := payload.(*bufio.Reader)
		if !ok {
			br = bufio.NewReader(payload)
			payload = br
		}
		tx, err := ParseHttpHeader(br)
		if err != nil {
			logger.WithError(err).Warn("invalid http header")
		}
		if err := MergeHttpTransaction(tx, md); err != nil {
			logger.WithError(err).Warn("could not merge http header")
		}
	}

	if ex == nil || !ex.ShouldHandle(md) {
		logger.Debug("record not selected")
		return false, nil
	}
	if err := ex.Handle(ctx, payload, md); err != nil {
		switch w.opts.errHandler {
		case ErrFail:
			return false, fmt.Errorf("webarc: failed handling record at offset %d: %w", rec.Offset(), err)
		case ErrWarn:
			logger.WithError(err).Warn("failed handling record")
		}
	}
	return true, nil
}
