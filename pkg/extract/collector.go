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
	"io"
	"sync"

	"github.com/nlnwa/webarc"
	"github.com/nlnwa/webarc/internal/digest"
)

const payloadDigestKey = "WARC-Payload-Digest"

// Record is a record seen by a Collector.
type Record struct {
	Metadata *webarc.Metadata `json:"metadata"`
	Size     int64            `json:"size"`
	Digest   string           `json:"digest"`
}

// Collector is a webarc.ContentExtractor keeping the metadata, payload size and payload digest of every
// handled record in memory. It is safe for concurrent use.
type Collector struct {
	Selector *Selector

	mu      sync.Mutex
	records []Record
}

func (c *Collector) ShouldHandle(md *webarc.Metadata) bool {
	return c.Selector.Match(md)
}

func (c *Collector) Handle(_ context.Context, payload io.Reader, md *webarc.Metadata) error {
	r, err := Summarize(payload, md)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, r)
	return nil
}

// Summarize consumes payload and returns a Record with its size and digest.
//
// If md has a WARC-Payload-Digest with a supported algorithm, the digest is computed with that algorithm and
// encoding so the two can be compared. The declared value is not checked. Otherwise a base32 encoded sha1 digest
// is computed.
func Summarize(payload io.Reader, md *webarc.Metadata) (Record, error) {
	d, err := digest.New(md.Get(payloadDigestKey), digest.Base32)
	if err != nil {
		d, _ = digest.New("sha1", digest.Base32)
	}
	n, err := io.Copy(d, payload)
	if err != nil {
		return Record{}, err
	}
	return Record{
		Metadata: md,
		Size:     n,
		Digest:   d.Format(),
	}, nil
}

// Records returns the records collected so far.
func (c *Collector) Records() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Record(nil), c.records...)
}

// Reset forgets all collected records.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = nil
}
