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
	"context"
	"io"
)

// ContentExtractor receives the payload and metadata of records.
type ContentExtractor interface {
	// ShouldHandle is called before Handle. If false is returned the record is skipped.
	ShouldHandle(md *Metadata) bool
	// Handle processes the payload. The payload is only valid until Handle returns.
	Handle(ctx context.Context, payload io.Reader, md *Metadata) error
}

// ExtractorFunc is a ContentExtractor handling every record.
type ExtractorFunc func(ctx context.Context, payload io.Reader, md *Metadata) error

func (f ExtractorFunc) ShouldHandle(*Metadata) bool { return true }

func (f ExtractorFunc) Handle(ctx context.Context, payload io.Reader, md *Metadata) error {
	return f(ctx, payload, md)
}
