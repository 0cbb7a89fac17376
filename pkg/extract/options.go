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
	"io"

	log "github.com/sirupsen/logrus"
)

const (
	defaultPattern        = "%06{serial}d-%{name}s"
	defaultOpenFileSuffix = ".open"
	sidecarSuffix         = ".json"
)

type sinkOptions struct {
	pattern        string
	openFileSuffix string
	sidecar        bool
	selector       *Selector
	logger         log.FieldLogger
}

// SinkOption configures a FileSink.
type SinkOption interface {
	apply(*sinkOptions)
}

type funcSinkOption struct {
	f func(*sinkOptions)
}

func (fo *funcSinkOption) apply(po *sinkOptions) {
	fo.f(po)
}

func newFuncSinkOption(f func(*sinkOptions)) *funcSinkOption {
	return &funcSinkOption{
		f: f,
	}
}

func defaultSinkOptions() sinkOptions {
	l := log.New()
	l.Out = io.Discard
	return sinkOptions{
		pattern:        defaultPattern,
		openFileSuffix: defaultOpenFileSuffix,
		sidecar:        true,
		logger:         l,
	}
}

// WithFileNamePattern sets the pattern for names of extracted files. The pattern might contain a directory part.
// Available parameters are serial, name (last path segment of the resource's URL), host (of the resource's URL),
// id (record id or a random uuid), ts (capture time as 14 digits) and node (name of this host).
// defaults to "%06{serial}d-%{name}s"
func WithFileNamePattern(pattern string) SinkOption {
	return newFuncSinkOption(func(o *sinkOptions) {
		if pattern != "" {
			o.pattern = pattern
		}
	})
}

// WithOpenFileSuffix sets the suffix used on files while they are written.
// defaults to ".open"
func WithOpenFileSuffix(suffix string) SinkOption {
	return newFuncSinkOption(func(o *sinkOptions) {
		o.openFileSuffix = suffix
	})
}

// WithSidecar controls if the metadata of each extracted file is written as JSON next to it.
// defaults to true
func WithSidecar(sidecar bool) SinkOption {
	return newFuncSinkOption(func(o *sinkOptions) {
		o.sidecar = sidecar
	})
}

// WithSelector sets the selector deciding which records to extract.
// defaults to extracting every record
func WithSelector(selector *Selector) SinkOption {
	return newFuncSinkOption(func(o *sinkOptions) {
		o.selector = selector
	})
}

// WithLogger sets the logger.
// defaults to a logger discarding all output
func WithLogger(logger log.FieldLogger) SinkOption {
	return newFuncSinkOption(func(o *sinkOptions) {
		if logger != nil {
			o.logger = logger
		}
	})
}
