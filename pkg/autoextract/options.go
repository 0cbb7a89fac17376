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
package autoextract

import (
	"io"
	"time"

	"github.com/nlnwa/webarc"
	log "github.com/sirupsen/logrus"
)

type options struct {
	watchDepth  int
	workers     int
	settleDelay time.Duration
	logger      log.FieldLogger
	onDone      func(path string, md *webarc.Metadata, err error)
}

// Option configures an AutoExtractor.
type Option func(*options)

func defaultOptions() options {
	l := log.New()
	l.Out = io.Discard
	return options{
		watchDepth:  4,
		workers:     8,
		settleDelay: 10 * time.Second,
		logger:      l,
	}
}

// WithWatchDepth sets the maximum depth of subdirectories to watch. 0 means only the given directories.
func WithWatchDepth(depth int) Option {
	return func(o *options) {
		o.watchDepth = depth
	}
}

// WithWorkers sets the number of files processed in parallel.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithSettleDelay sets how long a file must be left unchanged before it is processed.
func WithSettleDelay(d time.Duration) Option {
	return func(o *options) {
		o.settleDelay = d
	}
}

func WithLogger(logger log.FieldLogger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithOnDone sets a function called after each file is processed.
func WithOnDone(f func(path string, md *webarc.Metadata, err error)) Option {
	return func(o *options) {
		o.onDone = f
	}
}
