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
	"io"

	log "github.com/sirupsen/logrus"
)

type options struct {
	logger     log.FieldLogger
	errSyntax  errorPolicy
	errHandler errorPolicy
	bufferSize int
}

// The errorPolicy constants describe how to handle errors.
type errorPolicy int8

const (
	ErrIgnore errorPolicy = 0 // Ignore the given error.
	ErrWarn   errorPolicy = 1 // Ignore given error, but log a warning.
	ErrFail   errorPolicy = 2 // Fail on given error.
)

func (p errorPolicy) String() string {
	switch p {
	case ErrIgnore:
		return "ignore"
	case ErrWarn:
		return "warn"
	case ErrFail:
		return "fail"
	default:
		return fmt.Sprintf("errorPolicy(%d)", int8(p))
	}
}

// ParseErrorPolicy returns the error policy named by one of "ignore", "warn" or "fail".
func ParseErrorPolicy(name string) (errorPolicy, error) {
	for _, p := range []errorPolicy{ErrIgnore, ErrWarn, ErrFail} {
		if p.String() == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown error policy '%s'", name)
}

// Option configures the container readers and the Walker.
type Option interface {
	apply(*options)
}

// EmptyOption does not alter the configuration. It can be embedded in
// another structure to build custom options.
type EmptyOption struct{}

func (EmptyOption) apply(*options) {}

// funcOption wraps a function that modifies options into an
// implementation of the Option interface.
type funcOption struct {
	f func(*options)
}

func (fo *funcOption) apply(po *options) {
	fo.f(po)
}

func newFuncOption(f func(*options)) *funcOption {
	return &funcOption{
		f: f,
	}
}

func discardLogger() log.FieldLogger {
	l := log.New()
	l.Out = io.Discard
	return l
}

func defaultOptions() options {
	return options{
		logger:     discardLogger(),
		errSyntax:  ErrWarn,
		errHandler: ErrWarn,
		bufferSize: 64 * 1024,
	}
}

func newOptions(opts ...Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt.apply(&o)
	}
	return &o
}

// WithLogger sets the logger used for recoverable errors and progress.
// defaults to a logger discarding all output
func WithLogger(logger log.FieldLogger) Option {
	return newFuncOption(func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	})
}

// WithSyntaxErrorPolicy sets the policy for handling framing errors in the container, like bytes between records or
// missing carriage returns.
// defaults to ErrWarn
func WithSyntaxErrorPolicy(policy errorPolicy) Option {
	return newFuncOption(func(o *options) {
		o.errSyntax = policy
	})
}

// WithHandlerErrorPolicy sets the policy for errors returned by a ContentExtractor.
// ErrIgnore and ErrWarn continue with the next record, ErrFail aborts the walk.
// defaults to ErrWarn
func WithHandlerErrorPolicy(policy errorPolicy) Option {
	return newFuncOption(func(o *options) {
		o.errHandler = policy
	})
}

// WithBufferSize sets the size of the read buffer wrapping the input stream.
// defaults to 64 KiB
func WithBufferSize(size int) Option {
	return newFuncOption(func(o *options) {
		if size > 0 {
			o.bufferSize = size
		}
	})
}
