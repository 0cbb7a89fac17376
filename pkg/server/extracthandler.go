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
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/nlnwa/webarc"
	"github.com/nlnwa/webarc/pkg/extract"
	log "github.com/sirupsen/logrus"
)

const contentTypeNdjson = "application/x-ndjson"

type extractHandler struct {
	walker *webarc.Walker
	logger log.FieldLogger
}

type containerLine struct {
	Container *webarc.Metadata `json:"container"`
}

type errorLine struct {
	Error string `json:"error"`
}

func (h *extractHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	format, err := webarc.FormatFromContentType(r.Header.Get("Content-Type"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	selector, err := parseSelector(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "request"
	}
	logger := h.logger.WithFields(log.Fields{"resource": name, "format": format})

	out := &ndjsonWriter{w: w}
	ex := &streamingExtractor{selector: selector, out: out}
	md, err := h.walker.Walk(r.Context(), r.Body, format, name, ex)

	var openErr *webarc.ContainerOpenError
	if errors.As(err, &openErr) && !out.started {
		logger.WithError(err).Info("could not open container")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		logger.WithError(err).Warn("walk failed")
		_ = out.write(&errorLine{Error: err.Error()})
		return
	}
	if err := out.write(&containerLine{Container: md}); err != nil {
		logger.WithError(err).Debug("could not write response")
	}
}

func parseSelector(r *http.Request) (*extract.Selector, error) {
	q := r.URL.Query()
	s := &extract.Selector{
		Include: q["include"],
		Exclude: q["exclude"],
	}
	for _, v := range q["status"] {
		code, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid status code '%s'", v)
		}
		s.StatusCodes = append(s.StatusCodes, code)
	}
	return s, nil
}

// streamingExtractor writes one line per record to the response.
type streamingExtractor struct {
	selector *extract.Selector
	out      *ndjsonWriter
}

func (e *streamingExtractor) ShouldHandle(md *webarc.Metadata) bool {
	return e.selector.Match(md)
}

func (e *streamingExtractor) Handle(_ context.Context, payload io.Reader, md *webarc.Metadata) error {
	rec, err := extract.Summarize(payload, md)
	if err != nil {
		return err
	}
	return e.out.write(&rec)
}

// ndjsonWriter writes the response header on first use and flushes after every line.
type ndjsonWriter struct {
	w       http.ResponseWriter
	started bool
}

func (n *ndjsonWriter) write(v any) error {
	if !n.started {
		n.w.Header().Set("Content-Type", contentTypeNdjson)
		n.w.WriteHeader(http.StatusOK)
		n.started = true
	}
	if err := json.NewEncoder(n.w).Encode(v); err != nil {
		return err
	}
	if f, ok := n.w.(http.Flusher); ok {
		f.Flush()
	}
	return nil
}
