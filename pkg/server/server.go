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
	"net/http"

	"github.com/gorilla/mux"
	"github.com/nlnwa/webarc"
	log "github.com/sirupsen/logrus"
)

// Handler returns the http handler for the archive decoding API.
//
//	POST /extract?name=<resource>[&include=<prefix>][&exclude=<prefix>][&status=<code>]
//	GET  /health
func Handler(walker *webarc.Walker, logger log.FieldLogger, middleware ...func(http.Handler) http.Handler) http.Handler {
	if walker == nil {
		walker = webarc.NewWalker()
	}
	if logger == nil {
		logger = log.StandardLogger()
	}

	r := mux.NewRouter()
	for _, mw := range middleware {
		r.Use(mux.MiddlewareFunc(mw))
	}
	r.Handle("/extract", &extractHandler{walker: walker, logger: logger}).Methods(http.MethodPost)
	r.HandleFunc("/health", health).Methods(http.MethodGet)
	return r
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("ok\n"))
}
