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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nlnwa/webarc"
	log "github.com/sirupsen/logrus"
)

// AutoExtractor watches directories for archive files and walks every new or modified file into a content
// extractor.
type AutoExtractor struct {
	walker  *webarc.Walker
	ex      webarc.ContentExtractor
	opts    options
	watcher *fsnotify.Watcher

	ctx    context.Context
	cancel context.CancelFunc
	jobs   chan string
	stopCh chan struct{}
	wg     sync.WaitGroup
	once   sync.Once

	mu      sync.Mutex
	pending map[string]*time.Timer
	depth   map[string]int
}

// New starts watching dirs. Files already present are processed immediately.
func New(walker *webarc.Walker, ex webarc.ContentExtractor, dirs []string, opts ...Option) (*AutoExtractor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if walker == nil {
		walker = webarc.NewWalker(webarc.WithLogger(o.logger))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &AutoExtractor{
		walker:  walker,
		ex:      ex,
		opts:    o,
		watcher: watcher,
		ctx:     ctx,
		cancel:  cancel,
		jobs:    make(chan string, o.workers),
		stopCh:  make(chan struct{}),
		pending: make(map[string]*time.Timer),
		depth:   make(map[string]int),
	}

	for i := 0; i < o.workers; i++ {
		a.wg.Add(1)
		go a.worker()
	}
	a.wg.Add(1)
	go a.fileWatcher()

	for _, dir := range dirs {
		if err := a.addDir(filepath.Clean(dir), 0, 0); err != nil {
			a.Shutdown()
			return nil, err
		}
	}
	return a, nil
}

// Shutdown stops watching and waits for files being processed. Files waiting in the queue are dropped.
func (a *AutoExtractor) Shutdown() {
	a.once.Do(func() {
		close(a.stopCh)
		a.cancel()
		_ = a.watcher.Close()

		a.mu.Lock()
		for path, t := range a.pending {
			t.Stop()
			delete(a.pending, path)
		}
		a.mu.Unlock()

		a.wg.Wait()
	})
}

func (a *AutoExtractor) fileWatcher() {
	defer a.wg.Done()
	for {
		select {
		case <-a.stopCh:
			return
		case event, ok := <-a.watcher.Events:
			if !ok {
				return
			}
			a.handleEvent(event)
		case err, ok := <-a.watcher.Errors:
			if !ok {
				return
			}
			a.opts.logger.WithError(err).Warn("watcher error")
		}
	}
}

func (a *AutoExtractor) handleEvent(event fsnotify.Event) {
	if skip(event.Name) {
		return
	}

	switch {
	case event.Op&fsnotify.Write == fsnotify.Write:
		a.opts.logger.Debugf("modified file: %v", event.Name)
		a.queue(event.Name, a.opts.settleDelay)
	case event.Op&fsnotify.Create == fsnotify.Create:
		fStat, err := os.Stat(event.Name)
		if err != nil {
			a.opts.logger.WithError(err).Debugf("created file disappeared: %v", event.Name)
			return
		}
		if !fStat.IsDir() {
			a.queue(event.Name, a.opts.settleDelay)
			return
		}

		a.mu.Lock()
		parentDepth, ok := a.depth[filepath.Dir(event.Name)]
		a.mu.Unlock()
		if !ok || parentDepth >= a.opts.watchDepth {
			return
		}
		if err := a.addDir(event.Name, parentDepth+1, a.opts.settleDelay); err != nil {
			a.opts.logger.WithError(err).Errorf("could not watch new directory '%v'", event.Name)
		}
	}
}

// addDir recursively adds a directory to the watcher and queues the files in it.
func (a *AutoExtractor) addDir(path string, currentDepth int, delay time.Duration) error {
	if err := a.watcher.Add(path); err != nil {
		return fmt.Errorf("could not watch '%s': %w", path, err)
	}
	a.mu.Lock()
	a.depth[path] = currentDepth
	a.mu.Unlock()

	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}
	for _, e := range entries {
		p := filepath.Join(path, e.Name())
		if skip(p) {
			continue
		}
		if !e.IsDir() {
			a.queue(p, delay)
		} else if currentDepth < a.opts.watchDepth {
			if err := a.addDir(p, currentDepth+1, delay); err != nil {
				return err
			}
		}
	}
	return nil
}

// queue schedules path to be processed after delay. Queuing a path already waiting restarts its delay.
func (a *AutoExtractor) queue(path string, delay time.Duration) {
	if _, err := webarc.FormatFromFileName(path); err != nil {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	select {
	case <-a.stopCh:
		return
	default:
	}
	if t, ok := a.pending[path]; ok && t.Stop() {
		t.Reset(delay)
		return
	}
	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		a.mu.Lock()
		if a.pending[path] == t {
			delete(a.pending, path)
		}
		a.mu.Unlock()
		select {
		case a.jobs <- path:
		case <-a.stopCh:
		}
	})
	a.pending[path] = t
}

func (a *AutoExtractor) worker() {
	defer a.wg.Done()
	for {
		select {
		case path := <-a.jobs:
			a.process(path)
		case <-a.stopCh:
			return
		}
	}
}

func (a *AutoExtractor) process(path string) {
	logger := a.opts.logger.WithFields(log.Fields{"file": path})
	md, err := a.extractFile(path)
	if err != nil {
		logger.WithError(err).Warn("extraction failed")
	} else {
		logger.Info("extracted file")
	}
	if a.opts.onDone != nil {
		a.opts.onDone(path, md, err)
	}
}

func (a *AutoExtractor) extractFile(path string) (*webarc.Metadata, error) {
	format, err := webarc.FormatFromFileName(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return a.walker.Walk(a.ctx, f, format, path, a.ex)
}

func skip(path string) bool {
	name := filepath.Base(path)
	return strings.HasSuffix(name, "~") || strings.HasSuffix(name, ".open") || strings.HasPrefix(name, ".")
}
