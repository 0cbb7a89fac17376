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
package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/nlnwa/webarc"
	"github.com/nlnwa/webarc/cmd/warc/cmd/extract"
	"github.com/nlnwa/webarc/cmd/warc/internal"
	"github.com/nlnwa/webarc/pkg/autoextract"
	"github.com/nlnwa/webarc/pkg/server"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start a server decoding posted arc and warc files",
		Long: `Start a server decoding arc and warc files posted to /extract.

With --auto-extract the directories given by --watch-dir are watched and new files are extracted
to the output directory while the server runs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				viper.Set("watch-dir", args)
			}
			return runE()
		},
	}

	cmd.Flags().IntP("port", "p", 9999, "Server listening port")
	cmd.Flags().IntP("watch-depth", "w", 4, "The maximum depth of directories to watch")
	cmd.Flags().Bool("auto-extract", false, "Enable automatic extraction of files in watched directories")
	cmd.Flags().StringSlice("watch-dir", []string{"."}, "List of directories containing arc and warc files")
	extract.AddSinkFlags(cmd)

	return cmd
}

func runE() error {
	opts, err := internal.WalkerOptions()
	if err != nil {
		return err
	}
	walker := webarc.NewWalker(opts...)

	if viper.GetBool("auto-extract") {
		sink, err := extract.NewSink()
		if err != nil {
			return err
		}
		log.Infof("Starting autoextractor")
		autoextractor, err := autoextract.New(walker, sink, viper.GetStringSlice("watch-dir"),
			autoextract.WithWatchDepth(viper.GetInt("watch-depth")),
			autoextract.WithLogger(log.StandardLogger()))
		if err != nil {
			return err
		}
		defer autoextractor.Shutdown()
	}

	loggingMw := func(h http.Handler) http.Handler {
		return handlers.CombinedLoggingHandler(os.Stdout, h)
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%v", viper.GetInt("port")),
		Handler: server.Handler(walker, log.StandardLogger(), loggingMw),
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(ctx)
	}()

	log.Infof("Starting web server at http://localhost:%v", viper.GetInt("port"))
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
