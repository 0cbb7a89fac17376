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
package watch

import (
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nlnwa/webarc"
	"github.com/nlnwa/webarc/cmd/warc/cmd/extract"
	"github.com/nlnwa/webarc/cmd/warc/internal"
	"github.com/nlnwa/webarc/pkg/autoextract"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <dir>...",
		Short: "Watch directories and extract new arc and warc files",
		Long:  `Watch directories and extract every arc and warc file found or written there until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("missing directory")
			}
			return runE(args)
		},
	}

	cmd.Flags().IntP("watch-depth", "w", 4, "The maximum depth of directories to watch")
	cmd.Flags().Int("workers", 8, "Number of files to extract in parallel")
	cmd.Flags().Duration("settle-delay", 10*time.Second, "How long a file must be unchanged before it is extracted")
	extract.AddSinkFlags(cmd)

	return cmd
}

func runE(dirs []string) error {
	opts, err := internal.WalkerOptions()
	if err != nil {
		return err
	}
	sink, err := extract.NewSink()
	if err != nil {
		return err
	}

	a, err := autoextract.New(webarc.NewWalker(opts...), sink, dirs,
		autoextract.WithWatchDepth(viper.GetInt("watch-depth")),
		autoextract.WithWorkers(viper.GetInt("workers")),
		autoextract.WithSettleDelay(viper.GetDuration("settle-delay")),
		autoextract.WithLogger(log.StandardLogger()))
	if err != nil {
		return err
	}
	log.Infof("Watching %v", dirs)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	<-sigs

	log.Info("Shutting down")
	a.Shutdown()
	log.Infof("Wrote %d files to %s", sink.Count(), sink.Dir())
	return nil
}
