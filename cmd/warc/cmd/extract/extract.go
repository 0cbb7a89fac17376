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
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/nlnwa/webarc"
	"github.com/nlnwa/webarc/cmd/warc/internal"
	"github.com/nlnwa/webarc/pkg/extract"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <file>...",
		Short: "Extract the content of arc and warc files to a directory",
		Long: `Extract the payload of every record to its own file in the output directory.
The metadata of each record is written next to it as JSON.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("missing file name")
			}
			return runE(cmd.Context(), args)
		},
	}

	AddSinkFlags(cmd)

	return cmd
}

// AddSinkFlags adds the flags configuring extraction to files.
func AddSinkFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output-dir", "d", ".", "directory to write extracted files to")
	cmd.Flags().String("name-pattern", "", "pattern for names of extracted files (default \"%06{serial}d-%{name}s\")")
	cmd.Flags().StringSlice("include", nil, "media type prefixes to extract")
	cmd.Flags().StringSlice("exclude", nil, "media type prefixes not to extract")
	cmd.Flags().IntSlice("status", nil, "http status codes to extract")
	cmd.Flags().Bool("sidecar", true, "write metadata of each record as JSON")
}

// NewSink creates a FileSink configured by the flags added with AddSinkFlags.
func NewSink() (*extract.FileSink, error) {
	return extract.NewFileSink(viper.GetString("output-dir"),
		extract.WithFileNamePattern(viper.GetString("name-pattern")),
		extract.WithSidecar(viper.GetBool("sidecar")),
		extract.WithLogger(log.StandardLogger()),
		extract.WithSelector(&extract.Selector{
			Include:     viper.GetStringSlice("include"),
			Exclude:     viper.GetStringSlice("exclude"),
			StatusCodes: viper.GetIntSlice("status"),
		}),
	)
}

func runE(ctx context.Context, fileNames []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts, err := internal.WalkerOptions()
	if err != nil {
		return err
	}
	sink, err := NewSink()
	if err != nil {
		return err
	}
	walker := webarc.NewWalker(opts...)

	var failed int
	for _, fileName := range fileNames {
		stats, err := extractFile(ctx, walker, sink, fileName)
		logger := log.WithFields(log.Fields{
			"file":    fileName,
			"records": stats.Records,
			"handled": stats.Handled,
			"skipped": stats.Skipped,
		})
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			logger.WithError(err).Error("extraction failed")
			failed++
			continue
		}
		logger.Info("extracted file")
	}
	log.Infof("Wrote %d files to %s", sink.Count(), sink.Dir())
	if failed > 0 {
		return errors.New("extraction failed for one or more files")
	}
	return nil
}

func extractFile(ctx context.Context, walker *webarc.Walker, sink *extract.FileSink, fileName string) (webarc.WalkStats, error) {
	f, format, err := internal.OpenArchive(fileName)
	if err != nil {
		return webarc.WalkStats{}, err
	}
	defer f.Close()

	_, stats, err := walker.WalkWithStats(ctx, f, format, fileName, sink)
	return stats, err
}
