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
package cat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/nlnwa/webarc"
	"github.com/nlnwa/webarc/cmd/warc/internal"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type conf struct {
	offset      int64
	recordCount int
	header      bool
	payload     bool
	fileName    string
	id          []string
}

func NewCommand() *cobra.Command {
	c := &conf{}
	var cmd = &cobra.Command{
		Use:   "cat <file>",
		Short: "Print the content of records from arc and warc files",
		Long: `Print the content of records. By default the raw body of each record is printed.
With --payload the http status line and headers are removed from bodies holding an http message.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("missing file name")
			}
			c.fileName = args[0]
			if c.offset >= 0 && c.recordCount == 0 {
				c.recordCount = 1
			}
			sort.Strings(c.id)
			return runE(cmd, c)
		},
	}

	cmd.Flags().Int64VarP(&c.offset, "offset", "o", -1, "record offset")
	cmd.Flags().IntVarP(&c.recordCount, "record-count", "c", 0, "The maximum number of records to show")
	cmd.Flags().BoolVar(&c.header, "header", false, "show record header")
	cmd.Flags().BoolVarP(&c.payload, "payload", "p", false, "strip http headers from the content")
	cmd.Flags().StringArrayVar(&c.id, "id", []string{}, "specify record ids to cat")

	return cmd
}

func runE(cmd *cobra.Command, c *conf) error {
	opts, err := internal.WalkerOptions()
	if err != nil {
		return err
	}
	f, format, err := internal.OpenArchive(c.fileName)
	if err != nil {
		return err
	}
	defer f.Close()

	container, err := webarc.OpenContainer(f, format, c.fileName, opts...)
	if err != nil {
		return err
	}
	defer container.Close()

	out := cmd.OutOrStdout()
	count := 0
	for {
		rec, err := container.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if rec.Offset() < c.offset {
			continue
		}
		if len(c.id) > 0 && !internal.Contains(c.id, rec.Fields().Get(webarc.WarcRecordID)) {
			continue
		}
		count++

		if err := printRecord(out, rec, c); err != nil {
			return err
		}

		if c.recordCount > 0 && count >= c.recordCount {
			return nil
		}
	}
}

func printRecord(w io.Writer, rec webarc.RawRecord, c *conf) error {
	if c.header {
		if _, err := rec.Fields().Write(w); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(w)
	}

	body := rec.Body()
	if c.payload && webarc.Classify(rec.Kind(), rec.Type(), rec.ContentLength()) == webarc.HttpTransactionBody {
		br := bufio.NewReader(body)
		if _, err := webarc.ParseHttpHeader(br); err != nil {
			log.WithError(err).WithField("offset", rec.Offset()).Warn("invalid http header")
		}
		body = br
	}
	if _, err := io.Copy(w, body); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
