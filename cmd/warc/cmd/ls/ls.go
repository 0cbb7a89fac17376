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
package ls

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/nlnwa/webarc"
	"github.com/nlnwa/webarc/cmd/warc/internal"
	"github.com/spf13/cobra"
)

type conf struct {
	offset      int64
	recordCount int
	fileName    string
	id          []string
}

func NewCommand() *cobra.Command {
	c := &conf{}
	var cmd = &cobra.Command{
		Use:   "ls <file>",
		Short: "List records from arc and warc files",
		Long: `List the records of a container with offset, kind, type, what a walk would do with the body and url.

The verdict is 'http' for records whose body is an http message, 'raw' for records extracted as is and
'skip' for records which are not extracted.`,
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
	cmd.Flags().StringArrayVar(&c.id, "id", []string{}, "specify record ids to ls")

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
			break
		}
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Count: %d\n", count)
			return err
		}
		if rec.Offset() < c.offset {
			continue
		}
		if len(c.id) > 0 && !internal.Contains(c.id, rec.Fields().Get(webarc.WarcRecordID)) {
			continue
		}
		count++

		printRecord(out, rec)

		if c.recordCount > 0 && count >= c.recordCount {
			break
		}
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Count: %d\n", count)
	return nil
}

var verdictColor = map[webarc.Verdict]*color.Color{
	webarc.Skip:                color.New(color.FgYellow),
	webarc.HttpTransactionBody: color.New(color.FgGreen),
	webarc.RawPassthrough:      color.New(color.FgCyan),
}

func printRecord(w io.Writer, rec webarc.RawRecord) {
	verdict := webarc.Classify(rec.Kind(), rec.Type(), rec.ContentLength())
	recordType := rec.Type()
	if recordType == "" {
		recordType = "-"
	}
	url := internal.CropString(rec.URL(), 100)
	_, _ = fmt.Fprintf(w, "%9d %-4s %-9.9s %s %s\n", rec.Offset(), rec.Kind(), recordType,
		verdictColor[verdict].Sprintf("%-4s", verdict), url)
}
