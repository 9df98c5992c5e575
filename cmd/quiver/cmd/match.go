//  Copyright (c) 2019 Couchbase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// 		http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/blevesearch/mmap-go"
	"github.com/spf13/cobra"

	"github.com/couchbaselabs/quiver"
	"github.com/couchbaselabs/quiver/levenshtein"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match runs a fuzzy query against a dictionary file",
	Long:  `Match compiles an automaton for the query word and prints every line of the dictionary file within the requested edit distance.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) < 2 {
			return fmt.Errorf("word and dictionary path required")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ra, err := compileQuery(args[0])
		if err != nil {
			return err
		}

		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer func() {
			_ = f.Close()
		}()
		data, err := mmap.Map(f, mmap.RDONLY, 0)
		if err != nil {
			return err
		}
		defer func() {
			_ = data.Unmap()
		}()

		matchCount := 0
		for _, line := range bytes.Split(data, []byte{'\n'}) {
			if len(line) == 0 {
				continue
			}
			if ra.MatchesString(string(line)) {
				fmt.Printf("%s\n", line)
				matchCount++
			}
		}
		fmt.Printf("matched %d terms\n", matchCount)
		return nil
	},
}

// compileQuery runs the full pipeline for a query word: parametric
// automaton, minimization, compiled matcher.
func compileQuery(word string) (*quiver.RunAutomaton, error) {
	la, err := levenshtein.New(word, transpositions)
	if err != nil {
		return nil, err
	}
	a, err := la.ToAutomaton(distance, prefix)
	if err != nil {
		return nil, err
	}
	a, err = quiver.Minimize(a)
	if err != nil {
		return nil, err
	}
	return quiver.NewRunAutomaton(a)
}

func init() {
	RootCmd.AddCommand(matchCmd)
}
