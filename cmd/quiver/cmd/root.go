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

import "github.com/spf13/cobra"

// RootCmd is the root of the quiver command-line tool.
var RootCmd = &cobra.Command{
	Use:   "quiver",
	Short: "Quiver compiles and runs fuzzy-match automata",
	Long:  `Quiver compiles Levenshtein automata for query words and runs them against candidate terms.`,
}

var distance uint8
var transpositions bool
var prefix string

func init() {
	RootCmd.PersistentFlags().Uint8VarP(&distance, "distance", "d", 1,
		"maximum edit distance (0-2)")
	RootCmd.PersistentFlags().BoolVarP(&transpositions, "transpositions", "t", false,
		"count adjacent transpositions as one edit")
	RootCmd.PersistentFlags().StringVarP(&prefix, "prefix", "p", "",
		"exact prefix required before the fuzzy match")
}
