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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/couchbaselabs/quiver"
	"github.com/couchbaselabs/quiver/levenshtein"
)

var svg bool

var dotCmd = &cobra.Command{
	Use:   "dot",
	Short: "Dot prints the minimized query automaton in graphviz form",
	Long:  `Dot compiles and minimizes the automaton for the query word and prints it in the GraphViz dot format, or as SVG with --svg.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			return fmt.Errorf("word required")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		la, err := levenshtein.New(args[0], transpositions)
		if err != nil {
			return err
		}
		a, err := la.ToAutomaton(distance, prefix)
		if err != nil {
			return err
		}
		a, err = quiver.Minimize(a)
		if err != nil {
			return err
		}
		if svg {
			return quiver.ExportSVG(a, os.Stdout)
		}
		return quiver.ExportDot(a, os.Stdout)
	},
}

func init() {
	dotCmd.Flags().BoolVar(&svg, "svg", false, "render SVG via the graphviz dot tool")
	RootCmd.AddCommand(dotCmd)
}
