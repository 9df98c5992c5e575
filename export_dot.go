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

package quiver

import (
	"bufio"
	"fmt"
	"io"
	"unicode"
)

var dotHeader = `digraph g {
rankdir=LR
`

var dotFooter = `}
`

// ExportDot writes the automaton in the GraphViz (dot) file format.
// Accept states are drawn as double circles; edges carry their symbol
// interval, printed as characters where printable.
func ExportDot(a *Automaton, w io.Writer) error {
	bw := bufio.NewWriter(w)

	_, err := bw.WriteString(dotHeader)
	if err != nil {
		return err
	}

	var t Transition
	for s := 0; s < a.NumStates(); s++ {
		if a.IsAccept(s) {
			_, err = fmt.Fprintf(bw, "%d [shape=doublecircle]\n", s)
			if err != nil {
				return err
			}
		}
		count := a.InitTransition(s, &t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(&t)
			_, err = fmt.Fprintf(bw, "%d -> %d [label=\"%s\"]\n", s, t.Dest, dotLabel(t.Min, t.Max))
			if err != nil {
				return err
			}
		}
	}

	_, err = bw.WriteString(dotFooter)
	if err != nil {
		return err
	}
	return bw.Flush()
}

func dotLabel(min, max int) string {
	if min == max {
		return dotSymbol(min)
	}
	return dotSymbol(min) + "-" + dotSymbol(max)
}

func dotSymbol(c int) string {
	if unicode.IsPrint(rune(c)) && c < AlphaMax {
		return string(rune(c))
	}
	return fmt.Sprintf("\\\\u%04x", c)
}
