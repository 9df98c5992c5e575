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

import "fmt"

// Transition holds one transition of an Automaton.  It is typically
// used as scratch space when iterating a state's transitions via
// InitTransition and GetNextTransition.
type Transition struct {
	// Source is the state this transition leaves.
	Source int

	// Dest is the state this transition enters.
	Dest int

	// Min is the smallest symbol accepted by this transition.
	Min int

	// Max is the largest symbol accepted by this transition.
	Max int

	upto int
}

func (t *Transition) String() string {
	if t.Min == t.Max {
		return fmt.Sprintf("%d --[%d]-> %d", t.Source, t.Min, t.Dest)
	}
	return fmt.Sprintf("%d --[%d-%d]-> %d", t.Source, t.Min, t.Max, t.Dest)
}
