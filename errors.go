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

import "errors"

// ErrOutOfRange is returned when a state number or symbol falls
// outside the valid range.  Internal buffer growth does not return it:
// a negative size request panics.
var ErrOutOfRange = errors.New("state or symbol out of range")

// ErrStateFinished is returned when transitions are added to a state
// whose transition list has already been finished.  A state's
// transitions must all be added before moving on to another state.
var ErrStateFinished = errors.New("state already finished")

// ErrNotDeterministic is returned by operations which require a
// deterministic input automaton.
var ErrNotDeterministic = errors.New("automaton is not deterministic")
