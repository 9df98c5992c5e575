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

// Package quiver is the automaton kernel behind fuzzy term matching:
// finite automata over integer symbol intervals, the algebra to
// combine them, subset-construction determinization, Hopcroft
// minimization, and a compiled form that tests a candidate string in
// constant time per symbol.  The typical pipeline compiles one
// automaton per query (see the levenshtein subpackage), minimizes it,
// and then runs millions of candidates through the compiled matcher,
// which is safe for concurrent readers.
package quiver
