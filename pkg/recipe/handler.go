// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package recipe

// Handler routes untyped records to a category. Handlers are evaluated in
// registration order and the first whose Matches returns true wins.
type Handler struct {
	// Name identifies the handler in diagnostics.
	Name string
	// Category is the recipe type matched records are registered under.
	Category TypeID
	// Matches reports whether the handler accepts a record.
	Matches func(record any) bool
}

// HandlerFor returns a Handler accepting every record of type T for typ.
func HandlerFor[T any](typ Type[T]) Handler {
	return Handler{
		Name:     typ.String(),
		Category: typ.ID(),
		Matches: func(record any) bool {
			_, ok := record.(T)
			return ok
		},
	}
}

// handlerList is a priority-ordered list of handlers.
type handlerList []Handler

// lookup returns the first handler matching record. A predicate that
// panics counts as a non-match and is passed to failed when it is set.
func (l handlerList) lookup(record any, failed func(Handler, any)) (Handler, bool) {
	for _, h := range l {
		if h.Matches == nil {
			continue
		}
		matched, panicked := safeMatch(h, record)
		if panicked != nil && failed != nil {
			failed(h, panicked)
		}
		if matched {
			return h, true
		}
	}
	return Handler{}, false
}

func safeMatch(h Handler, record any) (matched bool, panicked any) {
	defer func() {
		if r := recover(); r != nil {
			matched, panicked = false, r
		}
	}()
	return h.Matches(record), nil
}
