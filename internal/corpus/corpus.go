// Package corpus is the built-in gallery of control-flow constructs the
// CLI renders. Every construct shape the flow package can express appears
// at least once: each loop form, conditional trees, exception handling,
// and compositions that nest one construct inside another's body.
//
// Rendered entries are single-line fragments meant for a downstream
// formatter, not complete compilation units.
package corpus

import (
	"slices"
	"strings"

	"dartforge/flow"
)

// Entry is one named gallery construct. Build assembles a fresh value on
// every call; entries hold no shared state.
type Entry struct {
	Name  string // registry key, e.g. "loops/for-classic"
	File  string // output path relative to the render root
	Build func() (flow.Code, error)
}

var entryRegistry = map[string]Entry{
	"branches/if": {
		File: "branches/if.dart",
		Build: func() (flow.Code, error) {
			return flow.NewIfTree().
				If(flow.Raw("cache.containsKey(key)"), flow.Raw("return cache[key]!;")).
				Build()
		},
	},
	"branches/if-else": {
		File: "branches/if_else.dart",
		Build: func() (flow.Code, error) {
			return flow.NewIfTree().
				If(flow.Raw("response.ok"), flow.Raw("accept(response);")).
				Else(flow.Raw("reject(response);")).
				Build()
		},
	},
	"branches/if-chain": {
		File: "branches/if_chain.dart",
		Build: func() (flow.Code, error) {
			return flow.NewIfTree().
				If(flow.Raw("code == 200"), flow.Raw("handleOk();")).
				ElseIf(flow.Raw("code == 404"), flow.Raw("handleMissing();")).
				Else(flow.Raw("handleError(code);")).
				Build()
		},
	},
	"compose/guarded-loop": {
		File: "compose/guarded_loop.dart",
		Build: func() (flow.Code, error) {
			skip, err := flow.NewIfTree().
				If(flow.Raw("item.expired"), flow.Raw("continue;")).
				Build()
			if err != nil {
				return nil, err
			}
			return flow.NewForInLoop().
				Var(flow.Raw("var item")).
				Object(flow.Raw("batch")).
				Body(skip, flow.Raw("ship(item);")).
				Build()
		},
	},
	"compose/labeled-stream": {
		File: "compose/labeled_stream.dart",
		Build: func() (flow.Code, error) {
			bail, err := flow.NewIfTree().
				If(flow.Raw("frame.corrupt"), flow.Raw("break pump;")).
				Build()
			if err != nil {
				return nil, err
			}
			return flow.NewForInLoop().
				Label("pump").
				Var(flow.Raw("var frame")).
				Object(flow.Raw("camera.frames")).
				Await(true).
				Body(bail, flow.Raw("paint(frame);")).
				Build()
		},
	},
	"compose/retry-loop": {
		File: "compose/retry_loop.dart",
		Build: func() (flow.Code, error) {
			attempt, err := flow.NewTryTree().
				Body(flow.Raw("return fetch(url);")).
				Handler(func(c *flow.CatchBuilder) {
					c.On(flow.Raw("TimeoutException")).Body(flow.Raw("attempts++;"))
				}).
				Build()
			if err != nil {
				return nil, err
			}
			return flow.NewWhileLoop().
				Label("retry").
				Cond(flow.Raw("attempts < limit")).
				PostCondition(true).
				Body(attempt).
				Build()
		},
	},
	"errors/try-catch": {
		File: "errors/try_catch.dart",
		Build: func() (flow.Code, error) {
			return flow.NewTryTree().
				Body(flow.Raw("commit(txn);")).
				Handler(func(c *flow.CatchBuilder) {
					c.Body(flow.Raw("rollback(txn);"))
				}).
				Build()
		},
	},
	"errors/try-on-type": {
		File: "errors/try_on_type.dart",
		Build: func() (flow.Code, error) {
			return flow.NewTryTree().
				Body(flow.Raw("final doc = jsonDecode(raw);")).
				Handler(func(c *flow.CatchBuilder) {
					c.On(flow.Raw("FormatException")).Body(flow.Raw("return fallback;"))
				}).
				Build()
		},
	},
	"errors/try-stacktrace": {
		File: "errors/try_stacktrace.dart",
		Build: func() (flow.Code, error) {
			return flow.NewTryTree().
				Body(flow.Raw("await job.run();")).
				Handler(func(c *flow.CatchBuilder) {
					c.Exception("err").
						StackTrace("st").
						Body(flow.Raw("log(err, st);"), flow.Raw("rethrow;"))
				}).
				Build()
		},
	},
	"errors/try-finally": {
		File: "errors/try_finally.dart",
		Build: func() (flow.Code, error) {
			return flow.NewTryTree().
				Body(flow.Raw("final data = parse(input);")).
				Handler(func(c *flow.CatchBuilder) {
					c.On(flow.Raw("FormatException")).Body(flow.Raw("report(e);"))
				}).
				Finally(flow.Raw("input.close();")).
				Build()
		},
	},
	"loops/await-for": {
		File: "loops/await_for.dart",
		Build: func() (flow.Code, error) {
			return flow.NewForInLoop().
				Var(flow.Raw("var chunk")).
				Object(flow.Raw("socket.stream")).
				Await(true).
				Body(flow.Raw("buffer.add(chunk);")).
				Build()
		},
	},
	"loops/do-while": {
		File: "loops/do_while.dart",
		Build: func() (flow.Code, error) {
			return flow.NewWhileLoop().
				Cond(flow.Raw("token == null")).
				PostCondition(true).
				Body(flow.Raw("token = refresh();")).
				Build()
		},
	},
	"loops/for-classic": {
		File: "loops/for_classic.dart",
		Build: func() (flow.Code, error) {
			return flow.NewForLoop().
				Init(flow.Raw("var i = 0")).
				Cond(flow.Raw("i < items.length")).
				Advance(flow.Raw("i++")).
				Body(flow.Raw("process(items[i]);")).
				Build()
		},
	},
	"loops/for-endless": {
		File: "loops/for_endless.dart",
		Build: func() (flow.Code, error) {
			return &flow.ForLoop{Body: []flow.Code{flow.Raw("pump();")}}, nil
		},
	},
	"loops/for-labeled": {
		File: "loops/for_labeled.dart",
		Build: func() (flow.Code, error) {
			bail, err := flow.NewIfTree().
				If(flow.Raw("grid[row].isEmpty"), flow.Raw("break outer;")).
				Build()
			if err != nil {
				return nil, err
			}
			return flow.NewForLoop().
				Label("outer").
				Init(flow.Raw("var row = 0")).
				Cond(flow.Raw("row < grid.length")).
				Advance(flow.Raw("row++")).
				Body(bail).
				Build()
		},
	},
	"loops/for-in": {
		File: "loops/for_in.dart",
		Build: func() (flow.Code, error) {
			return flow.NewForInLoop().
				Var(flow.Raw("final name")).
				Object(flow.Raw("registry.keys")).
				Body(flow.Raw("print(name);")).
				Build()
		},
	},
	"loops/while": {
		File: "loops/while.dart",
		Build: func() (flow.Code, error) {
			return flow.NewWhileLoop().
				Cond(flow.Raw("queue.isNotEmpty")).
				Body(flow.Raw("handle(queue.removeFirst());")).
				Build()
		},
	},
}

// Lookup returns the entry registered under name.
func Lookup(name string) (Entry, bool) {
	entry, ok := entryRegistry[name]
	if !ok {
		return Entry{}, false
	}
	entry.Name = name
	return entry, true
}

// Entries returns all gallery entries sorted by name.
func Entries() []Entry {
	names := Names()
	result := make([]Entry, 0, len(names))
	for _, name := range names {
		entry, _ := Lookup(name)
		result = append(result, entry)
	}
	return result
}

// Names returns all entry names sorted.
func Names() []string {
	names := make([]string, 0, len(entryRegistry))
	for name := range entryRegistry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Groups returns the distinct name prefixes before the first slash, sorted.
func Groups() []string {
	seen := make(map[string]struct{})
	var groups []string
	for name := range entryRegistry {
		group, _, _ := strings.Cut(name, "/")
		if _, ok := seen[group]; ok {
			continue
		}
		seen[group] = struct{}{}
		groups = append(groups, group)
	}
	slices.Sort(groups)
	return groups
}
