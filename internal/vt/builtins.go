package vt

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
)

type builtin struct {
	help string
	run  func(args []string, req Request) Result
}

var builtins = map[string]builtin{
	"echo": {
		help: "print the arguments",
		run: func(args []string, _ Request) Result {
			return Result{Output: strings.Join(args, " ")}
		},
	},
	"clear": {
		help: "erase the screen",
		run: func([]string, Request) Result {
			return Result{Clear: true}
		},
	},
	"history": {
		help: "list previous commands",
		run: func(_ []string, req Request) Result {
			var b strings.Builder
			for i, cmd := range req.History {
				fmt.Fprintf(&b, "%4d  %s\n", i+1, cmd)
			}
			return Result{Output: b.String()}
		},
	},
}

func init() {
	builtins["help"] = builtin{help: "show this list", run: runHelp}
}

func runHelp([]string, Request) Result {
	var b strings.Builder
	for _, name := range BuiltinNames() {
		fmt.Fprintf(&b, "%-8s %s\n", name, builtins[name].help)
	}
	return Result{Output: b.String()}
}

// BuiltinNames returns the builtin command names in sorted order.
func BuiltinNames() []string {
	return slices.Sorted(maps.Keys(builtins))
}

// Builtins is the default Runner. It understands echo, clear, help and
// history.
func Builtins(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	fields := strings.Fields(req.Command)
	if len(fields) == 0 {
		return Result{}, nil
	}

	b, ok := builtins[fields[0]]
	if !ok {
		return Result{}, fmt.Errorf("%s: %w", fields[0], ErrCommandNotFound)
	}
	return b.run(fields[1:], req), nil
}
