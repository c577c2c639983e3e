// Package pydeps infers the dependency surface of a Python source text.
package pydeps

import (
	"sort"
	"strings"
)

// Scan reads a script line by line and returns the set of top-level module
// names referenced by import statements, deduplicated and sorted. Only lines
// shaped like "import X" or "from X import ..." are considered, so the scan
// never yields a module the script does not name; conditional or computed
// imports are missed, which is a deliberate scope limit.
func Scan(code string) []string {
	seen := map[string]struct{}{}
	for _, line := range strings.Split(code, "\n") {
		if module := moduleFromLine(line); module != "" {
			seen[module] = struct{}{}
		}
	}

	modules := make([]string, 0, len(seen))
	for module := range seen {
		modules = append(modules, module)
	}
	sort.Strings(modules)
	return modules
}

// moduleFromLine only matches imports at the start of a line; indented
// imports live inside functions or conditionals and are treated as the
// false negatives the heuristic accepts.
func moduleFromLine(line string) string {
	if !strings.HasPrefix(line, "import ") && !strings.HasPrefix(line, "from ") {
		return ""
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return ""
	}
	switch fields[0] {
	case "import", "from":
		return topLevelName(fields[1])
	default:
		return ""
	}
}

// topLevelName reduces "os.path" to "os". Relative imports ("from . import x")
// reference the script's own package and are skipped.
func topLevelName(ref string) string {
	if name, _, found := strings.Cut(ref, "."); found {
		return name
	}
	return ref
}
