package netconf

import (
	"strings"
)

// Parse builds a document tree from raw indented text. It never fails:
// blank lines, comment lines (trimmed content starting with '#'), and
// lines matching no known shape are skipped without diagnostics.
//
// Indentation is the raw count of leading whitespace characters. Tabs are
// counted as one character each and are not expanded, so documents mixing
// tabs and spaces at the same logical depth will not parse as intended.
func Parse(text string) *Node {
	root := newMapping()
	stack := []frame{{node: root, indent: -1}}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		indent := len(line) - len(strings.TrimLeft(line, " \t"))

		// Dedent resolves to the nearest ancestor with strictly
		// smaller indentation.
		for len(stack) > 1 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1].node

		switch {
		case trimmed == "-" || strings.HasPrefix(trimmed, "- "):
			rest := strings.TrimSpace(strings.TrimPrefix(trimmed, "-"))
			if key, value, ok := splitKeyValue(rest); ok && key != "" && value != "" {
				// The item opens a mapping; its one inline pair is the
				// first entry and later, deeper lines become siblings.
				item := newMapping()
				item.put(key, newScalar(unquote(value)))
				parent.pending = append(parent.pending, item)
				stack = append(stack, frame{node: item, indent: indent})
			} else if rest != "" {
				parent.pending = append(parent.pending, newScalar(unquote(rest)))
			}

		default:
			key, value, ok := splitKeyValue(trimmed)
			if !ok || key == "" {
				continue // unparsable, dropped by design
			}
			if value == "" {
				child := newMapping()
				parent.put(key, child)
				stack = append(stack, frame{node: child, indent: indent})
			} else {
				parent.put(key, newScalar(unquote(value)))
			}
		}
	}

	return fixup(root)
}

type frame struct {
	node   *Node
	indent int
}

// splitKeyValue splits a "key: value" or trailing "key:" line. The
// delimiter is the first colon followed by whitespace (or end of line),
// so values containing bare colons, like MAC and IPv6 addresses, stay
// intact.
func splitKeyValue(s string) (key, value string, ok bool) {
	if i := strings.Index(s, ": "); i >= 0 {
		return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+2:]), true
	}
	if strings.HasSuffix(s, ":") {
		return strings.TrimSpace(s[:len(s)-1]), "", true
	}
	return "", "", false
}

// unquote strips one level of matching single or double quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// fixup rewrites the optimistically-built tree: any mapping that collected
// pending sequence items was really a sequence, and is replaced by one.
// The collector is a construction device, never a visible key.
func fixup(n *Node) *Node {
	if n == nil {
		return nil
	}
	switch n.kind {
	case KindMapping:
		if len(n.pending) > 0 {
			items := make([]*Node, len(n.pending))
			for i, it := range n.pending {
				items[i] = fixup(it)
			}
			return newSequence(items)
		}
		for _, k := range n.keys {
			n.child[k] = fixup(n.child[k])
		}
	case KindSequence:
		for i, it := range n.items {
			n.items[i] = fixup(it)
		}
	}
	return n
}
