package pretty

import (
	"fmt"
	"io"
	"strings"
)

// Dump returns an indented, HTML-like tree dump of doc's shape: one tag per
// node, its flattened width where meaningful, and nested children —
// independent of any layout pass, useful for seeing why a document renders
// the way it does without running the engine.
func Dump[A any](doc Document[A]) string {
	var sb strings.Builder
	dumpNode(&sb, doc, 0)
	return sb.String()
}

func writeIndent(w io.Writer, indent int) {
	for i := 0; i < indent; i++ {
		io.WriteString(w, "\t")
	}
}

func dumpNode[A any](w io.Writer, d Document[A], indent int) {
	switch n := d.node.(type) {
	case emptyNode[A]:
		writeIndent(w, indent)
		fmt.Fprintf(w, "<empty/>\n")
	case hardLineNode[A]:
		writeIndent(w, indent)
		fmt.Fprintf(w, "<hardline/>\n")
	case whiteSpaceNode[A]:
		writeIndent(w, indent)
		fmt.Fprintf(w, "<whitespace n=%d/>\n", n.amount)
	case textNode[A]:
		writeIndent(w, indent)
		fmt.Fprintf(w, "<text width=%d content=%q/>\n", d.width, n.s)
	case boxNode[A]:
		writeIndent(w, indent)
		fmt.Fprintf(w, "<box width=%d height=%d/>\n", n.box.Width(), n.box.Height())
	case appendNode[A]:
		writeIndent(w, indent)
		fmt.Fprintf(w, "<append width=%s>\n", dumpWidth(d))
		dumpNode(w, n.left, indent+1)
		dumpNode(w, n.right, indent+1)
		writeIndent(w, indent)
		fmt.Fprintf(w, "</append>\n")
	case alternativeNode[A]:
		writeIndent(w, indent)
		fmt.Fprintf(w, "<alternative>\n")
		writeIndent(w, indent+1)
		fmt.Fprintf(w, "<default>\n")
		dumpNode(w, n.def, indent+2)
		writeIndent(w, indent+1)
		fmt.Fprintf(w, "</default>\n")
		writeIndent(w, indent+1)
		fmt.Fprintf(w, "<flattened>\n")
		dumpNode(w, n.flattened, indent+2)
		writeIndent(w, indent+1)
		fmt.Fprintf(w, "</flattened>\n")
		writeIndent(w, indent)
		fmt.Fprintf(w, "</alternative>\n")
	case choiceNode[A]:
		writeIndent(w, indent)
		fmt.Fprintf(w, "<choice width=%s>\n", dumpWidth(d))
		dumpNode(w, n.first, indent+1)
		dumpNode(w, n.second, indent+1)
		writeIndent(w, indent)
		fmt.Fprintf(w, "</choice>\n")
	case flattenedNode[A]:
		writeIndent(w, indent)
		fmt.Fprintf(w, "<flattened width=%s>\n", dumpWidth(d))
		dumpNode(w, n.inner, indent+1)
		writeIndent(w, indent)
		fmt.Fprintf(w, "</flattened>\n")
	case nestedNode[A]:
		writeIndent(w, indent)
		if n.useDefault {
			fmt.Fprintf(w, "<nested columns=default>\n")
		} else {
			fmt.Fprintf(w, "<nested columns=%d>\n", n.amount)
		}
		dumpNode(w, n.inner, indent+1)
		writeIndent(w, indent)
		fmt.Fprintf(w, "</nested>\n")
	case alignedNode[A]:
		writeIndent(w, indent)
		fmt.Fprintf(w, "<aligned>\n")
		dumpNode(w, n.inner, indent+1)
		writeIndent(w, indent)
		fmt.Fprintf(w, "</aligned>\n")
	case annotatedNode[A]:
		writeIndent(w, indent)
		fmt.Fprintf(w, "<annotated value=%v>\n", n.value)
		dumpNode(w, n.inner, indent+1)
		writeIndent(w, indent)
		fmt.Fprintf(w, "</annotated>\n")
	default:
		panic(internalErrorf("Dump: unknown node type %T", n))
	}
}

func dumpWidth[A any](d Document[A]) string {
	if !d.flattenable {
		return "none"
	}
	return fmt.Sprintf("%d", d.width)
}
