package cfmeta

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/samber/mo"
)

// PrettyPrint returns a string representation of the snapshot in a
// human-readable format
//
//	Comparator: leveldb.BytewiseComparator
//	Files: 2 (8192 bytes)
//	  File 0:
//	    Column Family: cf1
//	    Path: /data/000123.sst
//	    Size: 4096
//	    Level: 1
//	    Start Key: []byte("\x00")
//	    End Key: <none>
//	    Seqno: [10, 20]
//	    Entries: 5
//	    Deletions: 1
//	  File 1:
//	    ...
func PrettyPrint(s Snapshot) string {
	var buf bytes.Buffer

	_, _ = fmt.Fprintf(&buf, "Comparator: %s\n", s.DBComparatorName)
	_, _ = fmt.Fprintf(&buf, "Files: %d (%d bytes)\n", len(s.Files), s.TotalSize())
	for i, f := range s.Files {
		_, _ = fmt.Fprintf(&buf, "  File %d:\n", i)
		_, _ = fmt.Fprintf(&buf, "%s\n", indent(4, prettyFile(f)))
	}
	return strings.TrimRight(buf.String(), "\n")
}

func prettyFile(f LiveFile) string {
	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "Column Family: %s\n", f.ColumnFamilyName)
	_, _ = fmt.Fprintf(&buf, "Path: %s\n", f.Path())
	_, _ = fmt.Fprintf(&buf, "Size: %d\n", f.Size)
	_, _ = fmt.Fprintf(&buf, "Level: %d\n", f.Level)
	_, _ = fmt.Fprintf(&buf, "Start Key: %s\n", prettyKey(f.StartKey))
	_, _ = fmt.Fprintf(&buf, "End Key: %s\n", prettyKey(f.EndKey))
	_, _ = fmt.Fprintf(&buf, "Seqno: [%d, %d]\n", f.SmallestSeqno, f.LargestSeqno)
	_, _ = fmt.Fprintf(&buf, "Entries: %d\n", f.NumEntries)
	_, _ = fmt.Fprintf(&buf, "Deletions: %d\n", f.NumDeletions)
	return buf.String()
}

func prettyKey(key mo.Option[[]byte]) string {
	b, ok := key.Get()
	if !ok {
		return "<none>"
	}
	return fmt.Sprintf("[]byte(%q)", b)
}

// prefix each line delimited by '\n' by X number of spaces
func indent(indent int, input string) string {
	prefix := strings.Repeat(" ", indent)
	lines := strings.Split(input, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
