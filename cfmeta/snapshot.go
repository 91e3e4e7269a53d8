package cfmeta

import (
	"github.com/slatedb/cfmeta-go/internal/native"
	"github.com/slatedb/cfmeta-go/internal/types"
)

// Snapshot is the plain value form of ExportImportFilesMetadata. It owns
// no engine resource.
type Snapshot struct {
	DBComparatorName string
	Files            []LiveFile
}

func (s Snapshot) Clone() Snapshot {
	files := make([]LiveFile, 0, len(s.Files))
	for _, f := range s.Files {
		files = append(files, f.Clone())
	}
	return Snapshot{
		DBComparatorName: s.DBComparatorName,
		Files:            files,
	}
}

func (s Snapshot) Equal(other Snapshot) bool {
	if s.DBComparatorName != other.DBComparatorName || len(s.Files) != len(other.Files) {
		return false
	}
	for i := range s.Files {
		if !s.Files[i].Equal(other.Files[i]) {
			return false
		}
	}
	return true
}

// CheckArguments returns ErrInvalidArgument if any string in s could not
// be handed to the engine by Restore.
func (s Snapshot) CheckArguments() error {
	if _, err := native.ToCString(s.DBComparatorName); err != nil {
		return invalidArgument("comparator name: %s", err)
	}
	_, err := toNativeEntries(s.Files)
	return err
}

// TotalSize is the sum of the sizes of all files.
func (s Snapshot) TotalSize() uint64 {
	var total uint64
	for _, f := range s.Files {
		total += f.Size
	}
	return total
}

// Validate reports orderings the engine expects but which the metadata
// does not enforce. The returned error, if any, is a *types.ErrWarn; the
// snapshot is still usable.
func (s Snapshot) Validate() error {
	var warn types.ErrWarn
	if s.DBComparatorName == "" {
		warn.Add("comparator name is empty")
	}

	var cf string
	for i, f := range s.Files {
		if f.SmallestSeqno > f.LargestSeqno {
			warn.Add("file %d (%s): smallest seqno %d > largest seqno %d", i, f.Name, f.SmallestSeqno, f.LargestSeqno)
		}
		if f.NumDeletions > f.NumEntries {
			warn.Add("file %d (%s): %d deletions > %d entries", i, f.Name, f.NumDeletions, f.NumEntries)
		}
		if i == 0 {
			cf = f.ColumnFamilyName
		} else if f.ColumnFamilyName != cf {
			warn.Add("file %d (%s): column family %q differs from %q", i, f.Name, f.ColumnFamilyName, cf)
		}
	}
	return warn.If()
}
