package domain

import (
	"fmt"
	"strings"
)

// PackageIndex is the lookup surface over one parsed Updates.xml document.
// It is immutable once built, so any number of concurrent resolver calls
// may read it without locking.
type PackageIndex struct {
	applicationName    string
	applicationVersion string
	entries            []*PackageUpdate
	byName             map[string]*PackageUpdate
}

// NewPackageIndex builds an index over a parsed document. A repeated Name
// fails with DUPLICATE_NAME: a silent last-wins overwrite would corrupt
// resolution over the document.
func NewPackageIndex(updates *Updates) (*PackageIndex, error) {
	idx := &PackageIndex{
		applicationName:    updates.ApplicationName,
		applicationVersion: updates.ApplicationVersion,
		entries:            make([]*PackageUpdate, 0, len(updates.PackageUpdates)),
		byName:             make(map[string]*PackageUpdate, len(updates.PackageUpdates)),
	}
	for _, pkg := range updates.PackageUpdates {
		if _, exists := idx.byName[pkg.Name]; exists {
			return nil, NewMetaError(ErrDuplicateName,
				fmt.Sprintf("package name %q appears more than once", pkg.Name), pkg.Name)
		}
		idx.byName[pkg.Name] = pkg
		idx.entries = append(idx.entries, pkg)
	}
	return idx, nil
}

// ApplicationName returns the root-level application name of the document
func (i *PackageIndex) ApplicationName() string {
	return i.applicationName
}

// ApplicationVersion returns the root-level application version of the document
func (i *PackageIndex) ApplicationVersion() string {
	return i.applicationVersion
}

// Get returns the package with the given name, if present
func (i *PackageIndex) Get(name string) (*PackageUpdate, bool) {
	pkg, ok := i.byName[name]
	return pkg, ok
}

// Has reports whether a package with the given name is present
func (i *PackageIndex) Has(name string) bool {
	_, ok := i.byName[name]
	return ok
}

// Len returns the number of package entries
func (i *PackageIndex) Len() int {
	return len(i.entries)
}

// Names returns all package names in document order
func (i *PackageIndex) Names() []string {
	names := make([]string, len(i.entries))
	for n, pkg := range i.entries {
		names[n] = pkg.Name
	}
	return names
}

// Packages returns all package entries in document order
func (i *PackageIndex) Packages() []*PackageUpdate {
	out := make([]*PackageUpdate, len(i.entries))
	copy(out, i.entries)
	return out
}

// ByArchitecture returns the entries whose name carries the given
// architecture suffix, e.g. "win32_mingw73", in document order.
func (i *PackageIndex) ByArchitecture(arch string) []*PackageUpdate {
	var out []*PackageUpdate
	for _, pkg := range i.entries {
		if strings.HasSuffix(pkg.Name, arch) {
			out = append(out, pkg)
		}
	}
	return out
}

// Merge returns a new index combining this document's entries with another's,
// preserving the receiver's root metadata and both entry orders. A name
// present in both documents fails with DUPLICATE_NAME.
func (i *PackageIndex) Merge(other *PackageIndex) (*PackageIndex, error) {
	combined := &Updates{
		ApplicationName:    i.applicationName,
		ApplicationVersion: i.applicationVersion,
		PackageUpdates:     make([]*PackageUpdate, 0, len(i.entries)+len(other.entries)),
	}
	combined.PackageUpdates = append(combined.PackageUpdates, i.entries...)
	combined.PackageUpdates = append(combined.PackageUpdates, other.entries...)
	return NewPackageIndex(combined)
}
