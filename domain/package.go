package domain

// PackageUpdate represents one package entry of an Updates.xml repository
// document. Fields absent from the source document keep their zero value;
// the format omits optional elements freely.
type PackageUpdate struct {
	Name                 string       `json:"name" yaml:"name" validate:"notblank"`                                   // Required: unique dotted identifier, e.g. qt.qt6.620.gcc_64
	DisplayName          string       `json:"display_name,omitempty" yaml:"display_name,omitempty"`                   // Optional: human-readable name
	Description          string       `json:"description,omitempty" yaml:"description,omitempty"`                     // Optional: human-readable description
	Version              string       `json:"version,omitempty" yaml:"version,omitempty"`                             // Version string, stored verbatim (not necessarily semver)
	ReleaseDate          string       `json:"release_date,omitempty" yaml:"release_date,omitempty"`                   // Date string, opaque to the resolver
	Dependencies         []string     `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`                   // Package names this package requires, declared order
	AutoDependOn         []string     `json:"auto_depend_on,omitempty" yaml:"auto_depend_on,omitempty"`               // Package names pulled in automatically on selection
	DownloadableArchives []string     `json:"downloadable_archives,omitempty" yaml:"downloadable_archives,omitempty"` // Archive filenames, opaque payload
	Virtual              bool         `json:"virtual,omitempty" yaml:"virtual,omitempty"`                             // Exists only to pull in others, never installed as content
	Default              bool         `json:"default,omitempty" yaml:"default,omitempty"`                             // Selected by default by the installer
	SHA1                 string       `json:"sha1,omitempty" yaml:"sha1,omitempty"`                                   // Metadata archive checksum, opaque payload
	UpdateFiles          []UpdateFile `json:"update_files,omitempty" yaml:"update_files,omitempty"`                   // Nested archive descriptions
}

// UpdateFile describes one archive attached to a package entry. The sizes
// and target OS are carried through untouched for the caller.
type UpdateFile struct {
	OS               string `json:"os,omitempty" yaml:"os,omitempty"`
	CompressedSize   int64  `json:"compressed_size,omitempty" yaml:"compressed_size,omitempty"`
	UncompressedSize int64  `json:"uncompressed_size,omitempty" yaml:"uncompressed_size,omitempty"`
}

// Updates is the parsed form of one Updates.xml document: the root metadata
// plus the package entries in document order.
type Updates struct {
	ApplicationName    string           `json:"application_name,omitempty" yaml:"application_name,omitempty"`
	ApplicationVersion string           `json:"application_version,omitempty" yaml:"application_version,omitempty"`
	PackageUpdates     []*PackageUpdate `json:"package_updates,omitempty" yaml:"package_updates,omitempty"`
}
