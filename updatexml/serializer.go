package updatexml

import (
	"encoding/xml"
	"strings"

	"github.com/qtkit/repometa/domain"
)

// Wire structures for serialization. List-valued fields travel as
// comma-separated text and booleans as "true"/absence, matching what the
// installer tooling emits.

type updatesXML struct {
	XMLName            xml.Name           `xml:"Updates"`
	ApplicationName    string             `xml:"ApplicationName,omitempty"`
	ApplicationVersion string             `xml:"ApplicationVersion,omitempty"`
	PackageUpdates     []packageUpdateXML `xml:"PackageUpdate"`
}

type packageUpdateXML struct {
	Name                 string          `xml:"Name"`
	DisplayName          string          `xml:"DisplayName,omitempty"`
	Description          string          `xml:"Description,omitempty"`
	Version              string          `xml:"Version,omitempty"`
	ReleaseDate          string          `xml:"ReleaseDate,omitempty"`
	Dependencies         string          `xml:"Dependencies,omitempty"`
	AutoDependOn         string          `xml:"AutoDependOn,omitempty"`
	Virtual              string          `xml:"Virtual,omitempty"`
	Default              string          `xml:"Default,omitempty"`
	DownloadableArchives string          `xml:"DownloadableArchives,omitempty"`
	SHA1                 string          `xml:"SHA1,omitempty"`
	UpdateFiles          []updateFileXML `xml:"UpdateFile"`
}

type updateFileXML struct {
	OS               string `xml:"OS,attr,omitempty"`
	CompressedSize   int64  `xml:"CompressedSize,attr"`
	UncompressedSize int64  `xml:"UncompressedSize,attr"`
}

// Marshal serializes an index back to an Updates.xml document. Re-parsing
// the output yields an equivalent index: same names, same field values.
func Marshal(index *domain.PackageIndex) ([]byte, error) {
	doc := updatesXML{
		ApplicationName:    index.ApplicationName(),
		ApplicationVersion: index.ApplicationVersion(),
	}
	for _, pkg := range index.Packages() {
		entry := packageUpdateXML{
			Name:                 pkg.Name,
			DisplayName:          pkg.DisplayName,
			Description:          pkg.Description,
			Version:              pkg.Version,
			ReleaseDate:          pkg.ReleaseDate,
			Dependencies:         strings.Join(pkg.Dependencies, ","),
			AutoDependOn:         strings.Join(pkg.AutoDependOn, ","),
			DownloadableArchives: strings.Join(pkg.DownloadableArchives, ","),
			SHA1:                 pkg.SHA1,
		}
		if pkg.Virtual {
			entry.Virtual = "true"
		}
		if pkg.Default {
			entry.Default = "true"
		}
		for _, uf := range pkg.UpdateFiles {
			entry.UpdateFiles = append(entry.UpdateFiles, updateFileXML(uf))
		}
		doc.PackageUpdates = append(doc.PackageUpdates, entry)
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
