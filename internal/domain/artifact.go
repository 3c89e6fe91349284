package domain

import (
	"path/filepath"
	"strings"
)

// UploadTarget is the closed set of appliance ingestion endpoints an
// artifact can be routed to.
type UploadTarget int

const (
	TargetProductTile UploadTarget = iota
	TargetStemcell
)

func (t UploadTarget) String() string {
	if t == TargetStemcell {
		return "stemcell"
	}
	return "product"
}

// EndpointPath is the appliance API path the artifact is posted to.
func (t UploadTarget) EndpointPath() string {
	if t == TargetStemcell {
		return "/api/v0/stemcells"
	}
	return "/api/v0/available_products"
}

// FormField is the multipart field name the endpoint expects the file under.
func (t UploadTarget) FormField() string {
	if t == TargetStemcell {
		return "stemcell[file]"
	}
	return "product[file]"
}

// ClassifyArtifact routes a file to an upload target by naming convention:
// stemcells are tarballs whose base name contains "stemcell". Everything
// else goes to the generic product endpoint, so an unconventional name
// never fails classification.
func ClassifyArtifact(path string) UploadTarget {
	name := filepath.Base(path)
	if strings.Contains(name, "stemcell") && strings.HasSuffix(name, ".tgz") {
		return TargetStemcell
	}
	return TargetProductTile
}
