package models

import "github.com/google/uuid"

// CommonFileKind represents the kind of a shared project file.
type CommonFileKind string

const (
	CommonFileCSS  CommonFileKind = "css"
	CommonFileJS   CommonFileKind = "js"
	CommonFileHTML CommonFileKind = "html"
)

// ParseCommonFileKind converts a string to CommonFileKind.
func ParseCommonFileKind(s string) CommonFileKind {
	switch s {
	case "css":
		return CommonFileCSS
	case "js":
		return CommonFileJS
	case "html":
		return CommonFileHTML
	default:
		return CommonFileCSS
	}
}

// CommonFile is a shared stylesheet, script, or markup fragment that is
// injected into every component preview and into exports.
//
// The files named component.css and component.js are derived from
// per-component data and are read-only at the resource surface.
type CommonFile struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Content string         `json:"content"`
	Kind    CommonFileKind `json:"kind"`
}

// NewCommonFile creates a common file with a fresh id.
func NewCommonFile(name, content string, kind CommonFileKind) *CommonFile {
	return &CommonFile{ID: uuid.NewString(), Name: name, Content: content, Kind: kind}
}

// CommonAsset is an uploaded binary resource (image, font) stored as a
// data URI. ExportFolderID selects the file-tree folder it materializes
// under; when empty or stale the default images folder is used.
type CommonAsset struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	DataURI        string `json:"data_uri"`
	ExportFolderID string `json:"export_folder_id,omitempty"`
}

// NewCommonAsset creates a common asset with a fresh id.
func NewCommonAsset(name, dataURI string) *CommonAsset {
	return &CommonAsset{ID: uuid.NewString(), Name: name, DataURI: dataURI}
}
