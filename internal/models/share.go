package models

// ShareVersion is the current share-payload schema version. Decoders
// accept any version in [1, ShareVersion].
const ShareVersion = 2

// SharePayload is the reduced project snapshot serialized into a share
// token. Optional fields are dropped in stages when the encoded token
// exceeds the size budget.
type SharePayload struct {
	Components   []*ComponentItem `json:"components"`
	Version      int              `json:"v"`
	CommonFiles  []*CommonFile    `json:"common_files,omitempty"`
	CommonAssets []*CommonAsset   `json:"common_assets,omitempty"`
	ProjectName  string           `json:"project_name,omitempty"`
}

// BackupVersion is the schema version of full-state backup payloads.
const BackupVersion = 1

// BackupPayload is the exported backup document: every user project
// plus a version tag and export timestamp.
type BackupPayload struct {
	Version    int        `json:"version"`
	ExportedAt string     `json:"exported_at"`
	Projects   []*Project `json:"projects"`
}
