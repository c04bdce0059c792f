package api

// MessageResponse is the body returned by mutating endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// AddSiteResponse reports the outcome of a site import.
type AddSiteResponse struct {
	Message string `json:"message"`
	UUID    string `json:"uuid"`
	Created bool   `json:"created"`
	Scenes  int    `json:"scenes"`
}

// MatchSceneRequest confirms the local file for a scene.
type MatchSceneRequest struct {
	SceneID  int64  `json:"scene_id"`
	FilePath string `json:"file_path"`
}

// SetHomeDirectoryRequest assigns the directory scanned for a site's files.
type SetHomeDirectoryRequest struct {
	SiteUUID  string `json:"site_uuid"`
	Directory string `json:"directory"`
}

// SuggestRequest asks for match candidates for one site. A nil tolerance
// selects the configured default.
type SuggestRequest struct {
	SiteUUID  string `json:"site_uuid"`
	Tolerance *int   `json:"tolerance,omitempty"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Catalog string `json:"catalog"`
}
