package dto

type UpsertCredentialRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpsertCredentialResponse struct {
	Success  bool   `json:"success"`
	Username string `json:"username"`
}

type UploadResponse struct {
	Success    bool   `json:"success"`
	Filename   string `json:"filename"`
	ChunkCount int    `json:"chunk_count"`
}

type ClearResponse struct {
	Success bool `json:"success"`
}
