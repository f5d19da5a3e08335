package dto

type ProviderType string

const (
	ProviderTypeNone       ProviderType = "NONE"
	ProviderTypeAny        ProviderType = "ANY"
	ProviderTypeSelfHosted ProviderType = "SELF_HOSTED"
)

type DataSourceInfo struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

type EmbeddingInfo struct {
	EmbeddingType string `json:"embeddingType,omitempty"`
	EmbeddingName string `json:"embeddingName,omitempty"`
	Description   string `json:"description,omitempty"`
	UsedWhen      string `json:"usedWhen,omitempty"`
	Link          string `json:"link,omitempty"`
}

type RetrievalInfo struct {
	Id                    string            `json:"id,omitempty"`
	Name                  string            `json:"name,omitempty"`
	Description           string            `json:"description,omitempty"`
	Link                  string            `json:"link,omitempty"`
	ParametersDescription map[string]string `json:"parametersDescription,omitempty"`
	Embeddings            []EmbeddingInfo   `json:"embeddings,omitempty"`
}

type SecurityRequirements struct {
	AllowedProviderType ProviderType `json:"allowedProviderType"`
}
