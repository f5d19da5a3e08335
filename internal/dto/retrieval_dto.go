package dto

type ContentType string

const (
	ContentTypeNone    ContentType = "NONE"
	ContentTypeUnknown ContentType = "UNKNOWN"
	ContentTypeText    ContentType = "TEXT"
	ContentTypeImage   ContentType = "IMAGE"
	ContentTypeVideo   ContentType = "VIDEO"
	ContentTypeAudio   ContentType = "AUDIO"
	ContentTypeSpeech  ContentType = "SPEECH"
)

type Role string

const (
	RoleNone    Role = "NONE"
	RoleUnknown Role = "UNKNOWN"
	RoleSystem  Role = "SYSTEM"
	RoleUser    Role = "USER"
	RoleAI      Role = "AI"
	RoleAgent   Role = "AGENT"
)

type ContentBlock struct {
	Content string      `json:"content,omitempty"`
	Role    Role        `json:"role"`
	Type    ContentType `json:"type"`
}

type ChatThread struct {
	ContentBlocks []ContentBlock `json:"contentBlocks,omitempty"`
}

type RetrievalRequest struct {
	LatestUserPrompt     string            `json:"latestUserPrompt"`
	LatestUserPromptType ContentType       `json:"latestUserPromptType"`
	Thread               ChatThread        `json:"thread"`
	RetrievalProcessId   string            `json:"retrievalProcessId,omitempty"`
	Parameters           map[string]string `json:"parameters,omitempty"`
	MaxMatches           int               `json:"maxMatches"`
}

// Context is one retrieval hit: a read-only projection of a stored chunk
// plus static source metadata.
type Context struct {
	Name               string      `json:"name,omitempty"`
	Category           string      `json:"category,omitempty"`
	Path               string      `json:"path,omitempty"`
	Type               ContentType `json:"type"`
	MatchedContent     string      `json:"matchedContent,omitempty"`
	SurroundingContent []string    `json:"surroundingContent"`
	Links              []string    `json:"links"`
}
