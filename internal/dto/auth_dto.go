package dto

type AuthMethod string

const (
	AuthMethodNone             AuthMethod = "NONE"
	AuthMethodKerberos         AuthMethod = "KERBEROS"
	AuthMethodUsernamePassword AuthMethod = "USERNAME_PASSWORD"
	AuthMethodToken            AuthMethod = "TOKEN"
)

type AuthField string

const (
	AuthFieldNone           AuthField = "NONE"
	AuthFieldUsername       AuthField = "USERNAME"
	AuthFieldPassword       AuthField = "PASSWORD"
	AuthFieldToken          AuthField = "TOKEN"
	AuthFieldKerberosTicket AuthField = "KERBEROS_TICKET"
)

type AuthFieldMapping struct {
	AuthField AuthField `json:"authField"`
	FieldName string    `json:"fieldName,omitempty"`
}

type AuthScheme struct {
	AuthMethod        AuthMethod         `json:"authMethod"`
	AuthFieldMappings []AuthFieldMapping `json:"authFieldMappings,omitempty"`
}

// AuthResponse is the uniform outer result of every authentication variant.
// The message never reveals which sub-check failed.
type AuthResponse struct {
	Success bool    `json:"success"`
	Token   *string `json:"token"`
	Message string  `json:"message"`
}
