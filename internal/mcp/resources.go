package mcp

// Resource defines an MCP resource
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// Resource URIs
const (
	uriSummary      = "sams://summary"
	uriScholarships = "sams://scholarships"
	uriDecisions    = "sams://decisions"
)

// ResourceDefinitions lists all available resources
var ResourceDefinitions = []Resource{
	{
		URI:         uriSummary,
		Name:        "Prescreening Summary",
		Description: "Applicant, match and decision counts from a fresh prescreening run",
		MimeType:    "text/plain",
	},
	{
		URI:         uriScholarships,
		Name:        "Scholarships",
		Description: "Every scholarship with amount, deadline and eligibility criteria",
		MimeType:    "text/plain",
	},
	{
		URI:         uriDecisions,
		Name:        "Recent Decisions",
		Description: "The 20 most recently updated award decisions",
		MimeType:    "text/plain",
	},
}

// resourcesListResult is the response for resources/list
type resourcesListResult struct {
	Resources []Resource `json:"resources"`
}

// readResourceParams is the params for resources/read
type readResourceParams struct {
	URI string `json:"uri"`
}

// readResourceResult is the response for resources/read
type readResourceResult struct {
	Contents []resourceContent `json:"contents"`
}

type resourceContent struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}
