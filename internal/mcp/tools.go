package mcp

// Tool represents an MCP tool definition
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// ToolDefinitions contains all available MCP tools
var ToolDefinitions = []Tool{
	{
		Name:        "run_prescreening",
		Description: "Evaluate every applicant against scholarship eligibility criteria. Returns per-scholarship matches, per-applicant analysis with criterion detail, and summary statistics.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"scholarship": map[string]any{
					"type":        "string",
					"description": "Only evaluate the scholarship with this exact name. Omit to evaluate all.",
				},
				"qualified_only": map[string]any{
					"type":        "boolean",
					"description": "Drop the per-applicant analysis and return only matches, qualified applicants and summary (default: false)",
				},
			},
		},
	},
	{
		Name:        "submit_decision",
		Description: "Record the award decision for an applicant and scholarship, replacing any earlier decision for the pair.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"student_id": map[string]any{
					"type":        "string",
					"description": "Applicant student ID",
				},
				"scholarship_name": map[string]any{
					"type":        "string",
					"description": "Exact scholarship name",
				},
				"decision": map[string]any{
					"type":        "string",
					"enum":        []string{"awarded", "not_awarded", "pending"},
					"description": "Decision value",
				},
				"comments": map[string]any{
					"type":        "string",
					"description": "Optional reviewer comments",
				},
				"create_award": map[string]any{
					"type":        "boolean",
					"description": "Also record an active award when the decision is 'awarded' (default: false)",
				},
				"award_amount": map[string]any{
					"type":        "number",
					"description": "Award amount; defaults to the scholarship amount",
				},
			},
			"required": []string{"student_id", "scholarship_name", "decision"},
		},
	},
	{
		Name:        "get_applicant",
		Description: "Get the full record for an applicant, including test scores, essays, interview notes and documents.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"student_id": map[string]any{
					"type":        "string",
					"description": "Applicant student ID",
				},
			},
			"required": []string{"student_id"},
		},
	},
	{
		Name:        "list_scholarships",
		Description: "Summarize scholarships with total amount, frequency distribution and per-scholarship criteria.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"frequency": map[string]any{
					"type":        "string",
					"description": "Only include scholarships with this frequency (e.g. annual)",
				},
			},
		},
	},
	{
		Name:        "list_decisions",
		Description: "List recorded award decisions, most recently updated first.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"scholarship_name": map[string]any{
					"type":        "string",
					"description": "Filter by scholarship name",
				},
				"decision": map[string]any{
					"type":        "string",
					"enum":        []string{"awarded", "not_awarded", "pending"},
					"description": "Filter by decision value",
				},
				"student_id": map[string]any{
					"type":        "string",
					"description": "Filter by applicant student ID",
				},
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of results to return (default: 50)",
				},
			},
		},
	},
	{
		Name:        "get_stats",
		Description: "Get counts of applicants, scholarships, decisions by value, awards by status and open information requests.",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	},
}
