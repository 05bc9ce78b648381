package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://gridcell.dev/docs/errors/"

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Config errors (E100-E199)

	"E100": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "gridcell looks for gridcell.json, gridcell.jsonc, gridcell.yaml or gridcell.yml.",
		DocURL:   docBase + "E100",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		DocURL:   docBase + "E101",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "No columns configured",
		Detail:   "A grid needs at least one column definition.",
		DocURL:   docBase + "E102",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Duplicate column field",
		DocURL:   docBase + "E103",
	},
	"E104": {
		Category: CategoryConfig,
		Message:  "Invalid port",
		Detail:   "Port must be between 0 and 65535.",
		DocURL:   docBase + "E104",
	},

	// Integration errors (E200-E299)

	"E200": {
		Category: CategoryIntegration,
		Message:  "Unknown cell renderer",
		DocURL:   docBase + "E200",
	},
	"E201": {
		Category: CategoryIntegration,
		Message:  "Missing required renderer parameter",
		DocURL:   docBase + "E201",
	},
	"E202": {
		Category: CategoryIntegration,
		Message:  "Handler not found",
		Detail:   "No click handler is registered under this hydration ID. The grid may have re-rendered since the page was served.",
		DocURL:   docBase + "E202",
	},
	"E203": {
		Category: CategoryIntegration,
		Message:  "Row not found",
		DocURL:   docBase + "E203",
	},
	"E204": {
		Category: CategoryIntegration,
		Message:  "Duplicate row ID",
		DocURL:   docBase + "E204",
	},
	"E205": {
		Category: CategoryIntegration,
		Message:  "Column not found",
		DocURL:   docBase + "E205",
	},
	"E206": {
		Category: CategoryIntegration,
		Message:  "Click handler panicked",
		Detail:   "A cell listener panicked while handling a click. The grid state is unchanged.",
		DocURL:   docBase + "E206",
	},

	// Source errors (E300-E399)

	"E300": {
		Category: CategorySource,
		Message:  "Row source could not be read",
		DocURL:   docBase + "E300",
	},
	"E301": {
		Category: CategorySource,
		Message:  "Row source could not be decoded",
		Detail:   "Rows must be a JSON or YAML list of {id, group, data} objects.",
		DocURL:   docBase + "E301",
	},
	"E302": {
		Category: CategorySource,
		Message:  "Unsupported row source",
		Detail:   "Supported sources are local files and s3://bucket/key URIs.",
		DocURL:   docBase + "E302",
	},

	// Server errors (E400-E499)

	"E400": {
		Category: CategoryServer,
		Message:  "Invalid client message",
		DocURL:   docBase + "E400",
	},
	"E401": {
		Category: CategoryServer,
		Message:  "Server failed to start",
		DocURL:   docBase + "E401",
	},

	// CLI errors (E500-E599)

	"E500": {
		Category: CategoryCLI,
		Message:  "Unknown output format",
		Detail:   "Supported formats are html and text.",
		DocURL:   docBase + "E500",
	},
}

// Lookup returns the template for a code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
