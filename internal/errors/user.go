package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// A slice rather than a map because wrapped errors need errors.Is traversal.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	// ===================
	// Input
	// ===================
	{
		err: ErrDeploymentIDRequired,
		info: ErrorInfo{
			Message: "A deployment id is required.",
			Action:  "Pass one with -i, e.g. 'devops deployment artifacts -i 0Afq000001HKFDO'.",
		},
	},
	{
		err: ErrInvalidDeploymentID,
		info: ErrorInfo{
			Message: "The deployment id is not a valid 15 or 18 character id.",
			Action:  "Copy the id from the Deployment Status page or the sf deploy output.",
		},
	},
	{
		err: ErrInvalidOutputFormat,
		info: ErrorInfo{
			Message: "Unknown output format.",
			Action:  "Use one of: text, json, yaml.",
		},
	},
	{
		err: ErrInvalidDocument,
		info: ErrorInfo{
			Message: "The deploy status response could not be parsed.",
			Action:  "Check that the input is the JSON or YAML deploy result.",
		},
	},

	// ===================
	// Source
	// ===================
	{
		err: ErrDeploymentsFailed,
		info: ErrorInfo{
			Message: "Some deployments could not be reported.",
			Action:  "See the warning for each failed id above.",
		},
	},
	{
		err: ErrSourceUnavailable,
		info: ErrorInfo{
			Message: "No deploy status source is available.",
			Action:  "Install the sf CLI, set source.instance_url with SF_ACCESS_TOKEN, or pass --file.",
		},
	},
	{
		err: ErrDeploymentNotFound,
		info: ErrorInfo{
			Message: "The deployment was not found in the target org.",
			Action:  "Verify the id and the --target-org alias.",
		},
	},
	{
		err: ErrUnauthorized,
		info: ErrorInfo{
			Message: "The org rejected the session.",
			Action:  "Re-authenticate with 'sf org login web' or refresh SF_ACCESS_TOKEN.",
		},
	},
	{
		err: ErrFetchFailed,
		info: ErrorInfo{
			Message: "Could not retrieve the deploy status.",
			Action:  "Check your network connection and retry with --verbose for details.",
		},
	},
	{
		err: ErrCommandFailed,
		info: ErrorInfo{
			Message: "The sf CLI command failed.",
			Action:  "Run 'sf project deploy report --job-id <id>' directly to see the error.",
		},
	},

	// ===================
	// Configuration
	// ===================
	{
		err: ErrConfigNil,
		info: ErrorInfo{
			Message: "Configuration is missing.",
		},
	},
	{
		err: ErrConfigInvalidOutput,
		info: ErrorInfo{
			Message: "Invalid output settings in configuration.",
			Action:  "Fix the output section of ~/.devops/config.yaml or .devops/config.yaml.",
		},
	},
	{
		err: ErrConfigInvalidSource,
		info: ErrorInfo{
			Message: "Invalid source settings in configuration.",
			Action:  "Fix the source section of ~/.devops/config.yaml or .devops/config.yaml.",
		},
	},
}

//nolint:gochecknoglobals // Pre-built mapping for O(1) lookup performance
var errorInfoMap = buildErrorInfoMap()

func buildErrorInfoMap() map[error]ErrorInfo {
	m := make(map[error]ErrorInfo, len(errorInfoEntries))
	for _, entry := range errorInfoEntries {
		m[entry.err] = entry.info
	}
	return m
}

// getErrorInfo looks up the ErrorInfo for a given error.
// Direct sentinels hit the map; wrapped errors fall back to errors.Is.
// Unknown errors keep their own message and get no action.
func getErrorInfo(err error) ErrorInfo {
	if info, ok := errorInfoMap[err]; ok {
		return info
	}

	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}

	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve the issue. The action is empty when
// there is nothing useful to suggest.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
