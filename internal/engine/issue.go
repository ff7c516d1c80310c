package engine

// Issue codes shared with the root package.
const (
	CodeIndentation  = "indentation"
	CodeInvalidKey   = "invalid_key"
	CodeInvalidValue = "invalid_value"
	CodeSequence     = "sequence"
	CodeInternal     = "internal"
)

// Phases tag which stage rejected a line.
const (
	PhaseLexer    = "lexer"
	PhaseResolver = "resolver"
)

// Reasons carried in SimpleIssue.Message. They are stable and safe to compare.
const (
	ReasonIrregularIndent      = "irregular whitespace in indentation"
	ReasonListWhitespace       = "list value should have a whitespace after dash"
	ReasonMissingColon         = "missing colon"
	ReasonColonWhitespace      = "colon must be followed by whitespace"
	ReasonEmptyValue           = "empty value"
	ReasonMissingEndQuote      = "missing ending quote"
	ReasonUnescapedQuote       = "unescaped quote"
	ReasonInvalidCharNoQuotes  = "invalid character without quotes"
	ReasonEmptyKey             = "empty key"
	ReasonEmptyKeySegment      = "empty key segment"
	ReasonSegmentStartsSpecial = "key segment starts with special character"
	ReasonSegmentEndsSpecial   = "key segment ends with special character"
	ReasonForbiddenKeyChar     = "forbidden character in key"
	ReasonFirstKeyIndent       = "first key should start at indentation 0"
	ReasonNoKeyToAttach        = "no key to attach list value"
	ReasonUnknownLine          = "unknown line kind"
)

// SimpleIssue is a minimal issue representation used by the engine. The root
// package converts it into a public Issue.
type SimpleIssue struct {
	Code    string
	Phase   string
	Path    string
	Message string
	Input   string
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string {
	if e.Path != "" {
		return e.Phase + ": " + e.Message + " (" + e.Path + ")"
	}
	return e.Phase + ": " + e.Message
}

func lexError(code, reason, raw string) error {
	return IssueError{SimpleIssue{Code: code, Phase: PhaseLexer, Message: reason, Input: raw}}
}
