package importer

// messages.go maps opaque create-capability failures to user-friendly
// messages with support codes.
//
// The pipeline does not interpret remote rejections beyond this rendering:
// patterns are matched case-insensitively with strings.Contains, first
// match wins, so more specific patterns come before general ones. When a
// user quotes a code to support staff, the pattern table below says what
// triggered it.
//
//	DB001 - duplicate key / unique constraint: record already exists
//	DB002 - foreign key: referenced record does not exist
//	DB003 - connection refused / reset: backend unreachable
//	DB004 - timeout / deadline: operation timed out
//	VAL001 - remote validation rejection
//	UPL001 - request cancelled
//	ERR000 - fallback for anything unrecognized

import (
	"fmt"
	"strings"
)

// UserMessage is a user-facing rendering of a technical failure.
type UserMessage struct {
	Message string // what happened
	Action  string // what to do about it
	Code    string // support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "A record with this phone number or email already exists",
			Action:  "Review the skipped rows for duplicates",
			Code:    "DB001",
		},
	},
	{
		pattern: "unique constraint",
		msg: UserMessage{
			Message: "A record with this phone number or email already exists",
			Action:  "Review the skipped rows for duplicates",
			Code:    "DB001",
		},
	},
	{
		pattern: "foreign key",
		msg: UserMessage{
			Message: "Referenced record does not exist",
			Action:  "Import the referenced records first (e.g. drivers before their vehicles)",
			Code:    "DB002",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to reach the records backend",
			Action:  "Try again in a few moments",
			Code:    "DB003",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Connection to the records backend was interrupted",
			Action:  "Try again",
			Code:    "DB003",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "The create request timed out",
			Action:  "Try a smaller file or try again later",
			Code:    "DB004",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "The create request timed out",
			Action:  "Try a smaller file or try again later",
			Code:    "DB004",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "The request was cancelled",
			Action:  "Start a new import when ready",
			Code:    "UPL001",
		},
	},
	{
		pattern: "validation",
		msg: UserMessage{
			Message: "The record was rejected by server-side validation",
			Action:  "Check the row's values against the entity's requirements",
			Code:    "VAL001",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Try again or contact support",
	Code:    "ERR000",
}

// MapRemoteError converts a create-capability failure into a user message.
func MapRemoteError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// RemoteMessage renders a create-capability failure for an ImportError.
// Recognized failures get the friendly message plus code; unrecognized ones
// keep the original text so nothing is hidden from the report.
func RemoteMessage(err error) string {
	msg := MapRemoteError(err)
	if msg.Code == defaultMessage.Code {
		return err.Error()
	}
	return fmt.Sprintf("%s (Code: %s)", msg.Message, msg.Code)
}
