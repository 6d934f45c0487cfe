package console

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/felixgeelhaar/meetingctl/internal/meetings/domain"
)

var (
	errNoCommand          = &domain.Error{Kind: domain.KindUnknownCommand, Message: "no command entered"}
	errArgumentLength     = &domain.Error{Kind: domain.KindParse, Message: "incorrect argument length"}
	errStartDateFormat    = &domain.Error{Kind: domain.KindParse, Message: "incorrect date format for start date provided"}
	errEndDateFormat      = &domain.Error{Kind: domain.KindParse, Message: "incorrect date format for end date provided"}
	errMissingAttendee    = &domain.Error{Kind: domain.KindValidation, Message: "no argument for person found"}
	errDeleteAborted      = &domain.Error{Kind: domain.KindValidation, Message: "delete operation aborted"}
	errMeetingUnavailable = &domain.Error{Kind: domain.KindNotFound, Message: "meeting is no longer available"}
	errLineTooLong        = &domain.Error{Kind: domain.KindParse, Message: "input line is too long"}
)

// ParseLine splits a raw line on whitespace into an invocation name and its
// arguments.
func ParseLine(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}

// Dispatch matches line against the commands of v. Names match
// case-sensitively and the first registered match wins.
func Dispatch(v View, line string) (Command, []string, error) {
	name, args := ParseLine(line)
	if name == "" {
		return Command{}, nil, errNoCommand
	}
	cmd, ok := v.Lookup(name)
	if !ok {
		return Command{}, nil, &domain.Error{
			Kind:    domain.KindUnknownCommand,
			Message: fmt.Sprintf("unknown command %q", name),
		}
	}
	return cmd, args, nil
}

// failureText turns an error into the sentence shown under a view.
func failureText(err error) string {
	if domain.KindOf(err) == "" {
		return "Operation failed: " + err.Error()
	}
	return capitalize(err.Error())
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
