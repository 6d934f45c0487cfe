package console

import (
	"strings"
	"time"

	"github.com/felixgeelhaar/meetingctl/internal/meetings/domain"
)

// promptRequired asks until a non-blank answer is given.
func (t *Terminal) promptRequired(question string) (string, error) {
	for {
		answer, err := t.Prompt(question)
		if err != nil {
			return "", err
		}
		if answer = strings.TrimSpace(answer); answer != "" {
			return answer, nil
		}
		t.Println("This field is required")
	}
}

func (t *Terminal) promptCategory() (domain.Category, error) {
	names := make([]string, 0, len(domain.Categories()))
	for _, c := range domain.Categories() {
		names = append(names, string(c))
	}
	question := "Which category does it belong to? (" + strings.Join(names, ", ") + "): "

	for {
		answer, err := t.Prompt(question)
		if err != nil {
			return "", err
		}
		category, err := domain.ParseCategory(answer)
		if err == nil {
			return category, nil
		}
		t.Println("Typed incorrectly, please use one of the following: " + strings.Join(names, " / "))
	}
}

func (t *Terminal) promptType() (domain.Type, error) {
	names := make([]string, 0, len(domain.Types()))
	for _, mt := range domain.Types() {
		names = append(names, string(mt))
	}
	question := "Which type does it belong to? (" + strings.Join(names, ", ") + "): "

	for {
		answer, err := t.Prompt(question)
		if err != nil {
			return "", err
		}
		meetingType, err := domain.ParseType(answer)
		if err == nil {
			return meetingType, nil
		}
		t.Println("Type was written incorrectly, try again")
	}
}

// promptDate asks until a well-formed timestamp after both now and notBefore
// is given. A zero notBefore is ignored.
func (t *Terminal) promptDate(question string, now, notBefore time.Time) (time.Time, error) {
	for {
		answer, err := t.Prompt(question)
		if err != nil {
			return time.Time{}, err
		}
		value, err := domain.ParseDateTime(strings.TrimSpace(answer))
		if err != nil {
			t.Println("Incorrect format")
			continue
		}
		if !value.After(now) {
			t.Println("Date provided has already happened!")
			continue
		}
		if !notBefore.IsZero() && !value.After(notBefore) {
			t.Println("The meeting must end after it starts")
			continue
		}
		return value, nil
	}
}

// PromptMeeting walks the user through every field of a new meeting.
// Only input exhaustion ends it early.
func (t *Terminal) PromptMeeting(now time.Time) (*domain.Meeting, error) {
	responsible, err := t.promptRequired("What is your name?: ")
	if err != nil {
		return nil, err
	}
	name, err := t.promptRequired("Please enter meeting name: ")
	if err != nil {
		return nil, err
	}
	description, err := t.Prompt("Write the description of the meeting: ")
	if err != nil {
		return nil, err
	}
	category, err := t.promptCategory()
	if err != nil {
		return nil, err
	}
	meetingType, err := t.promptType()
	if err != nil {
		return nil, err
	}
	start, err := t.promptDate("Select when the meeting starts (Use this format '"+dateFormatHint+"'): ", now, time.Time{})
	if err != nil {
		return nil, err
	}
	end, err := t.promptDate("Select when the meeting ends (Use this format '"+dateFormatHint+"'): ", now, start)
	if err != nil {
		return nil, err
	}

	meeting, err := domain.NewMeeting(name, responsible, strings.TrimSpace(description), category, meetingType, start, end)
	if err != nil {
		return nil, err
	}
	if err := meeting.ValidateFuture(now); err != nil {
		return nil, err
	}
	return meeting, nil
}

// Confirm asks question and reports whether the answer is exactly "yes".
func (t *Terminal) Confirm(question string) (bool, error) {
	answer, err := t.Prompt(question)
	if err != nil {
		return false, err
	}
	return answer == "yes", nil
}
