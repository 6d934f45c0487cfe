package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_KindMatching(t *testing.T) {
	assert.ErrorIs(t, ErrAttendeeExists, ErrValidation)
	assert.ErrorIs(t, ErrMeetingNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrInvalidCategory, ErrParse)
	assert.NotErrorIs(t, ErrMeetingNotFound, ErrValidation)
	assert.NotErrorIs(t, ErrValidation, ErrAttendeeExists)
}

func TestError_WrappedStillMatches(t *testing.T) {
	err := fmt.Errorf("delete meeting 4: %w", ErrMeetingNotFound)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, ErrMeetingNotFound)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindParse, KindOf(ErrInvalidDateTime))
	assert.Equal(t, KindUnknownCommand, KindOf(ErrUnknownCommand))
	assert.Equal(t, Kind(""), KindOf(errors.New("boom")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "meeting not found", ErrMeetingNotFound.Error())
	assert.Equal(t, "validation", ErrValidation.Error())
}
