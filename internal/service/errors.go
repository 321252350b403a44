package service

import (
	"errors"
	"fmt"

	"github.com/d60-Lab/blog-platform/internal/model"
)

var (
	ErrNotFound  = errors.New("post not found")
	ErrForbidden = errors.New("no permission")
)

// ValidationError is a recoverable input error, surfaced to clients as 422
// with its message. Reason identifies the rule that failed.
type ValidationError struct {
	Reason  string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

const (
	ReasonInvalidTagFormat    = "InvalidFormat"
	ReasonTagTooShort         = "TagTooShort"
	ReasonTagTooLong          = "TagTooLong"
	ReasonTooManyTags         = "TooManyTags"
	ReasonMissingPublishTime  = "MissingPublishTime"
	ReasonPublishTimeNotFutur = "PublishTimeNotFuture"
	ReasonEmptyContent        = "EmptyContent"
	ReasonMissingField        = "MissingField"
)

var (
	errInvalidTagFormat = &ValidationError{ReasonInvalidTagFormat, "tags must be an array of strings"}
	errTagTooShort      = &ValidationError{ReasonTagTooShort, "tag is too short"}
	errTagTooLong       = &ValidationError{ReasonTagTooLong, fmt.Sprintf("tag should be no more than %d characters", model.TagNameMaxLength)}
	errTooManyTags      = &ValidationError{ReasonTooManyTags, fmt.Sprintf("at most %d tags per post", model.MaxTagsPerPost)}

	errMissingPublishTime  = &ValidationError{ReasonMissingPublishTime, "need to set publish time"}
	errPublishTimeNotFutur = &ValidationError{ReasonPublishTimeNotFutur, "publish time should be later than now"}
	errTitleContentNeeded  = &ValidationError{ReasonMissingField, "title and content are required"}
	errEmptyContent        = &ValidationError{ReasonEmptyContent, "content must not be empty"}
	errMissingPostID       = &ValidationError{ReasonMissingField, "missing post id"}
	errNothingToUpdate     = &ValidationError{ReasonMissingField, "no updatable fields supplied"}
	errTagNameRequired     = &ValidationError{ReasonMissingField, "please input a tag name"}
)
