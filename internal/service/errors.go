package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	TooManyRequests     = 429
	InternalServerError = 500
	ServiceUnavailable  = 503
)

var (
	ErrParamInvalid            = errors.New("invalid parameters")
	ErrUnauthorized            = errors.New("Unauthorized - Invalid or missing JWT token")
	ErrForbidden               = errors.New("Forbidden - insufficient role")
	ErrArtifactNotFound        = errors.New("Artifact not found")
	ErrOutlineNotFound         = errors.New("Outline not found or unauthorized")
	ErrFactsNotFound           = errors.New("Facts artifact not found or unauthorized")
	ErrInvalidArtifactType     = errors.New("Invalid artifact type")
	ErrArtifactAlreadyReviewed = errors.New("Artifact has already been reviewed")
	ErrIdeaNotFound            = errors.New("Idea not found")
	ErrGenerationFailed        = errors.New("failed to generate content")
	ErrPostNotFound            = errors.New("Post not found")
	ErrInvalidPostTransition   = errors.New("Invalid post status transition")
	ErrHighRiskNotReady        = errors.New("Cannot move high-risk post to READY status")
	ErrContentTooShort         = errors.New("content must be at least 300 words")
	ErrMediaNotFound           = errors.New("Media not found")
	ErrMediaIDRequired         = errors.New("Media ID required")
	ErrNoFileProvided          = errors.New("No file provided")
	ErrFileTooLarge            = errors.New("File too large. Maximum size is 10MB")
	ErrUnsupportedType         = errors.New("Invalid file type")
	ErrProviderUnavailable     = errors.New("Media provider not available")
	ErrLeadExists              = errors.New("Email already subscribed")
	ErrLeadNotFound            = errors.New("Lead not found")
	ErrRateLimited             = errors.New("Too many requests, please try again later")
	ErrSysBoxNotFound          = errors.New("Notification not found")
	ErrSearchUnavailable       = errors.New("Search is not available")
	UnExpectedError            = errors.New("Internal server error")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:            BadRequest,
	ErrUnauthorized:            Unauthorized,
	ErrForbidden:               Forbidden,
	ErrArtifactNotFound:        NotFound,
	ErrOutlineNotFound:         NotFound,
	ErrFactsNotFound:           NotFound,
	ErrInvalidArtifactType:     BadRequest,
	ErrArtifactAlreadyReviewed: Conflict,
	ErrIdeaNotFound:            NotFound,
	ErrGenerationFailed:        InternalServerError,
	ErrPostNotFound:            NotFound,
	ErrInvalidPostTransition:   BadRequest,
	ErrHighRiskNotReady:        BadRequest,
	ErrContentTooShort:         BadRequest,
	ErrMediaNotFound:           NotFound,
	ErrMediaIDRequired:         BadRequest,
	ErrNoFileProvided:          BadRequest,
	ErrFileTooLarge:            BadRequest,
	ErrUnsupportedType:         BadRequest,
	ErrProviderUnavailable:     BadRequest,
	ErrLeadExists:              Conflict,
	ErrLeadNotFound:            NotFound,
	ErrRateLimited:             TooManyRequests,
	ErrSysBoxNotFound:          NotFound,
	ErrSearchUnavailable:       ServiceUnavailable,
	UnExpectedError:            InternalServerError,
}

// DetailError 携带附加明细的业务错误，Err 必须是 ErrorMap 中的哨兵错误
type DetailError struct {
	Err     error
	Details any
}

func (e *DetailError) Error() string {
	return e.Err.Error()
}

func (e *DetailError) Unwrap() error {
	return e.Err
}

// Code 按哨兵错误解析业务码，未知错误返回 500
func Code(err error) (int, error, bool) {
	for target, code := range ErrorMap {
		if errors.Is(err, target) {
			return code, target, true
		}
	}
	return InternalServerError, UnExpectedError, false
}
