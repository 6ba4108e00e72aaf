package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrReviewNotFound is returned by ReviewStore.Get for an absent or
	// expired key.
	ErrReviewNotFound = errors.New("review not found")

	// ErrRunNotFound is returned by RunRepository.GetRun for an unknown run.
	ErrRunNotFound = errors.New("run not found")

	// ErrNoReviews is the reduction error: a run processed zero reviews, so
	// no mean score exists.
	ErrNoReviews = errors.New("no reviews processed")
)

// AcquisitionError is fatal to the run: the review feed returned a transport
// error or non-success status while paging. No partial result survives it.
type AcquisitionError struct {
	Page   int
	Status int
	Err    error
}

func (e *AcquisitionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("acquire page %d: %v", e.Page, e.Err)
	}
	return fmt.Sprintf("acquire page %d: status %d", e.Page, e.Status)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

// ClassificationError marks a facet that could not be labeled: a malformed
// numeric rating, a remote transport failure, or a reply outside the label
// enumeration.
type ClassificationError struct {
	Facet string
	Err   error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classify %s: %v", e.Facet, e.Err)
}

func (e *ClassificationError) Unwrap() error { return e.Err }
