// Package v1 implements the brainstorm request handlers for API version 1.
//
// Error Handling:
// Handlers report client outcomes (invalid input, unknown session) as values
// in their result structs. A non-nil error is always a store fault: a
// *FaultError that wraps the repository failure and matches ErrStoreFault.
//
// Error Checking (in transport adapters):
//
//	res, err := h.svc.CreateIdea(ctx, req)
//	if errors.Is(err, logicv1.ErrStoreFault) {
//	    c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
//	    return
//	}
//	switch res.Outcome {
//	case logicv1.OutcomeInvalid:
//	    c.JSON(http.StatusBadRequest, gin.H{"errors": res.Errors})
//	case logicv1.OutcomeNotFound:
//	    c.JSON(http.StatusNotFound, res.SessionID)
//	}
package v1

import (
	"errors"
	"fmt"
)

// ErrStoreFault is matched by every error a handler returns.
// HTTP Status: 500 Internal Server Error
var ErrStoreFault = errors.New("session store fault")

// FaultError is an unexpected repository failure surfaced by a handler.
type FaultError struct {
	Op  string
	Err error
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FaultError) Unwrap() error { return e.Err }

func (e *FaultError) Is(target error) bool { return target == ErrStoreFault }

func fault(op string, err error) error {
	return &FaultError{Op: op, Err: err}
}

// Outcome classifies how a request ended when no fault occurred.
type Outcome int

const (
	OutcomeOK Outcome = iota
	// OutcomeRedirect sends the client to the session list.
	OutcomeRedirect
	OutcomeInvalid
	OutcomeNotFound
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeRedirect:
		return "redirect"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeNotFound:
		return "not_found"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}
