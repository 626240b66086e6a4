package service

import "catalog/internal/catalog/validate"

// Result is the closed outcome type of the mutation pipeline. Exactly one
// concrete tag is returned per operation; transports switch exhaustively.
// Expected business conditions never travel as errors; only infrastructure
// faults do, wrapped in Fault.
type Result interface {
	// Tag returns a stable lowercase label for logs and metrics.
	Tag() string

	isResult()
}

// Created reports a successful create. ID is the server-assigned identifier.
type Created struct {
	ID string
}

// Updated reports a successful update. Version is the incremented version
// the store returned from the atomic replace.
type Updated struct {
	Version int64
}

// Deleted reports a completed delete. Existed is false when no document was
// removed; that is still success, deletion is idempotent.
type Deleted struct {
	Existed bool
}

// Invalid reports field-level constraint violations. The client must fix
// its input.
type Invalid struct {
	Violations validate.Violations
}

// NameExists reports a uniqueness conflict on the name field.
type NameExists struct {
	Name          string
	ConflictingID string
}

// CodeExists reports a uniqueness conflict on the code field.
type CodeExists struct {
	Code          string
	ConflictingID string
}

// NotFound reports that the target id is absent or vanished mid-operation.
// ID is empty when the candidate carried no id at all.
type NotFound struct {
	ID string
}

// BadVersion reports an absent or non-numeric concurrency token. The client
// must supply one.
type BadVersion struct {
	Token string
}

// StaleVersion reports a concurrency token older than the stored version.
// The client must re-read and retry.
type StaleVersion struct {
	ID       string
	Supplied int64
}

// Fault wraps an unexpected infrastructure failure (store unreachable, I/O
// fault). It is logged and surfaced as a generic server fault, never
// decomposed into the business tags above.
type Fault struct {
	Err error
}

func (Created) isResult()      {}
func (Updated) isResult()      {}
func (Deleted) isResult()      {}
func (Invalid) isResult()      {}
func (NameExists) isResult()   {}
func (CodeExists) isResult()   {}
func (NotFound) isResult()     {}
func (BadVersion) isResult()   {}
func (StaleVersion) isResult() {}
func (Fault) isResult()        {}

func (Created) Tag() string      { return "created" }
func (Updated) Tag() string      { return "updated" }
func (Deleted) Tag() string      { return "deleted" }
func (Invalid) Tag() string      { return "invalid" }
func (NameExists) Tag() string   { return "name_exists" }
func (CodeExists) Tag() string   { return "code_exists" }
func (NotFound) Tag() string     { return "not_found" }
func (BadVersion) Tag() string   { return "bad_version" }
func (StaleVersion) Tag() string { return "stale_version" }
func (Fault) Tag() string        { return "fault" }
