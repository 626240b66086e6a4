package service

import (
	"fmt"

	"catalog/internal/catalog/validate"
)

// Category is the transport-neutral status class of an outcome. REST maps
// it to an HTTP status, GraphQL to an error extension; the mapping from
// result tags to categories is identical for both.
type Category string

const (
	CategoryCreated              Category = "success-created"
	CategoryNoContent            Category = "success-no-content"
	CategoryClientError          Category = "client-error"
	CategoryConflict             Category = "client-error-conflict"
	CategoryPreconditionFailed   Category = "precondition-failed"
	CategoryPreconditionRequired Category = "precondition-required"
	CategoryServerFault          Category = "server-fault"
)

// Outcome is the translated form of a pipeline result. Detail carries the
// human-readable message; ID and Version carry the machine-usable parts a
// transport needs to build location references and concurrency tokens.
type Outcome struct {
	Category   Category
	Detail     string
	Violations validate.Violations
	ID         string
	Version    int64
}

// Translate maps every pipeline result to its outcome. Pure; transports must
// not re-interpret results on their own.
func Translate(result Result) Outcome {
	switch r := result.(type) {
	case Created:
		return Outcome{Category: CategoryCreated, Detail: r.ID, ID: r.ID}
	case Updated:
		return Outcome{Category: CategoryNoContent, Detail: fmt.Sprintf("%d", r.Version), Version: r.Version}
	case Deleted:
		// Success either way; the pipeline does not distinguish a vanished id.
		return Outcome{Category: CategoryNoContent}
	case Invalid:
		return Outcome{
			Category:   CategoryClientError,
			Detail:     "item has constraint violations",
			Violations: r.Violations,
		}
	case NameExists:
		return Outcome{
			Category: CategoryConflict,
			Detail:   fmt.Sprintf("an item named %q already exists (id %s)", r.Name, r.ConflictingID),
			ID:       r.ConflictingID,
		}
	case CodeExists:
		return Outcome{
			Category: CategoryConflict,
			Detail:   fmt.Sprintf("an item with code %q already exists (id %s)", r.Code, r.ConflictingID),
			ID:       r.ConflictingID,
		}
	case NotFound:
		if r.ID == "" {
			return Outcome{Category: CategoryPreconditionFailed, Detail: "item does not exist"}
		}
		return Outcome{
			Category: CategoryPreconditionFailed,
			Detail:   fmt.Sprintf("item %s does not exist", r.ID),
			ID:       r.ID,
		}
	case BadVersion:
		return Outcome{
			Category: CategoryPreconditionRequired,
			Detail:   fmt.Sprintf("version token %q is missing or not a number", r.Token),
		}
	case StaleVersion:
		return Outcome{
			Category: CategoryPreconditionFailed,
			Detail:   fmt.Sprintf("version %d of item %s is outdated, re-read and retry", r.Supplied, r.ID),
			ID:       r.ID,
			Version:  r.Supplied,
		}
	case Fault:
		return Outcome{Category: CategoryServerFault, Detail: "internal error"}
	default:
		return Outcome{Category: CategoryServerFault, Detail: "internal error"}
	}
}
