package domain

// Role identifies who is asking. The permission matrix is keyed by it.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleRealtor  Role = "realtor"
)

// ParseRole validates a role name coming from a flag or a request body.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCustomer, RoleRealtor:
		return Role(s), true
	default:
		return "", false
	}
}

// Operation is what the query does against a collection.
type Operation string

const (
	OpSelect Operation = "select"
	OpInsert Operation = "insert"
)

// Collection names one of the three record categories.
type Collection string

const (
	CollectionAppartments Collection = "appartments"
	CollectionWorkers     Collection = "workers"
	CollectionRequests    Collection = "requests"
)

// ActionPhrase is the verb + target-word span located inside a query.
// Verb and Target are the first and last token of the matched span;
// filler between them is discarded. They are identical when the span
// is a single word.
type ActionPhrase struct {
	Verb   string
	Target string
}

// Buckets maps a canonical field name to the run of words accumulated
// under it. Word order within a bucket is significant (full names are
// phrase-like). A builder owns one Buckets per query; it is never
// shared across queries.
type Buckets map[string][]string

// Record is a document returned by the store.
type Record map[string]any

// Document is a document handed to the store for insertion.
type Document map[string]any

// QueryResult carries a dispatched query's outcome to the renderer.
type QueryResult struct {
	Records    []Record
	InsertedID string
	Collection Collection
	Operation  Operation
}

// AuditEntry is one row of the query audit trail.
type AuditEntry struct {
	RequestID  string
	Role       Role
	Verb       string
	Target     string
	Collection Collection
	Operation  Operation
	Outcome    string
}
