package fieldgate

// Action names a permission-checked operation on a subject type.
// Applications may define their own action names; the constants below
// are the defaults used by the validate entry points.
type Action string

// Default content actions.
const (
	ActionRead    Action = "content.read"
	ActionCreate  Action = "content.create"
	ActionUpdate  Action = "content.update"
	ActionDelete  Action = "content.delete"
	ActionPublish Action = "content.publish"
)

// Subject identifies what a permission rule or a validation call applies
// to: a model type and, optionally, a concrete entity instance. Rules
// carrying conditions are matched against the instance; type-only
// subjects match on the model UID alone.
type Subject struct {
	// Type is the model UID, e.g. "api::article.article".
	Type string
	// Entity is the concrete instance, when one is in scope.
	Entity map[string]any
}

// NewSubject returns a type-only subject.
func NewSubject(typ string) Subject {
	return Subject{Type: typ}
}

// SubjectOf returns a subject bound to a concrete entity instance.
func SubjectOf(typ string, entity map[string]any) Subject {
	return Subject{Type: typ, Entity: entity}
}

// Structural attribute names. These are maintained by the system, not by
// request payloads, and are implicitly permitted whenever an ability
// restricts the field set: they are structural, not business, fields.
const (
	FieldID          = "id"
	FieldDocumentID  = "documentId"
	FieldCreatedAt   = "createdAt"
	FieldUpdatedAt   = "updatedAt"
	FieldPublishedAt = "publishedAt"
	FieldCreatedBy   = "createdBy"
	FieldUpdatedBy   = "updatedBy"

	// ComponentKey discriminates dynamic-zone entries by component UID.
	ComponentKey = "__component"
)

// AdminUserUID is the UID of the privileged administration-user model.
// Traversals that reach this model are restricted to the safe list
// returned by AdminUserSafeFields, independent of the ability outcome.
const AdminUserUID = "admin::user"

// QueryStaticFields returns the structural fields every restricted query
// may reference: identifiers, timestamps, publish state, and the
// dynamic-zone component discriminator.
func QueryStaticFields() []string {
	return []string{
		FieldID,
		FieldDocumentID,
		FieldCreatedAt,
		FieldUpdatedAt,
		FieldPublishedAt,
		ComponentKey,
	}
}

// InputStaticFields returns the structural fields every restricted entity
// payload may carry. Model-specific writable-but-non-visible attributes
// are added by the caller on top of these.
func InputStaticFields() []string {
	return []string{
		FieldID,
		FieldDocumentID,
	}
}

// CreatorFields returns the attribute names that reference the
// administration user who created or last updated an entity.
func CreatorFields() []string {
	return []string{FieldCreatedBy, FieldUpdatedBy}
}

// AdminUserSafeFields returns the fixed allow-list of administration-user
// attributes that may be referenced through nested traversal:
// identification and display fields only. Everything else on the admin
// user model (password hashes, reset tokens, role wiring) is off limits
// regardless of the ability.
func AdminUserSafeFields() []string {
	return []string{FieldID, "firstname", "lastname", "username"}
}
