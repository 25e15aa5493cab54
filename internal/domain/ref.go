package domain

// Ref is a relationship reference. A stub carries only the id; a resolved
// ref also points at the full entity.
type Ref[T any] struct {
	ID       string
	Resolved *T
}

func Stub[T any](id string) Ref[T] {
	return Ref[T]{ID: id}
}

func Resolved[T any](id string, v *T) Ref[T] {
	return Ref[T]{ID: id, Resolved: v}
}

func (r Ref[T]) IsStub() bool {
	return r.Resolved == nil
}

// IsZero reports an absent single-valued relationship.
func (r Ref[T]) IsZero() bool {
	return r.ID == "" && r.Resolved == nil
}

func Stubs[T any](ids []string) []Ref[T] {
	refs := make([]Ref[T], 0, len(ids))
	for _, id := range ids {
		refs = append(refs, Stub[T](id))
	}
	return refs
}

func RefIDs[T any](refs []Ref[T]) []string {
	ids := make([]string, 0, len(refs))
	for _, r := range refs {
		ids = append(ids, r.ID)
	}
	return ids
}

// Patch is a tri-state input field: absent, explicit null, or a value.
type Patch[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func Some[T any](v T) Patch[T] {
	return Patch[T]{Set: true, Valid: true, Value: v}
}

func Null[T any]() Patch[T] {
	return Patch[T]{Set: true}
}
