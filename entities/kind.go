package entities

import (
	"net/http"

	"github.com/jinzhu/inflection"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Fields is implemented by the per-kind field sets used for create overrides and partial
// updates.
type Fields interface {
	// Values returns a JSON object containing only the members that are defined.
	Values() ldvalue.Value
}

// Statuses are the response codes that a kind's resource returns on success.
type Statuses struct {
	Create   int
	Read     int
	Update   int
	List     int
	NotFound int
	Delete   []int
}

// DefaultStatuses returns the statuses used by all three resources of the API under test.
func DefaultStatuses() Statuses {
	return Statuses{
		Create:   http.StatusCreated,
		Read:     http.StatusOK,
		Update:   http.StatusOK,
		List:     http.StatusOK,
		NotFound: http.StatusNotFound,
		Delete:   []int{http.StatusOK, http.StatusNoContent},
	}
}

func (s Statuses) deleteOK(status int) bool {
	if status == s.NotFound {
		return true
	}
	for _, d := range s.Delete {
		if d == status {
			return true
		}
	}
	return false
}

// Kind describes one entity kind: where its resource lives, what its parent is, and how to
// build a complete default payload.
type Kind[F Fields] struct {
	// Name is the singular name, e.g. "post".
	Name string

	// Path is the collection path relative to the base URL, e.g. "/posts".
	Path string

	// ParentName, ParentPath and ParentField are empty for a root kind.
	ParentName  string
	ParentPath  string
	ParentField string

	// Defaults returns a fully populated field set. It is called once per Create, so it
	// may generate fresh identity values each time.
	Defaults func() F

	Statuses Statuses
}

// NewKind creates a root Kind whose collection path is the plural of name.
func NewKind[F Fields](name string, defaults func() F) Kind[F] {
	return Kind[F]{
		Name:     name,
		Path:     resourcePath(name),
		Defaults: defaults,
		Statuses: DefaultStatuses(),
	}
}

// WithParent returns a copy of the Kind that is owned by the named parent kind through the
// given foreign key field.
func (k Kind[F]) WithParent(parentName, field string) Kind[F] {
	k.ParentName = parentName
	k.ParentPath = resourcePath(parentName)
	k.ParentField = field
	return k
}

// HasParent is true for kinds that cannot be created without a parent id.
func (k Kind[F]) HasParent() bool {
	return k.ParentField != ""
}

func resourcePath(name string) string {
	return "/" + inflection.Plural(name)
}

type member struct {
	key   string
	value ldvalue.Value
}

func optString(key string, v ldvalue.OptionalString) member {
	return member{key: key, value: v.AsValue()}
}

func optInt(key string, v ldvalue.OptionalInt) member {
	return member{key: key, value: v.AsValue()}
}

// definedObject builds an object from the members whose value is not null. Undefined
// optional values convert to null, so they are left out.
func definedObject(members ...member) ldvalue.Value {
	b := ldvalue.ObjectBuild()
	for _, m := range members {
		if !m.value.IsNull() {
			b.Set(m.key, m.value)
		}
	}
	return b.Build()
}

// mergeObjects returns base with every key of overrides replacing or adding to it.
func mergeObjects(base, overrides ldvalue.Value) ldvalue.Value {
	b := ldvalue.ObjectBuild()
	for _, k := range base.Keys() {
		b.Set(k, base.GetByKey(k))
	}
	for _, k := range overrides.Keys() {
		b.Set(k, overrides.GetByKey(k))
	}
	return b.Build()
}
