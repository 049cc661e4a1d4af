package entities

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/crudcheck/rest-contract-tests/config"
	"github.com/crudcheck/rest-contract-tests/framework"
)

// Client performs CRUD operations for one entity kind. E is the entity as returned by the API
// and F is the field set used for create overrides and updates.
//
// Callers never see raw status codes: every operation either returns a decoded entity, the
// not-found result of Read, or a *RequestError.
type Client[E any, F Fields] struct {
	kind      Kind[F]
	transport *transport
}

// NewClient creates a Client for the given kind.
func NewClient[E any, F Fields](kind Kind[F], cfg config.Config, logger framework.Logger) *Client[E, F] {
	return &Client[E, F]{kind: kind, transport: newTransport(cfg, logger)}
}

// WithLogger returns a copy of the client that writes request logs to the given logger.
func (c *Client[E, F]) WithLogger(logger framework.Logger) *Client[E, F] {
	return &Client[E, F]{kind: c.kind, transport: c.transport.withLogger(logger)}
}

// Kind returns the kind description this client was built with.
func (c *Client[E, F]) Kind() Kind[F] {
	return c.kind
}

// Payload builds the creation payload: the kind's defaults, overridden member by member by
// the defined members of overrides, with the parent field set from parent.
func (c *Client[E, F]) Payload(parent ldvalue.OptionalInt, overrides F) (ldvalue.Value, error) {
	payload := mergeObjects(c.kind.Defaults().Values(), overrides.Values())
	if !c.kind.HasParent() {
		if parent.IsDefined() {
			return ldvalue.Null(), fmt.Errorf("%s does not have a parent", c.kind.Name)
		}
		return payload, nil
	}
	if !parent.IsDefined() {
		return ldvalue.Null(), fmt.Errorf("cannot create %s: %s %w", c.kind.Name, c.kind.ParentName, ErrMissingParent)
	}
	return mergeObjects(payload, definedObject(optInt(c.kind.ParentField, parent))), nil
}

// Create creates an entity and returns it as the API reported it, including its id.
//
// For a kind with a parent, parent must be defined; the client never invents a parent.
func (c *Client[E, F]) Create(ctx context.Context, parent ldvalue.OptionalInt, overrides F) (E, error) {
	var created E
	payload, err := c.Payload(parent, overrides)
	if err != nil {
		return created, err
	}
	resp, err := c.transport.do(ctx, http.MethodPost, c.kind.Path, payload)
	if err != nil {
		return created, c.requestError(OpCreate, 0, response{}, err)
	}
	if resp.status != c.kind.Statuses.Create {
		return created, c.requestError(OpCreate, 0, resp, nil)
	}
	if err := json.Unmarshal(resp.body, &created); err != nil {
		return created, c.requestError(OpCreate, 0, resp, fmt.Errorf("malformed response body: %w", err))
	}
	return created, nil
}

// Read fetches an entity by id. If the API reports that the entity does not exist, Read
// returns nil and no error; absence is an expected outcome, e.g. after a delete.
func (c *Client[E, F]) Read(ctx context.Context, id int) (*E, error) {
	resp, err := c.transport.do(ctx, http.MethodGet, c.itemPath(id), nil)
	if err != nil {
		return nil, c.requestError(OpRead, id, response{}, err)
	}
	if resp.status == c.kind.Statuses.NotFound {
		return nil, nil
	}
	if resp.status != c.kind.Statuses.Read {
		return nil, c.requestError(OpRead, id, resp, nil)
	}
	var entity E
	if err := json.Unmarshal(resp.body, &entity); err != nil {
		return nil, c.requestError(OpRead, id, resp, fmt.Errorf("malformed response body: %w", err))
	}
	return &entity, nil
}

// Update sends only the defined members of fields and returns the updated entity.
func (c *Client[E, F]) Update(ctx context.Context, id int, fields F) (E, error) {
	var updated E
	resp, err := c.transport.do(ctx, http.MethodPut, c.itemPath(id), fields.Values())
	if err != nil {
		return updated, c.requestError(OpUpdate, id, response{}, err)
	}
	if resp.status != c.kind.Statuses.Update {
		return updated, c.requestError(OpUpdate, id, resp, nil)
	}
	if err := json.Unmarshal(resp.body, &updated); err != nil {
		return updated, c.requestError(OpUpdate, id, resp, fmt.Errorf("malformed response body: %w", err))
	}
	return updated, nil
}

// Delete deletes an entity. An entity that is already absent counts as deleted, so Delete is
// safe to call more than once. Callers doing cleanup should treat an error as a warning.
func (c *Client[E, F]) Delete(ctx context.Context, id int) error {
	resp, err := c.delete(ctx, id)
	if err != nil {
		return err
	}
	if !c.kind.Statuses.deleteOK(resp.status) {
		return c.requestError(OpDelete, id, resp, nil)
	}
	return nil
}

// DeleteRaw deletes an entity and returns the status the API answered with, whatever it was.
// The error is only set when no response arrived.
func (c *Client[E, F]) DeleteRaw(ctx context.Context, id int) (int, error) {
	resp, err := c.delete(ctx, id)
	return resp.status, err
}

func (c *Client[E, F]) delete(ctx context.Context, id int) (response, error) {
	resp, err := c.transport.do(ctx, http.MethodDelete, c.itemPath(id), nil)
	if err != nil {
		return response{}, c.requestError(OpDelete, id, response{}, err)
	}
	return resp, nil
}

// List returns the entities in the kind's collection.
func (c *Client[E, F]) List(ctx context.Context) ([]E, error) {
	return c.list(ctx, c.kind.Path)
}

// ListUnder returns the entities owned by the given parent, using the nested collection
// path, e.g. /posts/{id}/comments.
func (c *Client[E, F]) ListUnder(ctx context.Context, parentID int) ([]E, error) {
	if !c.kind.HasParent() {
		return nil, fmt.Errorf("%s does not have a parent", c.kind.Name)
	}
	return c.list(ctx, c.kind.ParentPath+"/"+strconv.Itoa(parentID)+c.kind.Path)
}

// ListRaw returns the collection exactly as the API sent it, for checks on the shape of the
// response rather than on decoded values.
func (c *Client[E, F]) ListRaw(ctx context.Context) (ldvalue.Value, error) {
	resp, err := c.transport.do(ctx, http.MethodGet, c.kind.Path, nil)
	if err != nil {
		return ldvalue.Null(), c.requestError(OpList, 0, response{}, err)
	}
	if resp.status != c.kind.Statuses.List {
		return ldvalue.Null(), c.requestError(OpList, 0, resp, nil)
	}
	value := ldvalue.Parse(resp.body)
	if value.Type() != ldvalue.ArrayType {
		return ldvalue.Null(), c.requestError(OpList, 0, resp, fmt.Errorf("expected a JSON array"))
	}
	return value, nil
}

func (c *Client[E, F]) list(ctx context.Context, endpoint string) ([]E, error) {
	resp, err := c.transport.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, c.requestError(OpList, 0, response{}, err)
	}
	if resp.status != c.kind.Statuses.List {
		return nil, c.requestError(OpList, 0, resp, nil)
	}
	var items []E
	if err := json.Unmarshal(resp.body, &items); err != nil {
		return nil, c.requestError(OpList, 0, resp, fmt.Errorf("malformed response body: %w", err))
	}
	return items, nil
}

func (c *Client[E, F]) itemPath(id int) string {
	return c.kind.Path + "/" + strconv.Itoa(id)
}

func (c *Client[E, F]) requestError(op Operation, id int, resp response, err error) *RequestError {
	return &RequestError{
		Op:     op,
		Kind:   c.kind.Name,
		ID:     id,
		Status: resp.status,
		Body:   string(resp.body),
		Err:    err,
	}
}

// NotFound reports whether a Read result means the entity does not exist.
func NotFound[E any](entity *E) bool {
	return entity == nil
}
