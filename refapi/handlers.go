package refapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Response messages
const (
	MsgAuthFailed     = "Authentication failed"
	MsgNotFound       = "Resource not found"
	MsgInvalidBody    = "Invalid request body"
	MsgHasDependents  = "Resource still has dependent resources"
	MsgInternalFailed = "Internal server error"
)

// dependent names a child table whose rows must be gone before a parent can be deleted.
type dependent struct {
	model  interface{}
	column string
}

// resource serves the CRUD endpoints of one table. I is the request body type.
type resource[T any, I input[T]] struct {
	store      *Store
	dependents []dependent
}

func (r resource[T, I]) list(c *fiber.Ctx) error {
	records, err := listWhere[T](c.UserContext(), r.store, "")
	if err != nil {
		return err
	}
	return c.JSON(records)
}

func (r resource[T, I]) get(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	record, err := getByID[T](c.UserContext(), r.store, id)
	if err != nil {
		return err
	}
	return c.JSON(record)
}

func (r resource[T, I]) create(c *fiber.Ctx) error {
	var in I
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, MsgInvalidBody)
	}
	errs, err := in.validate(c.UserContext(), r.store, nil)
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(errs)
	}
	var record T
	in.apply(&record)
	if err := create(c.UserContext(), r.store, &record); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (r resource[T, I]) update(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	record, err := getByID[T](c.UserContext(), r.store, id)
	if err != nil {
		return err
	}
	var in I
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, MsgInvalidBody)
	}
	errs, err := in.validate(c.UserContext(), r.store, record)
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(errs)
	}
	in.apply(record)
	if err := save(c.UserContext(), r.store, record); err != nil {
		return err
	}
	return c.JSON(record)
}

func (r resource[T, I]) delete(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	for _, d := range r.dependents {
		n, err := r.store.countWhere(c.UserContext(), d.model, d.column, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrHasChildren
		}
	}
	if err := deleteByID[T](c.UserContext(), r.store, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// listUnder serves a nested collection such as /posts/:id/comments. The parent must exist.
func (r resource[T, I]) listUnder(parent interface{}, column string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return err
		}
		ok, err := r.store.exists(c.UserContext(), parent, id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		records, err := listWhere[T](c.UserContext(), r.store, column+" = ?", id)
		if err != nil {
			return err
		}
		return c.JSON(records)
	}
}

func idParam(c *fiber.Ctx) (int, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, ErrNotFound
	}
	return id, nil
}

// errorHandler renders every error as {"message": ...} with a status derived from it.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := MsgInternalFailed
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code, message = fe.Code, fe.Message
	case errors.Is(err, ErrNotFound):
		code, message = fiber.StatusNotFound, MsgNotFound
	case errors.Is(err, ErrHasChildren):
		code, message = fiber.StatusConflict, MsgHasDependents
	}
	return c.Status(code).JSON(fiber.Map{"message": message})
}
