// Package httpapi exposes the user service over HTTP/JSON.
package httpapi

import (
	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/spf13/cast"

	"github.com/rise-and-shine/cqrskit/internal/user"
	"github.com/rise-and-shine/cqrskit/pagination"
	"github.com/rise-and-shine/cqrskit/result"
)

const CodeInvalidRequest = "INVALID_REQUEST"

// API serves the /users routes.
type API struct {
	service user.Service
}

func New(service user.Service) *API {
	return &API{service: service}
}

// Register mounts the routes under /users.
func (a *API) Register(r fiber.Router) {
	users := r.Group("/users")

	users.Post("/", a.create)
	users.Get("/", a.list)
	users.Get("/:id", a.get)
	users.Patch("/:id", a.update)
	users.Post("/:id/deactivate", a.deactivate)
	users.Post("/:id/activate", a.activate)
	users.Delete("/:id", a.delete)
}

type updateRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (a *API) create(c *fiber.Ctx) error {
	var in user.CreateUserInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(err)
	}

	res, err := a.service.CreateUser(c.UserContext(), in)
	return respond(c, fiber.StatusCreated, res, err)
}

func (a *API) list(c *fiber.Ctx) error {
	in := user.ListUsersInput{
		Params: pagination.FromMap(lo.MapValues(c.Queries(), func(v string, _ string) any { return v })),
		Search: c.Query("search"),
	}

	if raw := c.Query("active"); raw != "" {
		active, err := cast.ToBoolE(raw)
		if err != nil {
			return errx.New(
				"active must be a boolean",
				errx.WithCode(CodeInvalidRequest),
				errx.WithType(errx.T_Validation),
				errx.WithFields(errx.M{"active": "Must be true or false"}),
			)
		}
		in.Active = &active
	}

	res, err := a.service.ListUsers(c.UserContext(), in)
	return respond(c, fiber.StatusOK, res, err)
}

func (a *API) get(c *fiber.Ctx) error {
	res, err := a.service.GetUser(c.UserContext(), c.Params("id"))
	return respond(c, fiber.StatusOK, res, err)
}

func (a *API) update(c *fiber.Ctx) error {
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(err)
	}

	res, err := a.service.UpdateUser(c.UserContext(), user.UpdateUserInput{
		ID:    c.Params("id"),
		Email: req.Email,
		Name:  req.Name,
	})
	return respond(c, fiber.StatusOK, res, err)
}

func (a *API) deactivate(c *fiber.Ctx) error {
	res, err := a.service.DeactivateUser(c.UserContext(), c.Params("id"))
	return respond(c, fiber.StatusOK, res, err)
}

func (a *API) activate(c *fiber.Ctx) error {
	res, err := a.service.ActivateUser(c.UserContext(), c.Params("id"))
	return respond(c, fiber.StatusOK, res, err)
}

func (a *API) delete(c *fiber.Ctx) error {
	res, err := a.service.DeleteUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if res.IsFailure() {
		return res.Err()
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// respond writes the value of a successful result. Failures and errors are
// returned to the server error handler, which picks the status from the errx type.
func respond[T any](c *fiber.Ctx, status int, res result.Result[T], err error) error {
	if err != nil {
		return err
	}
	if res.IsFailure() {
		return res.Err()
	}
	return c.Status(status).JSON(res.Value())
}

func invalidBody(err error) error {
	return errx.New(
		"invalid request body",
		errx.WithCode(CodeInvalidRequest),
		errx.WithType(errx.T_Validation),
		errx.WithDetails(errx.D{"parse_error": err.Error()}),
	)
}
