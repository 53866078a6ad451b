package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/abrabant/brabantapi/internal/blogservice"
	"github.com/abrabant/brabantapi/internal/common"
	"github.com/abrabant/brabantapi/internal/mailservice"
)

func (app *application) getPublicBlogpostsHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := app.readLimitParam(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	blogposts, err := app.blogpostService.List(r.Context(), true, limit)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"blogposts": blogposts}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getPublicBlogpostHandler(w http.ResponseWriter, r *http.Request) {
	stringID := app.readSlugParam(r, "stringId")

	blogpost, err := app.blogpostService.FindByStringID(r.Context(), stringID, true)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"blogpost": blogpost}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getTagsHandler(w http.ResponseWriter, r *http.Request) {
	tags, err := app.blogpostService.ListTags(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"tags": tags}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getBlogpostsHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := app.readLimitParam(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	blogposts, err := app.blogpostService.List(r.Context(), false, limit)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"blogposts": blogposts}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

// createBlogpostHandler accepts either a JSON document or, with a
// text/markdown content type, a raw markdown document whose front matter
// carries the post metadata.
func (app *application) createBlogpostHandler(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "text/markdown") {
		app.importBlogpostHandler(w, r)
		return
	}

	var input blogservice.CreateBlogpostRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	id, err := app.blogpostService.Create(r.Context(), &input)
	if err != nil {
		var conflictErr common.ConflictError
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		case errors.As(err, &conflictErr):
			app.conflictErrorResponse(w, r, conflictErr.Field, conflictErr.Message)
		case errors.Is(err, blogservice.ErrAuthorNotFound):
			app.failedValidationErrorResponse(w, r, map[string]string{"author_id": "must refer to an existing user"})
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"id": id}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) importBlogpostHandler(w http.ResponseWriter, r *http.Request) {
	doc, err := app.readRawBody(w, r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	fieldErrors, err := app.blogpostService.CreateFromMarkdown(r.Context(), doc)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if len(fieldErrors) > 0 {
		err = app.writeJSON(w, http.StatusUnprocessableEntity, envelope{"errors": fieldErrors}, nil)
		if err != nil {
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"message": "blogpost created"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getBlogpostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	blogpost, err := app.blogpostService.FindByID(r.Context(), id, false)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"blogpost": blogpost}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) updateBlogpostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var input blogservice.EditBlogpostRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.blogpostService.Edit(r.Context(), id, &input)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "blogpost updated"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) deleteBlogpostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	deleted, err := app.blogpostService.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"deleted": deleted}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type contactRequest struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// contactHandler accepts a contact-form submission and hands it to the
// broker. Delivery happens asynchronously, hence the 202.
func (app *application) contactHandler(w http.ResponseWriter, r *http.Request) {
	var input contactRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	v := common.NewValidator()
	v.Check(input.Email != "", "email", "must be provided")
	v.Check(blogservice.EmailRX.MatchString(input.Email), "email", "must be a valid email address")
	v.Check(input.Name != "", "name", "must be provided")
	v.Check(v.CheckStringLength(input.Name, 1, 100), "name", "must be between 1 and 100 characters long")
	v.Check(input.Message != "", "message", "must be provided")
	v.Check(v.CheckStringLength(input.Message, 1, 2000), "message", "must be between 1 and 2000 characters long")
	if !v.Valid() {
		app.failedValidationErrorResponse(w, r, v.Errors)
		return
	}

	msg, err := json.Marshal(mailservice.ContactMessage{
		Email:   input.Email,
		Name:    input.Name,
		Message: input.Message,
	})
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.broker.Publish(r.Context(), msg, common.ContactMessageKey, common.ContactExchange)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusAccepted, envelope{"message": "contact message received"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}
